package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strconv"

	"github.com/Station-Manager/portfind"
)

func main() {
	product := flag.String("product", "", "match USB product name exactly")
	manufacturer := flag.String("manufacturer", "", "match manufacturer exactly")
	serialNo := flag.String("serial", "", "match serial number exactly")
	description := flag.String("description", "", "match description exactly")
	vid := flag.String("vid", "", "match USB vendor ID (hex, e.g. 2341)")
	pid := flag.String("pid", "", "match USB product ID (hex, e.g. 0043)")
	find := flag.Bool("find", false, "resolve criteria to exactly one port and print its path")
	info := flag.String("info", "", "print all attributes of the given device path")

	flag.Parse()

	if *info != "" {
		printInfo(*info)
		return
	}

	criteria := portfind.Criteria{}
	if *product != "" {
		criteria[portfind.AttrProduct] = *product
	}
	if *manufacturer != "" {
		criteria[portfind.AttrManufacturer] = *manufacturer
	}
	if *serialNo != "" {
		criteria[portfind.AttrSerialNumber] = *serialNo
	}
	if *description != "" {
		criteria[portfind.AttrDescription] = *description
	}
	if *vid != "" {
		criteria[portfind.AttrVID] = parseHexID("vid", *vid)
	}
	if *pid != "" {
		criteria[portfind.AttrPID] = parseHexID("pid", *pid)
	}

	if *find {
		path, err := portfind.FindPort(criteria)
		if err != nil {
			var ambiguous *portfind.AmbiguousPortError
			if errors.As(err, &ambiguous) {
				fmt.Fprintln(os.Stderr, "criteria too broad, matching ports:")
				for _, dev := range ambiguous.Devices {
					fmt.Fprintln(os.Stderr, "  "+dev)
				}
			}
			log.Fatalf("find: %v", err)
		}
		fmt.Println(path)
		return
	}

	// Default mode: list all matching device paths, one per line.
	paths, err := portfind.FindPorts(criteria)
	if err != nil {
		log.Fatalf("list: %v", err)
	}
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "no serial ports found")
		os.Exit(1)
	}
	for _, path := range paths {
		fmt.Println(path)
	}
}

func printInfo(device string) {
	attrs, err := portfind.PortInfo(device)
	if err != nil {
		log.Fatalf("info: %v", err)
	}

	keys := make([]string, 0, len(attrs))
	for key := range attrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		switch v := attrs[key].(type) {
		case nil:
			fmt.Printf("%-20s -\n", key)
		case int:
			fmt.Printf("%-20s 0x%04X\n", key, v)
		default:
			fmt.Printf("%-20s %v\n", key, v)
		}
	}
}

func parseHexID(name, value string) int {
	id, err := strconv.ParseUint(value, 16, 16)
	if err != nil {
		log.Fatalf("invalid %s %q (expect hex, e.g. 2341)", name, value)
	}
	return int(id)
}
