package main

import (
	"fmt"
	"io"

	"github.com/1broseidon/montile/internal/geom"
)

func runDisjoin(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		fmt.Fprintln(stderr, "Usage: montile disjoin RECT [RECT...]")
		fmt.Fprintln(stderr, "")
		fmt.Fprintln(stderr, "Print non-overlapping rectangles covering the union of the given WxH+X+Y rectangles.")
		if len(args) == 0 {
			return 2
		}
		return 0
	}
	rects, err := geom.ParseAll(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 3
	}
	for _, r := range geom.Disjoin(rects) {
		fmt.Fprintln(stdout, r)
	}
	return 0
}
