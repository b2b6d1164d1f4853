package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/elliotchen37/rmxlrc/internal/tui"
)

func main() {
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	if err := tui.Run(*configFlag); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
