// Package main provides the entry point for r10ksim, a cycle-accurate
// out-of-order integer pipeline simulator.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/sarchlab/r10ksim/driver"
	"github.com/sarchlab/r10ksim/engine"
)

var (
	verbose  = flag.Bool("v", false, "Verbose output")
	cycleCap = flag.Uint64("cap", engine.DefaultCycleCap, "Cycle cap safety bound")
)

func main() {
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: r10ksim [options] <input_path> <output_path>\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	inputPath := flag.Arg(0)
	outputPath := flag.Arg(1)

	log := logr.Discard()
	if *verbose {
		log = funcr.New(func(prefix, args string) {
			fmt.Fprintln(os.Stdout, prefix, args)
		}, funcr.Options{})
	}

	config := engine.DefaultConfig()
	config.CycleCap = *cycleCap

	stats, err := driver.Run(inputPath, outputPath, config, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Printf("Cycles: %d, Retired: %d, RolledBack: %d, Exceptions: %d, BackpressureStalls: %d\n",
			stats.Cycles, stats.Retired, stats.RolledBack, stats.Exceptions, stats.BackpressureStalls)
	}
}
