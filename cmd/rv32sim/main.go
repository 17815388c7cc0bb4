// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/tebeka/atexit"

	"github.com/ezrec/rv32sim/emulator"
)

func main() {
	var source string
	var limit int
	var dump bool
	var verbose bool

	flag.StringVar(&source, "c", "", ".s file to assemble and run")
	flag.IntVar(&limit, "n", 100000, "Maximum steps to execute")
	flag.BoolVar(&dump, "d", false, "Dump final state")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if source == "" {
		flag.Usage()
		atexit.Exit(1)
	}

	text, err := os.ReadFile(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if !verbose {
		// Keep the per-step trace off the console; everything else
		// still lands on the standard logger.
		emu.SetSink(func(line string) {
			if !strings.HasPrefix(line, "[Exec]") {
				log.Print(line)
			}
		})
	}

	emu.LoadProgram(string(text))

	steps := emu.Run(limit)
	log.Printf("%v: %v steps executed", source, steps)

	if dump {
		fmt.Print(emu.DumpState())
	}

	atexit.Exit(0)
}
