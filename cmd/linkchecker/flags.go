package main

import (
	"flag"
	"fmt"
	"os"
)

type AppFlags struct {
	InputFile        string
	GlobalConfigFile string
	OutputDir        string
	Workers          int
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [options] <input-file>\n\nOptions:\n", os.Args[0])
	flag.PrintDefaults()
}

func ParseFlags() AppFlags {
	globalConfigFile := flag.String("globalconfig", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := flag.String("gc", "", "Alias for -globalconfig")

	workers := flag.Int("workers", 0, "Number of concurrent verification workers (overrides config file if set)")
	workersAlias := flag.Int("w", 0, "Alias for -workers")

	outputDir := flag.String("output", "", "Directory holding the good/bad ledger files (overrides config file if set)")
	outputDirAlias := flag.String("o", "", "Alias for -output")

	flag.Usage = usage
	flag.Parse()

	flags := AppFlags{}

	if *globalConfigFile != "" {
		flags.GlobalConfigFile = *globalConfigFile
	} else if *globalConfigFileAlias != "" {
		flags.GlobalConfigFile = *globalConfigFileAlias
	}

	if *workers > 0 {
		flags.Workers = *workers
	} else if *workersAlias > 0 {
		flags.Workers = *workersAlias
	}

	if *outputDir != "" {
		flags.OutputDir = *outputDir
	} else if *outputDirAlias != "" {
		flags.OutputDir = *outputDirAlias
	}

	if flag.NArg() != 1 {
		usage()
		os.Exit(1)
	}
	flags.InputFile = flag.Arg(0)

	return flags
}
