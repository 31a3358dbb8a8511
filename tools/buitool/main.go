// Command buitool generates sources for the bui display toolkit.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/clktmr/bui/debug"
	"github.com/clktmr/bui/tools/bitmap"
	"github.com/clktmr/bui/tools/font"
	"github.com/retroenv/retrogolib/log"
)

var version = "dev"

const usageString = `buitool is a tool for development of bui user interfaces.

Usage:

	%s [flags] <command> [arguments]

The commands are:

	bitmap   convert images to Go bitmap sources
	font     preview fonts as rasterized for the display

The flags are:

`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	quiet := flag.Bool("q", false, "only log errors")
	flag.Usage = usage
	flag.Parse()

	logger := debug.NewLogger(*verbose, *quiet)
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}
	logger.Debug("buitool", log.String("version", version), log.String("command", flag.Arg(0)))

	var err error
	switch flag.Arg(0) {
	case "bitmap":
		err = bitmap.Main(flag.Args(), logger)
	case "font":
		err = font.Main(flag.Args(), os.Stdout, logger)
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(1)
	}
	if err != nil {
		logger.Fatal("Command failed", log.String("command", flag.Arg(0)), log.Err(err))
	}
}
