package main

import (
	"fmt"
	"os"

	"github.com/agiangrant/easel"
	"github.com/agiangrant/easel/cmd/easel/commands"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	args := os.Args[2:]

	var err error
	switch cmd {
	case "init":
		err = commands.Init(args)
	case "run":
		err = commands.Run(args)
	case "demos":
		err = commands.Demos(os.Stdout)
	case "version", "-v", "--version":
		p := easel.CurrentPlatform()
		fmt.Printf("easel version %s (%s, %s host)\n", version, p, p.Host())
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`easel - frame loop playground

Usage: easel <command> [options]

Commands:
  init      Write a default easel.toml
  run       Open a window and run a demo
  demos     List the available demos
  version   Print version information
  help      Show this help message

Examples:
  easel init --demo sweep         Create easel.toml running the sweep demo
  easel run                       Run the configured demo
  easel run --demo count --watch  Run a demo and apply config edits live

Configuration:
  Settings are read from easel.toml in the current directory.
  Run 'easel init' to create one with default values.`)
}
