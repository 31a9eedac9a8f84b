package main

import (
	"log"
	"os"

	"github.com/abiiranathan/docsearch/cli"
	"github.com/abiiranathan/docsearch/server"
)

// Default configuration for the CLI
var config = &cli.DefaultConfig

func startServer() {
	cli.ValidateIndex(config.Index)
	server.Run(config)
}

func main() {
	log.SetPrefix("[docsearch]: ")
	log.SetFlags(log.Lshortfile)

	// Parse the command line arguments
	ctx := cli.DefineFlags(config, startServer)
	subcmd, err := ctx.Parse(os.Args)
	if err != nil {
		log.Fatalln(err)
	}

	// If the subcommand is nil, print the usage and exit
	if subcmd == nil {
		ctx.PrintUsage(os.Stdout)
		os.Exit(1)
	}

	// Run the subcommand
	subcmd.Handler()
}
