package main

import (
	"log"
	"os"

	itemscli "github.com/go-barry/items/cli"
	clilib "github.com/urfave/cli/v2"
)

func runApp(args []string) error {
	app := &clilib.App{
		Name:  "items",
		Usage: "A small JSON item service with a browser UI",
		Commands: []*clilib.Command{
			itemscli.InitCommand,
			itemscli.DevCommand,
			itemscli.ProdCommand,
			itemscli.CleanCommand,
			itemscli.CheckCommand,
			itemscli.InfoCommand,
			itemscli.CalcCommand,
		},
	}
	return app.Run(args)
}

func main() {
	if err := runApp(os.Args); err != nil {
		log.Fatal(err)
	}
}
