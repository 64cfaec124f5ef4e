package cli

import (
	"github.com/go-barry/items"
	"github.com/go-barry/items/core"
	"github.com/urfave/cli/v2"
)

func serveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "port to listen on (overrides config and PORT)",
		},
		configFlag(),
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Value:   core.DefaultConfigFile,
		Usage:   "path to the YAML config file",
	}
}

var DevCommand = &cli.Command{
	Name:  "dev",
	Usage: "Start the item server in dev mode (readable UI, UI file watching)",
	Flags: serveFlags(),
	Action: func(c *cli.Context) error {
		items.Start(items.RuntimeConfig{
			Env:        "dev",
			Port:       c.Int("port"),
			ConfigPath: c.String("config"),
		})
		return nil
	},
}

var ProdCommand = &cli.Command{
	Name:  "prod",
	Usage: "Start the item server in production mode (minified, gzipped UI, JSON logs)",
	Flags: serveFlags(),
	Action: func(c *cli.Context) error {
		items.Start(items.RuntimeConfig{
			Env:        "prod",
			Port:       c.Int("port"),
			ConfigPath: c.String("config"),
		})
		return nil
	},
}
