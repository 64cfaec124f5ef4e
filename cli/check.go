package cli

import (
	"context"
	"fmt"

	"github.com/go-barry/items/core"
	"github.com/go-barry/items/store"
	"github.com/urfave/cli/v2"
)

var CheckCommand = &cli.Command{
	Name:  "check",
	Usage: "Validate the config, the UI template and the store",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		var failed bool

		config, err := core.LoadConfig(c.String("config"))
		if err != nil {
			fmt.Printf("❌ config → %v\n", err)
			return cli.Exit("check failed", 1)
		}
		if err := config.Validate(); err != nil {
			failed = true
			fmt.Printf("❌ config → %v\n", err)
		} else {
			fmt.Println("✅ config")
		}

		ui, err := core.NewUI(*config)
		if err == nil {
			var doc []byte
			if doc, err = ui.Render(); err == nil {
				fmt.Printf("✅ ui (%d bytes)\n", len(doc))
			}
		}
		if err != nil {
			failed = true
			fmt.Printf("❌ ui → %v\n", err)
		}

		s, err := store.Open(config.Storage, config.DataFile)
		if err != nil {
			failed = true
			fmt.Printf("❌ store → %v\n", err)
		} else {
			max, err := s.MaxID(context.Background())
			s.Close()
			if err != nil {
				failed = true
				fmt.Printf("❌ store → %v\n", err)
			} else {
				fmt.Printf("✅ store (%s, highest id %d)\n", config.Storage, max)
			}
		}

		if failed {
			return cli.Exit("some checks failed", 1)
		}

		fmt.Println("✅ All checks passed.")
		return nil
	},
}
