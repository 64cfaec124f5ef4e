package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/go-barry/items/core"
	"github.com/go-barry/items/store"
	"github.com/urfave/cli/v2"
)

var InfoCommand = &cli.Command{
	Name:  "info",
	Usage: "Print the resolved configuration and stored item count",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := core.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}

		fmt.Println("🌐 Port:", config.Port)
		fmt.Println("🔧 Env:", config.Env)
		fmt.Println("💾 Storage:", config.Storage)
		fmt.Println("🔢 IDs:", config.IDs)
		fmt.Println("📏 Max Body Bytes:", config.MaxBodyBytes)
		fmt.Println("🔁 Debug Headers Enabled:", config.DebugHeaders)
		fmt.Println("🔁 Debug Logs Enabled:", config.DebugLogs)
		if config.UIFile != "" {
			fmt.Println("🎨 UI File:", config.UIFile)
		}
		fmt.Println()

		if config.Storage != store.KindSQLite {
			fmt.Println("📦 Stored Items: n/a (memory store lives in the server process)")
			return nil
		}

		fmt.Println("📁 Data File:", config.DataFile)
		if _, err := os.Stat(config.DataFile); err != nil {
			fmt.Println("📦 Stored Items: 0")
			return nil
		}

		s, err := store.NewSQLiteStore(config.DataFile)
		if err != nil {
			return err
		}
		defer s.Close()

		count, err := s.Count(context.Background())
		if err != nil {
			return err
		}
		fmt.Println("📦 Stored Items:", count)
		return nil
	},
}
