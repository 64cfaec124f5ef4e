package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-barry/items/core"
	"github.com/urfave/cli/v2"
)

var CleanCommand = &cli.Command{
	Name:  "clean",
	Usage: "Delete the SQLite data file (dataFile in items.config.yml)",
	Flags: []cli.Flag{configFlag()},
	Action: func(c *cli.Context) error {
		config, err := core.LoadConfig(c.String("config"))
		if err != nil {
			return err
		}
		target := config.DataFile

		info, err := os.Stat(target)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Println("🧼 Nothing to clean:", target)
				return nil
			}
			return fmt.Errorf("failed to access path: %w", err)
		}

		if info.IsDir() {
			return fmt.Errorf("not a data file: %s", target)
		}

		fmt.Println("🧹 Cleaning:", target)
		for _, path := range []string{target, target + "-wal", target + "-shm"} {
			if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("failed to remove %s: %w", path, err)
			}
		}

		fmt.Println("✅ Done.")
		return nil
	},
}
