package cli

import (
	"fmt"
	"strings"

	"github.com/go-barry/items/calc"
	"github.com/urfave/cli/v2"
)

var CalcCommand = &cli.Command{
	Name:      "calc",
	Usage:     "Evaluate a single arithmetic expression",
	ArgsUsage: "<number> <" + strings.Join(calc.Operators, "|") + "> <number>",
	Action: func(c *cli.Context) error {
		if c.Args().Len() != 3 {
			return cli.Exit("usage: items calc <number> <op> <number>", 2)
		}

		args := c.Args().Slice()
		result, err := calc.Evaluate(args[0], args[1], args[2])
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}

		fmt.Fprintln(c.App.Writer, result.String())
		return nil
	},
}
