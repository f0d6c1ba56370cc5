package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nilay320/MCP-Session-Code/pkg/calc"
	"github.com/nilay320/MCP-Session-Code/pkg/dice"
)

func newCalcCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "calc <expression...>",
		Short:   "Evaluate a calculator expression",
		Example: "  mcp-server calc '2 ^ 10'\n  mcp-server calc sqrt(-4)",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), calc.Calculate(strings.Join(args, " ")))
			return err
		},
	}
}

func newRollCmd() *cobra.Command {
	var rolls int

	cmd := &cobra.Command{
		Use:     "roll <notation>",
		Short:   "Roll dice in NdM+K notation",
		Example: "  mcp-server roll 2d6+3\n  mcp-server roll d20 -n 3",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := dice.NewRoller(nil).Roll(args[0], rolls)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), session.String())
			return err
		},
	}
	cmd.Flags().IntVarP(&rolls, "rolls", "n", 1, "number of times to roll")
	return cmd
}
