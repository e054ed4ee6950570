package cli

import (
	"fmt"

	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/spf13/cobra"
)

// NewSolveCommand creates the solve command
func NewSolveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [facts]",
		Short: "Work out the products of multiplication facts",
		Long: `Print the product of every AxB fact. Useful to check a worksheet
or to pipe into decode.`,
		Example: `  timescipher solve "7x8 3x4"
  timescipher encode "hi" | timescipher solve | timescipher decode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readMessage(args, cmd.InOrStdin(), "Enter facts: ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), gridcipher.Solve(input))
			return nil
		},
	}

	return cmd
}
