package cli

import (
	"fmt"

	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/spf13/cobra"
)

// DecodeResult is the JSON form of a decoded message
type DecodeResult struct {
	GridSize int    `json:"grid_size"`
	Seed     int32  `json:"seed"`
	Input    string `json:"input"`
	Products string `json:"products"`
	Decoded  string `json:"decoded"`
}

// NewDecodeCommand creates the decode command
func NewDecodeCommand() *cobra.Command {
	var (
		facts bool
		save  bool
	)

	cmd := &cobra.Command{
		Use:   "decode [products]",
		Short: "Decode a sequence of products back to text",
		Long: `Decode the answers of a worksheet back to text.

The input is a list of products separated by whitespace. Anything that
is not a digit is ignored, so "7x8" is read as 78. Use --facts to
evaluate multiplication facts before decoding. Products missing from the
decoding table are skipped.`,
		Example: `  # Decode solved answers
  timescipher decode 56 12 3 3 18

  # Decode facts directly
  timescipher decode --facts "7x8 3x4"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			input, err := readMessage(args, cmd.InOrStdin(), "Enter products: ")
			if err != nil {
				return err
			}

			if save {
				if err := s.remember(input, "decode"); err != nil {
					return err
				}
			}

			products := input
			if facts {
				products = gridcipher.Solve(input)
			}

			decoded := s.cipher().Decode(products)

			out := cmd.OutOrStdout()
			if s.json {
				return writeJSON(out, DecodeResult{
					GridSize: s.gridSize,
					Seed:     s.seed,
					Input:    input,
					Products: products,
					Decoded:  decoded,
				})
			}

			fmt.Fprintln(out, decoded)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&facts, "facts", "f", false, "Input is multiplication facts (AxB) instead of products")
	cmd.Flags().BoolVar(&save, "save", false, "Remember the input text in the config")

	return cmd
}
