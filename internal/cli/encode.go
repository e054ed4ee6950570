package cli

import (
	"fmt"
	"strings"

	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// EncodeResult is the JSON form of an encoded message
type EncodeResult struct {
	GridSize   int               `json:"grid_size"`
	Seed       int32             `json:"seed"`
	Normalized string            `json:"normalized"`
	Encoded    string            `json:"encoded"`
	Facts      []gridcipher.Fact `json:"facts"`
}

// NewEncodeCommand creates the encode command
func NewEncodeCommand() *cobra.Command {
	var (
		worksheet bool
		save      bool
	)

	cmd := &cobra.Command{
		Use:   "encode [text]",
		Short: "Encode text as multiplication facts",
		Long: `Encode text as a sequence of multiplication facts.

Letters are uppercased and anything outside A-Z becomes a space. Each
letter is replaced by a fact whose product maps to that letter in the
decoding table. Encoding the same text with the same grid and seed
always gives the same facts.`,
		Example: `  # Encode a message with the stored settings
  timescipher encode "meet me at the gate"

  # Print a numbered worksheet for students
  timescipher encode --worksheet --grid 10 "well done"

  # Encode from a file
  timescipher encode < message.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			message, err := readMessage(args, cmd.InOrStdin(), "Enter message: ")
			if err != nil {
				return err
			}

			if save {
				if err := s.remember(message, "encode"); err != nil {
					return err
				}
			}

			c := s.cipher()
			facts := c.EncodeDetailed(message)
			encoded := c.Encode(message)

			out := cmd.OutOrStdout()
			if s.json {
				return writeJSON(out, EncodeResult{
					GridSize:   s.gridSize,
					Seed:       s.seed,
					Normalized: gridcipher.NormalizeMessage(message),
					Encoded:    encoded,
					Facts:      facts,
				})
			}

			if !worksheet {
				fmt.Fprintln(out, encoded)
				return nil
			}

			cyan := color.New(color.FgCyan, color.Bold)
			yellow := color.New(color.FgYellow)

			cyan.Fprintf(out, "Secret message (%dx%d grid)\n", s.gridSize, s.gridSize)
			fmt.Fprintln(out, strings.Repeat("=", 40))
			for _, row := range formatWorksheet(facts, s.config.UI.FactsPerLine) {
				fmt.Fprintln(out, row)
			}
			fmt.Fprintln(out)
			yellow.Fprintln(out, "Solve every fact, then decode the answers with:")
			fmt.Fprintln(out, "  timescipher decode <answers>")

			return nil
		},
	}

	cmd.Flags().BoolVarP(&worksheet, "worksheet", "w", false, "Print a numbered worksheet instead of a single line")
	cmd.Flags().BoolVar(&save, "save", false, "Remember the input text in the config")

	return cmd
}
