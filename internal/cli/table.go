package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// TableResult is the JSON form of a decoding table
type TableResult struct {
	GridSize int              `json:"grid_size"`
	Seed     int32            `json:"seed"`
	Products int              `json:"products"`
	Table    map[int]string   `json:"table"`
	Letters  map[string][]int `json:"letters"`
	Missing  []string         `json:"missing,omitempty"`
}

// NewTableCommand creates the table command
func NewTableCommand() *cobra.Command {
	var showGrid bool

	cmd := &cobra.Command{
		Use:   "table",
		Short: "Show the decoding table for the current grid and seed",
		Long: `Show which letter every product decodes to, how many products each
letter owns, and optionally the full multiplication grid with letters.`,
		Example: `  timescipher table
  timescipher table --show-grid --seed 7
  timescipher table --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			c := s.cipher()
			out := cmd.OutOrStdout()

			if s.json {
				return writeJSON(out, newTableResult(c))
			}

			if showGrid {
				printGrid(out, c)
				fmt.Fprintln(out)
			}
			printLetters(out, c)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showGrid, "show-grid", false, "Print the multiplication grid with letters")

	return cmd
}

func newTableResult(c *gridcipher.Cipher) TableResult {
	result := TableResult{
		GridSize: c.GridSize,
		Seed:     c.Seed,
		Products: c.Table.Len(),
		Table:    make(map[int]string, c.Table.Len()),
		Letters:  make(map[string][]int),
	}

	for product, letter := range c.Table {
		result.Table[product] = string(letter)
	}
	for letter, products := range c.Table.Letters() {
		result.Letters[string(letter)] = products
	}
	for _, letter := range c.Table.Missing() {
		result.Missing = append(result.Missing, string(letter))
	}
	return result
}

func printGrid(w io.Writer, c *gridcipher.Cipher) {
	header := color.New(color.FgCyan, color.Bold)
	spaceColor := color.New(color.FgHiBlack)

	header.Fprint(w, "  x ")
	for j := 1; j <= c.GridSize; j++ {
		header.Fprintf(w, "%3d", j)
	}
	fmt.Fprintln(w)

	for i := 1; i <= c.GridSize; i++ {
		header.Fprintf(w, "%3d ", i)
		for j := 1; j <= c.GridSize; j++ {
			letter := c.Table[i*j]
			cell := fmt.Sprintf("%3s", letterLabel(letter))
			if letter == gridcipher.Space {
				spaceColor.Fprint(w, cell)
				continue
			}
			fmt.Fprint(w, cell)
		}
		fmt.Fprintln(w)
	}
}

func printLetters(w io.Writer, c *gridcipher.Cipher) {
	cyan := color.New(color.FgCyan, color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed, color.Bold)

	cyan.Fprintf(w, "Decoding table: %dx%d grid, seed %d, %d products\n",
		c.GridSize, c.GridSize, c.Seed, c.Table.Len())
	fmt.Fprintln(w, strings.Repeat("=", 40))

	byLetter := c.Table.Letters()
	for _, lw := range gridcipher.Distribution() {
		products := byLetter[lw.Letter]
		if len(products) == 0 {
			continue
		}

		cells := 0
		labels := make([]string, len(products))
		for i, p := range products {
			cells += len(c.Reverse[p])
			labels[i] = fmt.Sprint(p)
		}

		green.Fprintf(w, "%s", letterLabel(lw.Letter))
		fmt.Fprintf(w, "  %2d products %3d cells  %s\n", len(products), cells, strings.Join(labels, " "))
	}

	if missing := c.Table.Missing(); len(missing) > 0 {
		labels := make([]string, len(missing))
		for i, l := range missing {
			labels[i] = string(l)
		}
		sort.Strings(labels)
		fmt.Fprintln(w)
		red.Fprintf(w, "Letters without products: %s\n", strings.Join(labels, " "))
	}
}
