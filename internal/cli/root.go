package cli

import (
	"log/slog"

	"github.com/spf13/cobra"
)

// NewRootCommand assembles the command tree. level is raised to debug by
// --verbose; it may be nil.
func NewRootCommand(level *slog.LevelVar) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "timescipher",
		Short: "Times-table cipher: hide messages in multiplication facts",
		Long: `Timescipher turns a multiplication grid into a secret alphabet.

Every product of the grid decodes to a letter. Common letters own many
products, rare letters few. A message is encoded as multiplication facts
such as 7x8; solving the facts and decoding the answers reveals the text.

The grid size (8 to 20) and the seed pick the alphabet. Share them, or an
answer key, with whoever needs to check the answers.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose && level != nil {
				level.Set(slog.LevelDebug)
			}
		},
	}

	rootCmd.AddCommand(
		NewEncodeCommand(),
		NewDecodeCommand(),
		NewSolveCommand(),
		NewTableCommand(),
		NewConfigCommand(),
		NewKeyCommand(),
		NewExampleCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
	rootCmd.PersistentFlags().IntP("grid", "g", 0, "Grid size (8-20), overrides the stored setting")
	rootCmd.PersistentFlags().StringP("seed", "s", "", "Integer seed, overrides the stored setting")
	rootCmd.PersistentFlags().String("seed-phrase", "", "Phrase hashed into a seed")

	return rootCmd
}
