package cli

import (
	"fmt"
	"path/filepath"

	"github.com/Davincible/timescipher/internal/validation"
	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/Davincible/timescipher/pkg/secure"
	"github.com/Davincible/timescipher/pkg/storage"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewKeyCommand creates the answer-key command
func NewKeyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Export or open a passphrase-protected answer key",
		Long: `An answer key holds the grid size, seed and decoding table, sealed
with a passphrase so it can be shared with colleagues but not
read by students.`,
	}

	cmd.AddCommand(newKeyExportCommand(), newKeyOpenCommand())
	return cmd
}

func keyPath(s *session, name string) string {
	if filepath.IsAbs(name) || s.config.Storage.KeyDir == "" {
		return name
	}
	return filepath.Join(s.config.Storage.KeyDir, name)
}

func newKeyExportCommand() *cobra.Command {
	var (
		note  string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Seal the current decoding table into a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			keys := storage.NewAnswerKeyStorage(keyPath(s, args[0]))
			if keys.Exists() && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", keys.Path())
			}

			passphrase, err := readPassphrase("Enter passphrase: ")
			if err != nil {
				return err
			}
			if err := validation.ValidatePassphrase(passphrase, s.config.Storage.MinPassphraseLength); err != nil {
				return err
			}

			confirm, err := readPassphrase("Confirm passphrase: ")
			if err != nil {
				return err
			}

			pass := []byte(passphrase)
			defer secure.Zero(pass)
			if !secure.ConstantTimeCompare(pass, []byte(confirm)) {
				return fmt.Errorf("passphrases do not match")
			}

			key := storage.NewAnswerKey(s.cipher(), note)
			if err := keys.SaveKey(key, pass); err != nil {
				return fmt.Errorf("failed to save answer key: %w", err)
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "✓ Answer key for grid %d, seed %d saved to %s\n",
				key.GridSize, key.Seed, keys.Path())
			return nil
		},
	}

	cmd.Flags().StringVarP(&note, "note", "n", "", "Note stored with the key")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")

	return cmd
}

func newKeyOpenCommand() *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "open <file>",
		Short: "Open an answer key and show its table",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			keys := storage.NewAnswerKeyStorage(keyPath(s, args[0]))
			passphrase, err := readPassphrase("Enter passphrase: ")
			if err != nil {
				return err
			}

			pass := []byte(passphrase)
			defer secure.Zero(pass)

			key, err := keys.LoadKey(pass)
			if err != nil {
				return fmt.Errorf("failed to open answer key: %w", err)
			}

			table, err := key.DecodingTable()
			if err != nil {
				return err
			}

			c := &gridcipher.Cipher{
				GridSize: key.GridSize,
				Seed:     key.Seed,
				Reverse:  gridcipher.BuildReverseTable(key.GridSize),
				Table:    table,
			}

			out := cmd.OutOrStdout()
			if s.json {
				return writeJSON(out, newTableResult(c))
			}

			if mismatched := key.Verify(); len(mismatched) > 0 {
				yellow := color.New(color.FgYellow, color.Bold)
				yellow.Fprintf(out, "⚠️  %d products differ from a freshly generated table\n\n", len(mismatched))
			}
			if key.Note != "" {
				fmt.Fprintf(out, "Note: %s\n", key.Note)
			}
			printLetters(out, c)

			if apply {
				stored := s.manager.GetConfig()
				stored.Defaults.GridSize = key.GridSize
				stored.Defaults.Seed = key.Seed
				if err := s.manager.SaveConfig(); err != nil {
					return err
				}
				green := color.New(color.FgGreen, color.Bold)
				green.Fprintln(out, "✓ Settings updated from answer key")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Store the key's grid size and seed as the current settings")

	return cmd
}
