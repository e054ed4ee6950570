package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/Davincible/timescipher/internal/validation"
	"github.com/Davincible/timescipher/pkg/config"
	"github.com/Davincible/timescipher/pkg/crypto/gridcipher"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// session is the resolved state a command runs with
type session struct {
	manager  *config.ConfigManager
	config   *config.Config
	gridSize int
	seed     int32
	json     bool
}

// loadSession reads the stored settings, applies environment overrides and
// then the --grid, --seed and --seed-phrase flags. Stored values outside
// the supported range fall back to defaults; explicit flags are rejected.
func loadSession(cmd *cobra.Command) (*session, error) {
	cm, err := config.NewConfigManager()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg, err := cm.Effective()
	if err != nil {
		return nil, err
	}

	s := &session{
		manager:  cm,
		config:   cfg,
		gridSize: validation.SanitizeGridSize(cfg.Defaults.GridSize),
		seed:     cfg.Defaults.Seed,
	}

	flags := cmd.Flags()
	if flags.Changed("grid") {
		grid, _ := flags.GetInt("grid")
		if err := validation.ValidateGridSize(grid); err != nil {
			return nil, err
		}
		s.gridSize = grid
	}

	if flags.Changed("seed") && flags.Changed("seed-phrase") {
		return nil, fmt.Errorf("--seed and --seed-phrase cannot be combined")
	}
	if flags.Changed("seed") {
		raw, _ := flags.GetString("seed")
		seed, err := validation.ParseSeed(raw)
		if err != nil {
			return nil, err
		}
		s.seed = seed
	}
	if flags.Changed("seed-phrase") {
		phrase, _ := flags.GetString("seed-phrase")
		s.seed = validation.SeedFromPhrase(phrase)
	}

	s.json, _ = flags.GetBool("json")

	if !cfg.UI.UseColor {
		color.NoColor = true
	}

	return s, nil
}

func (s *session) cipher() *gridcipher.Cipher {
	return gridcipher.NewCipher(s.gridSize, s.seed)
}

// remember stores the raw input text so the next session can resume it
func (s *session) remember(input, mode string) error {
	stored := s.manager.GetConfig()
	stored.Session.Input = input
	stored.Session.Mode = mode
	return s.manager.SaveConfig()
}

// readMessage returns the text to work on: the arguments when given, piped
// stdin, or a line typed at the prompt
func readMessage(args []string, in io.Reader, prompt string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprint(os.Stderr, prompt)
		reader := bufio.NewReader(in)
		line, err := reader.ReadString('\n')
		if err != nil && err != io.EOF {
			return "", err
		}
		return validation.SanitizeInput(line), nil
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return validation.SanitizeInput(string(data)), nil
}

// readPassphrase reads a passphrase from the terminal
func readPassphrase(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	if term.IsTerminal(int(syscall.Stdin)) {
		passBytes, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", err
		}
		return string(passBytes), nil
	}

	// Fallback for non-terminal
	reader := bufio.NewReader(os.Stdin)
	pass, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(pass), nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("failed to write JSON: %w", err)
	}
	return nil
}

// formatWorksheet lays facts out in rows of perLine, numbering each row
func formatWorksheet(facts []gridcipher.Fact, perLine int) []string {
	if perLine <= 0 {
		perLine = len(facts)
	}

	var rows []string
	for start := 0; start < len(facts); start += perLine {
		end := start + perLine
		if end > len(facts) {
			end = len(facts)
		}

		cells := make([]string, 0, end-start)
		for _, f := range facts[start:end] {
			cells = append(cells, fmt.Sprintf("%7s", f.String()))
		}
		rows = append(rows, fmt.Sprintf("%3d. %s", len(rows)+1, strings.Join(cells, " ")))
	}
	return rows
}

// letterLabel renders a letter for display, making spaces visible
func letterLabel(l gridcipher.Letter) string {
	if l == gridcipher.Space {
		return "␣"
	}
	return string(l)
}
