package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Davincible/timescipher/internal/validation"
	"github.com/Davincible/timescipher/pkg/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// NewConfigCommand creates the config command and its subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show and change the stored settings",
		Long: `Manage the settings remembered between runs: grid size, seed, the
last input text and named presets.`,
	}

	cmd.AddCommand(
		newConfigShowCommand(),
		newConfigSetCommand(),
		newConfigResetCommand(),
		newPresetCommand(),
	)

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if s.json {
				return writeJSON(out, s.config)
			}

			cyan := color.New(color.FgCyan, color.Bold)
			cyan.Fprintln(out, "Settings")
			fmt.Fprintf(out, "  File:      %s\n", s.manager.Path())
			fmt.Fprintf(out, "  Grid size: %d\n", s.gridSize)
			fmt.Fprintf(out, "  Seed:      %d\n", s.seed)
			fmt.Fprintf(out, "  Color:     %t\n", s.config.UI.UseColor)
			if s.config.Session.Input != "" {
				fmt.Fprintf(out, "  Last %s: %q\n", s.config.Session.Mode, s.config.Session.Input)
			}
			return nil
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change a stored setting",
		Long: `Change a stored setting. Keys:
  grid         grid size, 8 to 20
  seed         integer seed, or any phrase (hashed to a seed)
  color        true or false
  per-line     facts per worksheet row
  input        text remembered for the next session`,
		Example: `  timescipher config set grid 10
  timescipher config set seed 42
  timescipher config set seed "class 4b"`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewConfigManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			if err := applySetting(cm.GetConfig(), args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}

			if err := cm.SaveConfig(); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "✓ %s updated\n", args[0])
			return nil
		},
	}
}

// applySetting validates value and stores it under key
func applySetting(cfg *config.Config, key, value string) error {
	switch key {
	case "grid", "grid-size":
		grid, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("grid size must be a number: %w", err)
		}
		if err := validation.ValidateGridSize(grid); err != nil {
			return err
		}
		cfg.Defaults.GridSize = grid
	case "seed":
		cfg.Defaults.Seed = validation.SeedFromPhrase(value)
	case "color":
		useColor, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("color must be true or false: %w", err)
		}
		cfg.UI.UseColor = useColor
	case "per-line":
		perLine, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || perLine < 0 {
			return fmt.Errorf("per-line must be a non-negative number")
		}
		cfg.UI.FactsPerLine = perLine
	case "input":
		cfg.Session.Input = value
	default:
		return fmt.Errorf("unknown setting '%s'", key)
	}
	return nil
}

func newConfigResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewConfigManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cm.Reset(); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintln(cmd.OutOrStdout(), "✓ Settings reset to defaults")
			return nil
		},
	}
}

func newPresetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preset",
		Short: "Manage named grid size and seed presets",
	}

	var description string
	save := &cobra.Command{
		Use:   "save <name>",
		Short: "Save the current grid size and seed as a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}
			if err := s.manager.AddPreset(&config.Preset{
				Name:        args[0],
				Description: description,
				GridSize:    s.gridSize,
				Seed:        s.seed,
			}); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "✓ Preset '%s' saved (grid %d, seed %d)\n", args[0], s.gridSize, s.seed)
			return nil
		},
	}
	save.Flags().StringVarP(&description, "description", "d", "", "Preset description")

	use := &cobra.Command{
		Use:   "use <name>",
		Short: "Make a preset the stored settings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewConfigManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cm.ApplyPreset(args[0]); err != nil {
				return err
			}

			green := color.New(color.FgGreen, color.Bold)
			green.Fprintf(cmd.OutOrStdout(), "✓ Using preset '%s'\n", args[0])
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSession(cmd)
			if err != nil {
				return err
			}

			presets := s.manager.ListPresets()
			out := cmd.OutOrStdout()
			if s.json {
				return writeJSON(out, presets)
			}
			if len(presets) == 0 {
				fmt.Fprintln(out, "No presets saved")
				return nil
			}
			for _, p := range presets {
				fmt.Fprintf(out, "%-16s grid %-3d seed %-11d %s\n", p.Name, p.GridSize, p.Seed, p.Description)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a preset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := config.NewConfigManager()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return cm.DeletePreset(args[0])
		},
	}

	cmd.AddCommand(save, use, list, remove)
	return cmd
}
