package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the config file",
	Long: `Manage the per-user config file at ~/.snake/config.yaml.

Examples:
  snake config init
  snake config show --difficulty hard
  snake config name ada`,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config to ~/.snake/config.yaml",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		path, err := userConfigPath()
		if err != nil {
			return err
		}
		if _, err := os.Stat(path); err == nil && !flagConfigForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, config.DefaultYAML(), 0o644); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective config after flags",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
		return nil
	},
}

var configNameCmd = &cobra.Command{
	Use:   "name <name>",
	Short: "Save the player name in the user config",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		path, err := userConfigPath()
		if err != nil {
			return err
		}
		cfg, err := config.Load(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return err
			}
			cfg = config.Default()
		}
		cfg.Player.Name = storage.NormalizeName(args[0])
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("Player name set to %s\n", cfg.Player.Name)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd, configShowCmd, configNameCmd)
}

func userConfigPath() (string, error) {
	path := config.UserConfigPath()
	if path == "" {
		return "", errors.New("cannot determine home directory")
	}
	return path, nil
}
