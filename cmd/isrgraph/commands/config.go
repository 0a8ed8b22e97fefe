package commands

import (
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/signlab/isrgraph/config"
	"github.com/signlab/isrgraph/errors"
)

// ConfigCmd groups configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or initialize configuration",
	Long: `Configuration is merged from defaults, ~/.isrgraph/config.toml, the nearest
isrgraph.toml in the working directory or its parents, and ISRGRAPH_*
environment variables, in increasing precedence.

Examples:
  isrgraph config show
  isrgraph config init                  # writes ./isrgraph.toml
  isrgraph config init --user           # writes ~/.isrgraph/config.toml
  ISRGRAPH_LOADER_BATCH_SIZE=16 isrgraph config show`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration as TOML",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var (
	configInitUserFlag  bool
	configInitForceFlag bool
)

func init() {
	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)

	configInitCmd.Flags().BoolVar(&configInitUserFlag, "user", false, "Write the user config (~/.isrgraph/config.toml)")
	configInitCmd.Flags().BoolVar(&configInitForceFlag, "force", false, "Overwrite an existing file (previous versions are kept as .back1..3)")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectConfigName
	switch {
	case len(args) == 1:
		path = args[0]
	case configInitUserFlag:
		path = config.UserConfigPath()
		if path == "" {
			return errors.New("could not determine home directory")
		}
	}

	if _, err := os.Stat(path); err == nil && !configInitForceFlag {
		return errors.WithHint(
			errors.Newf("%s already exists", path),
			"pass --force to overwrite; the current file is kept as a backup",
		)
	}

	if err := config.Save(config.Default(), path); err != nil {
		return err
	}
	pterm.Success.Printf("Wrote %s\n", path)
	return nil
}
