package main

import (
	"fmt"
	"os"

	"github.com/cfglint/cfglint/pkg/cli"
	"github.com/cfglint/cfglint/pkg/console"
	"github.com/cfglint/cfglint/pkg/constants"
	"github.com/spf13/cobra"
)

// Build-time variables set by GoReleaser
var (
	version = "dev"
)

// Global flags
var (
	verbose   bool
	colorFlag string
)

// resolveMode maps the --color flag value to an output mode
func resolveMode() (console.Mode, error) {
	switch colorFlag {
	case "auto", "":
		return console.DetectMode(), nil
	case "always":
		return console.ModeStyled, nil
	case "never":
		return console.ModePlain, nil
	default:
		return console.ModePlain, fmt.Errorf("invalid color value '%s'. Must be 'auto', 'always', or 'never'", colorFlag)
	}
}

var rootCmd = &cobra.Command{
	Use:   constants.CLIBinaryName,
	Short: "Schema-validated config files with compiler-style diagnostics",
	Long: `cfglint validates versioned JSON config files against their registered
schemas and reports failures as compiler-style diagnostics, pointing at the
exact line and column of the offending value.

Config files carry a ` + "`_version`" + ` field that selects the schema they are
validated against, so old config files keep working while new versions
are rolled out.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the " + constants.ConfigFileName + " config file",
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long: `Create a default config file at ` + constants.HiddenConfigFileName + `.

Refuses to run when a config file already exists; use 'config reset' to
start over from the defaults.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.InitConfig(); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the config file with the defaults",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.ResetConfig(); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var schemaCmd = &cobra.Command{
	Use:   "schema [version]",
	Short: "Print the JSON Schema for a config version",
	Long: `Print the JSON Schema for a config version.

Without an argument the latest version's schema is printed.

Examples:
  ` + constants.CLIBinaryName + ` config schema
  ` + constants.CLIBinaryName + ` config schema v1`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		version := ""
		if len(args) > 0 {
			version = args[0]
		}
		if err := cli.ShowSchema(version); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var lintCmd = &cobra.Command{
	Use:   "lint [files...]",
	Short: "Validate config files and report problems",
	Long: `Validate config files against their registered schemas.

Without arguments the tool's own config is validated. Each schema
violation is reported with the line and column of the offending value.

Examples:
  ` + constants.CLIBinaryName + ` config lint
  ` + constants.CLIBinaryName + ` config lint settings.json
  ` + constants.CLIBinaryName + ` config lint --watch`,
	Run: func(cmd *cobra.Command, args []string) {
		watch, _ := cmd.Flags().GetBool("watch")
		mode, err := resolveMode()
		if err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}

		if watch {
			if err := cli.WatchConfig(args, verbose, mode); err != nil {
				fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
				os.Exit(1)
			}
			return
		}

		if err := cli.LintConfig(args, verbose, mode); err != nil {
			os.Exit(1)
		}
	},
}

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Migrate the config file to the latest version",
	Run: func(cmd *cobra.Command, args []string) {
		if err := cli.UpdateConfig(verbose); err != nil {
			fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
			os.Exit(1)
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(console.FormatInfoMessage(fmt.Sprintf("%s version %s", constants.CLIBinaryName, version)))
	},
}

func init() {
	// Add global flags to root command
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output showing detailed information")
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Colorize output (auto, always, never)")

	// Add watch flag to lint command
	lintCmd.Flags().BoolP("watch", "w", false, "Watch config files and re-validate on change")

	// Add all commands to root
	configCmd.AddCommand(initCmd)
	configCmd.AddCommand(resetCmd)
	configCmd.AddCommand(schemaCmd)
	configCmd.AddCommand(lintCmd)
	configCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
