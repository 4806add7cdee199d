package cmd

import (
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/stochsim/stochsim/stoch"
)

var (
	// Global CLI flags
	logLevel      string // Log verbosity level
	overridesPath string // Sampling-mode override file (properties or YAML)
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "stochsim",
	Short: "Stochastic-item tooling for multi-run simulation experiments",
	Long: `stochsim inspects and smoke-tests the stochastic configuration of a
simulation model: resolve sampling-mode overrides, draw from declared
distributions, and emit the run-settings snapshot a run would be audited by.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		logrus.SetLevel(level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log verbosity (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&overridesPath, "overrides", "", "sampling-mode override file (.properties/.txt or .yaml)")
}

// loadOverrides reads the --overrides flag; no flag means no overrides.
func loadOverrides() (stoch.Overrides, error) {
	if overridesPath == "" {
		return stoch.Overrides{}, nil
	}
	if strings.HasSuffix(overridesPath, ".yaml") || strings.HasSuffix(overridesPath, ".yml") {
		return stoch.LoadOverridesYAML(overridesPath)
	}
	return stoch.LoadOverrides(overridesPath)
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}
