// Package main provides the vcfmerge command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:     "vcfmerge",
		Short:   "Merge VCF headers from multiple sources",
		Long:    "vcfmerge combines the metadata headers of multiple VCF files into one consistent header, resolving or rejecting disagreements between sources.",
		Version: fmt.Sprintf("%s (%s) built %s", version, commit, date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress merge conflict warnings")

	cmd.AddCommand(newMergeCmd(&quiet))
	cmd.AddCommand(newTCGACmd(&quiet))
	cmd.AddCommand(newFirstIDCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig loads ~/.vcfmerge.yaml if present.
func initConfig() error {
	viper.SetConfigName(".vcfmerge")
	viper.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(home)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// newLogger builds the warning sink. A quiet run gets no sink at all, which
// disables conflict warnings but never error failures.
func newLogger(quiet bool) (*zap.Logger, error) {
	if quiet {
		return nil, nil
	}

	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.Encoding = "console"
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}
