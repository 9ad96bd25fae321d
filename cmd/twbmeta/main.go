// Package main provides the CLI entry point for twbmeta.
package main

import (
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/ukaji3/twbmeta-go/internal/config"
	"github.com/ukaji3/twbmeta-go/internal/logging"
	"github.com/ukaji3/twbmeta-go/pkg/twbmeta"
)

var (
	cfgFile string
	cfg     config.Config
	logger  *log.Logger
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	rootCmd := &cobra.Command{
		Use:   "twbmeta",
		Short: "Extract metadata from Tableau workbook (.twb) files",
		Long: `twbmeta reads a workbook document and reports its datasources, worksheets,
dashboards, calculated fields and parameters as a multi-sheet xlsx report.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: $HOME/.twbmeta.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json")
	v.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("log.format", rootCmd.PersistentFlags().Lookup("log-format"))

	rootCmd.AddCommand(newExtractCmd(), newSummaryCmd(), newServeCmd(v))
	return rootCmd
}

// initConfig reads the config file and environment, then sets up logging.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	config.SetDefaults(v)
	config.BindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
		v.SetConfigName(".twbmeta")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var err error
	cfg, err = config.Load(v)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger = logging.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())
	if used := v.ConfigFileUsed(); used != "" {
		logger.WithField("file", used).Debug("Using config file")
	}
	return nil
}

func extractOptions() twbmeta.Options {
	return twbmeta.Options{
		MaxDepth: cfg.Extract.MaxDepth,
		MaxAttrs: cfg.Extract.MaxAttrs,
	}
}
