package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bietkhonhungvandi212/memphy/internal/config"
	"github.com/bietkhonhungvandi212/memphy/internal/log"
	util "github.com/bietkhonhungvandi212/memphy/internal/utils"
)

var (
	configFile string
	capacity   int
	pageSize   int
	mode       string
	logLevel   string

	rootCmd = &cobra.Command{
		Use:           "memphy",
		Short:         "Physical memory device and frame pool for the paging simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "YAML config file")
	rootCmd.PersistentFlags().IntVar(&capacity, "capacity", 0, "device capacity in bytes (overrides config)")
	rootCmd.PersistentFlags().IntVar(&pageSize, "page-size", 0, "frame size in bytes (overrides config)")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "", "random or sequential (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config)")

	rootCmd.AddCommand(
		formatCmd,
		simulateCmd,
		configCmd,
	)
}

// loadOptions merges the config file, if any, with command line overrides.
func loadOptions() (util.Options, error) {
	opts := util.DefaultOptions()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if capacity != 0 {
		opts.Capacity = capacity
	}
	if pageSize != 0 {
		opts.PageSize = pageSize
	}
	if mode != "" {
		m, err := util.ParseAccessMode(mode)
		if err != nil {
			return opts, err
		}
		opts.Mode = m
	}
	if logLevel != "" {
		opts.LogLevel = logLevel
	}

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func newLogger(opts util.Options) (*zap.Logger, func() error, error) {
	cfg := log.DefaultConfig()
	cfg.Level = opts.LogLevel
	cfg.File = opts.LogFile
	return log.New(cfg)
}
