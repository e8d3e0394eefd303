/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/changelog"
	"github.com/rowlog/rowlog/pkg/config"
)

var (
	cfgPath  string
	logLevel string

	cfg           *config.Config
	fsyncInterval time.Duration
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rowlog",
	Short: "rowlog - portable tuple changelog segments",
	Long: `rowlog reads and writes changelog segments: append-only files of
length-prefixed tuple records used to move table data between stores.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			cfgPath = config.GetDefaultConfigPath()
		}
		if config.ConfigExists(cfgPath) {
			loaded, err := config.LoadConfig(cfgPath)
			if err != nil {
				return err
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
		}

		interval, err := cfg.FsyncEvery()
		if err != nil {
			return err
		}
		fsyncInterval = interval

		level := logLevel
		if level == "" {
			level = cfg.Logging.Level
		}
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", level, err)
		}
		logrus.SetLevel(parsed)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"config file (default is ~/.config/rowlog/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "",
		"log level: debug, info, warn, error (overrides config)")
}

// segmentReaderConfig builds a reader config for path from the loaded config.
func segmentReaderConfig(path string) changelog.ReaderConfig {
	rc := changelog.ReaderConfig{Path: path}
	if cfg != nil {
		rc.MaxRecordSize = cfg.Segment.MaxRecordSize
	}
	return rc
}

// segmentWriterConfig builds a writer config for path from the loaded config.
func segmentWriterConfig(path string) changelog.WriterConfig {
	wc := changelog.WriterConfig{Path: path, FsyncInterval: fsyncInterval}
	if cfg != nil {
		wc.MaxRecordSize = cfg.Segment.MaxRecordSize
		wc.BufferSize = cfg.Segment.BufferSize
	}
	return wc
}
