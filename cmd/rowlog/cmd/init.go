/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rowlog/rowlog/pkg/config"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write a default configuration file. The file goes to --config if
given, otherwise to the platform default location.

Examples:
  rowlog init
  rowlog init --config ./rowlog.yaml --data-dir /var/lib/rowlog`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dataDir, _ := cmd.Flags().GetString("data-dir")
		force, _ := cmd.Flags().GetBool("force")

		if config.ConfigExists(cfgPath) && !force {
			cmd.Printf("Config already exists at %s. Use --force to overwrite.\n", cfgPath)
			return nil
		}

		written, err := config.BootstrapConfig(cfgPath, dataDir)
		if err != nil {
			return err
		}

		cmd.Printf("Wrote %s\n", cfgPath)
		cmd.Printf("Data directory: %s\n", written.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("data-dir", "", "data directory to record in the config")
	initCmd.Flags().Bool("force", false, "overwrite an existing config file")
}
