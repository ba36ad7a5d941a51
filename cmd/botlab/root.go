package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/botlab-edu/botlab/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "botlab",
	Short: "botlab animates a programmable robot on a 2D grid",
	Long: `botlab executes command-tree programs (move, turn, repeat) against a
simulated robot, animating the pose and trail step by step.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (defaults apply when omitted)")
}

// resolveConfig loads the YAML config when --config is set, defaults otherwise.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
