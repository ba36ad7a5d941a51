package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/botlab-edu/botlab"
	"github.com/botlab-edu/botlab/internal/compiler"
	"github.com/botlab-edu/botlab/internal/logging"
	"github.com/botlab-edu/botlab/internal/presentation/tui"
)

// runCmd executes a script file with the terminal renderer.
var runCmd = &cobra.Command{
	Use:   "run <script file>",
	Short: "Execute a command script with the terminal renderer",
	Long: `Parses a botlab script (forward/back/left/right/repeat) and animates the
robot in the terminal. Ctrl+C stops the run; the robot stays where it was
interrupted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("step-delay") {
			d, _ := cmd.Flags().GetDuration("step-delay")
			cfg.StepDelay = d
		}

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read script: %w", err)
		}
		program, err := compiler.Parse(string(source))
		if err != nil {
			return err
		}

		logger := logging.NewNop()
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger = logging.New(slog.LevelDebug)
		}

		renderer := tui.NewRenderer(cfg.CellSize, cfg.CanvasWidth, cfg.CanvasHeight)
		sim := botlab.New(
			botlab.WithCellSize(cfg.CellSize),
			botlab.WithStepDelay(cfg.StepDelay),
			botlab.WithStartDelay(cfg.StartDelay),
			botlab.WithOrigin(cfg.Origin()),
			botlab.WithHooks(renderer.Hooks()),
			botlab.WithLogger(logger),
		)
		sim.SetProgram(program)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			sim.Stop()
		}()

		if err := sim.Start(context.Background()); err != nil {
			return err
		}
		sim.Wait()

		pose := sim.Pose()
		fmt.Printf("\nfinal pose: (%.1f, %.1f) @ %.0f° [%s]\n",
			pose.X, pose.Y, pose.Angle, sim.Status())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Duration("step-delay", 500*time.Millisecond, "Delay before each command (overrides config)")
	runCmd.Flags().Bool("verbose", false, "Log each executed command to stderr")
}
