// Package main is the entry point for the agentic meal planner.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/easeaico/adk-meal-planner/internal/config"
	"github.com/easeaico/adk-meal-planner/internal/pipeline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"google.golang.org/adk/agent"
	"google.golang.org/adk/cmd/launcher"
	"google.golang.org/adk/cmd/launcher/full"
)

var (
	envFile string
	verbose bool
	dryRun  bool

	logger = zap.NewNop()
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes the command line and returns the process exit code.
func run(args []string) int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			fmt.Fprintln(os.Stderr, "\nshutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	root := newRootCmd()
	root.SetArgs(args)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mealplanner [prompt]",
		Short: "Plan tomorrow's lunch from recent groceries",
		Long: `mealplanner chains three agents:
  1. KitchenManager reads recent groceries and the family memory bank
  2. CreativeChef proposes three lunch options
  3. DecisionMaker picks one, records it and posts it to Discord`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zcfg := zap.NewProductionConfig()
			if verbose {
				zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err := zcfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			logger = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		Args: cobra.MaximumNArgs(1),
		RunE: runPlanner,
	}

	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with configuration")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "print the notification instead of posting it")

	root.AddCommand(
		&cobra.Command{
			Use:   "run [prompt]",
			Short: "Run the planner once",
			Args:  cobra.MaximumNArgs(1),
			RunE:  runPlanner,
		},
		&cobra.Command{
			Use:                "launch [launcher args]",
			Short:              "Serve the planner workflow through the ADK launcher (console or web)",
			DisableFlagParsing: true,
			RunE:               runLauncher,
		},
		&cobra.Command{
			Use:   "inventory",
			Short: "Print the recent grocery items without calling the model",
			Args:  cobra.NoArgs,
			RunE:  runInventory,
		},
		newPrefsCmd(),
	)
	return root
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(envFile)
	if err != nil {
		return config.Config{}, err
	}
	logger.Debug("configuration loaded",
		zap.String("store", cfg.StoreType),
		zap.String("model", cfg.Model),
		zap.Bool("workbook", cfg.WorkbookPath != ""),
	)
	return cfg, nil
}

func runPlanner(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidatePipeline(dryRun); err != nil {
		return err
	}

	p, cleanup, err := initializePipeline(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer cleanup()

	prompt := pipeline.DefaultPrompt
	if len(args) > 0 {
		prompt = args[0]
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "🚀 Starting Agentic Meal Planner...")
	decision, err := p.Run(ctx, prompt)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), decision)
	fmt.Fprintln(cmd.ErrOrStderr(), "✅ Process Complete.")
	return nil
}

func runLauncher(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidatePipeline(dryRun); err != nil {
		return err
	}

	p, cleanup, err := initializePipeline(ctx, cfg, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer cleanup()

	lcfg := &launcher.Config{
		AgentLoader: agent.NewSingleLoader(p.Agent()),
	}
	l := full.NewLauncher()
	if err := l.Execute(ctx, lcfg, args); err != nil {
		return fmt.Errorf("failed to run launcher: %w\n\n%s", err, l.CommandLineSyntax())
	}
	return nil
}

func runInventory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.ValidateInventory(); err != nil {
		return err
	}

	inv, err := newInventory(ctx, cfg)
	if err != nil {
		return err
	}
	text, err := inv.Recent(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}
