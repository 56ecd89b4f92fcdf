// Package main provides the kge command line tool.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/born-ml/graph4kg/internal/config"
)

const version = "v0.1.0-dev"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	verbose    bool
	configPath string
	seed       uint32
	seedSet    bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "kge",
		Short: "Knowledge graph embedding toolkit",
		Long: `kge trains and evaluates knowledge graph embedding models
(TransE, RotatE, DistMult, ComplEx) on tab separated triple datasets.

Device selection follows FLAGS_selected_gpus; when it is unset every
visible CUDA device is used.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := zap.NewProductionConfig()
			if opts.verbose {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			logger, err := cfg.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			opts.seedSet = cmd.Flags().Changed("seed")
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = opts.logger.Sync()
		},
	}
	addPersistentFlags(root.PersistentFlags(), opts)

	root.AddCommand(
		newPlacesCmd(opts),
		newInitCmd(opts),
		newEvalCmd(opts),
		newLossCmd(opts),
		newVersionCmd(),
	)
	return root
}

func addPersistentFlags(fs *pflag.FlagSet, opts *rootOptions) {
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to the YAML config (defaults are used when empty)")
	fs.Uint32Var(&opts.seed, "seed", 0, "override the config seed")
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.seedSet {
		cfg.Seed = o.seed
		cfg.Sampler.Seed = o.seed
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "kge %s\n", version)
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
