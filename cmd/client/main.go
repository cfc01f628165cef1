package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/wirechat-client/internal/app"
	"github.com/vovakirdan/wirechat-client/internal/config"
	"github.com/vovakirdan/wirechat-client/internal/log"
)

type flags struct {
	configPath string
	overrides  config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	f := &flags{}

	root := &cobra.Command{
		Use:          "wirechat-client",
		Short:        "Chat client driven by protocol tasks",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), f)
		},
	}
	root.PersistentFlags().StringVar(&f.configPath, "config", "", "path to client.yaml")
	root.PersistentFlags().StringVar(&f.overrides.GatewayURL, "gateway", "", "gateway WebSocket URL")
	root.PersistentFlags().StringArrayVar(&f.overrides.Nicknames, "nick", nil, "nickname candidate, in order of preference (repeatable)")
	root.PersistentFlags().StringArrayVar(&f.overrides.Channels, "join", nil, "channel to join (repeatable)")
	root.PersistentFlags().StringVar(&f.overrides.LogLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolve(f)
			if err != nil {
				return err
			}
			data, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	})
	return root
}

func resolve(f *flags) (config.Config, error) {
	bootLog := log.New("info")
	cfg, path, err := config.Load(bootLog, f.configPath)
	if err != nil {
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	cfg.UpdateFrom(f.overrides)
	return cfg, nil
}

func run(parent context.Context, f *flags) error {
	cfg, err := resolve(f)
	if err != nil {
		return err
	}
	logger := log.New(cfg.LogLevel)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger, os.Stdout)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}

	logger.Info().Str("gateway", cfg.GatewayURL).Strs("nicknames", cfg.Nicknames).Msg("starting wirechat client")
	if err := application.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("client exited with error")
		return err
	}
	logger.Info().Msg("client stopped")
	return nil
}
