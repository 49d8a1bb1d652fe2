package main

import (
	"fmt"
	"os"

	"github.com/muhammadheryan/eyewear-store/cmd/config"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title EYEWEAR STORE API
// @version 1.0
// @description Eyewear storefront API: catalogue, cart, checkout and virtual try-on
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "eyewear-store",
		Short:         "Eyewear storefront backend",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newServeCommand())
	root.AddCommand(newConsumerCommand())
	root.AddCommand(newMigrateCommand())

	return root
}

// bootstrap loads configuration and initializes the global logger.
// Callers must defer logger.Close.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	logger.Info("configuration loaded", zap.String("env", cfg.Environment), zap.String("db_driver", cfg.Database.Driver))
	return cfg, nil
}
