package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/muhammadheryan/eyewear-store/thirdparty/rabbitmq"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newConsumerCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "consumer",
		Short: "Consume order events and feed the payment verification queue",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			consumer, err := rabbitmq.NewConsumer(
				cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password,
				cfg.BaseURL, cfg.InternalAPIKey,
			)
			if err != nil {
				logger.Error("err connect rabbitmq", zap.Error(err))
				return err
			}
			defer consumer.Close()

			if err := consumer.Start(ctx); err != nil {
				logger.Error("err start consumer", zap.Error(err))
				return err
			}

			logger.Info("order event consumer running", zap.String("api", cfg.BaseURL))
			<-ctx.Done()
			logger.Info("order event consumer stopped")
			return nil
		},
	}
}
