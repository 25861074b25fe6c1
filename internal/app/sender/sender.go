// Package sender запускает обработчик очереди приветственных писем.
package sender

import (
	"context"
	"errors"
	"log/slog"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/trd-registration/internal/config"
	"github.com/magabrotheeeer/trd-registration/internal/lib/sl"
	"github.com/magabrotheeeer/trd-registration/internal/lib/smtp"
	"github.com/magabrotheeeer/trd-registration/internal/rabbitmq"
	senderservice "github.com/magabrotheeeer/trd-registration/internal/services/sender"
)

// ErrBrokerNotConfigured — не задан адрес RabbitMQ.
var ErrBrokerNotConfigured = errors.New("rabbitmq url is not configured")

type App struct {
	conn          *amqp.Connection
	ch            *amqp.Channel
	senderService *senderservice.SenderService
	logger        *slog.Logger
}

func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	if cfg.RabbitMQ.URL == "" {
		return nil, ErrBrokerNotConfigured
	}
	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, err
	}

	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.RegistrationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	transport := smtp.NewTransport(cfg.SMTP, logger)
	senderService := senderservice.NewSenderService(logger, transport, cfg.PublicURL)

	return &App{
		conn:          conn,
		ch:            ch,
		senderService: senderService,
		logger:        logger,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.logger, a.ch, rabbitmq.QueueWelcome, a.senderService.SendWelcome)
	if err != nil {
		a.logger.Error("failed to start welcome consumer", slog.String("queue", rabbitmq.QueueWelcome), sl.Err(err))
		return err
	}

	<-ctx.Done()
	a.logger.Info("Sender service shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}

	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}

	return nil
}
