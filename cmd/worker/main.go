package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/unclebandit/campaign-scheduler/internal/config"
	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/queue"
)

func main() {
	if err := run(); err != nil {
		logx.L().Errorw("worker_exit", "err", err)
		logx.Sync()
		os.Exit(1)
	}
	logx.Sync()
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logx.Init(cfg.LogLevel)

	if cfg.AMQP.URL == "" {
		return errors.New("AMQP_URL is required for the worker")
	}

	// Connect to RabbitMQ
	q, err := queue.DialAMQP(cfg.AMQP.URL)
	if err != nil {
		return err
	}
	defer q.Close()
	closed := q.NotifyClose()

	if err := queue.StartEventAuditor(q, cfg.AMQP.Queue); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logx.L().Infow("worker_running", "queue", cfg.AMQP.Queue)
	select {
	case <-ctx.Done():
		logx.L().Infow("worker_stopping")
		return nil
	case amqpErr := <-closed:
		if amqpErr == nil {
			return errors.New("rabbitmq connection closed")
		}
		return amqpErr
	}
}
