package main

import (
	"sync"

	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"github.com/carson-networks/payment-webhook-service/api"
	"github.com/carson-networks/payment-webhook-service/internal/config"
	"github.com/carson-networks/payment-webhook-service/internal/logging"
	"github.com/carson-networks/payment-webhook-service/internal/queue"
	"github.com/carson-networks/payment-webhook-service/internal/service"
	"github.com/carson-networks/payment-webhook-service/internal/storage"
	"github.com/carson-networks/payment-webhook-service/internal/worker"
)

func main() {
	logger := logging.SetupLogging()
	logrus.Info("payment-webhook-service starting")

	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}

	nc, err := nats.Connect(envConfig.NatsURL, nats.Name("payment-webhook-service"))
	if err != nil {
		logrus.WithError(err).Fatal("nats.Connect")
		return
	}

	queueConfig := queue.DefaultJetStreamConfig()
	queueConfig.MaxDeliver = envConfig.WorkerMaxAttempts
	taskQueue, err := queue.NewJetStreamQueue(nc, queueConfig, logger)
	if err != nil {
		logrus.WithError(err).Fatal("queue.NewJetStreamQueue")
		return
	}

	svc := service.NewService(dbStorage, taskQueue)

	settlementWorker := worker.NewWorker(
		dbStorage,
		&worker.SimulatedSettler{Delay: envConfig.SettlementDelay},
		worker.Config{
			MaxAttempts:         envConfig.WorkerMaxAttempts,
			SettlementTimeout:   envConfig.SettlementTimeout,
			RetryInitialBackoff: envConfig.RetryInitialBackoff,
			RetryMaxBackoff:     envConfig.RetryMaxBackoff,
		},
		logger,
	)
	pool := worker.NewPool(settlementWorker, taskQueue, envConfig.WorkerCount)
	pool.Start()

	wg := sync.WaitGroup{}
	wg.Add(1)

	go func() {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.HTTPPort,
			Service: svc,
		}
		httpRest.Serve()
	}()

	wg.Wait()
}
