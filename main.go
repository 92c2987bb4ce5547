package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payment-service/internal/card"
	"payment-service/internal/charge"
	"payment-service/internal/config"
	"payment-service/internal/db"
	"payment-service/internal/event"
	"payment-service/internal/gateway"
	"payment-service/internal/kafka"
	"payment-service/internal/logging"
	"payment-service/internal/mailer"
	"payment-service/internal/metrics"
	"payment-service/internal/notification"
	"payment-service/internal/payment"
	"payment-service/internal/queue"
)

func main() {
	cfg := config.MustLoadConfig(".")

	logger := logging.GetLogger(cfg.Logs)
	metrics.Setup(cfg.Metrics)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var store payment.Store
	var archive mailer.Archive

	if cfg.Database.Host != "" {
		connStr := db.GetConnStr(cfg.Database)
		db.RunMigrations(connStr, "migrations")

		pool, err := db.GetPool(connStr)
		if err != nil {
			log.Fatal(err)
		}
		defer pool.Close()

		store = db.NewPaymentRepository(pool)
		archive = db.NewEmailRepository(pool)
	} else {
		logger.Info("No database configured, using in-memory store")
		store = db.NewMemoryStore()
	}

	var deliverer mailer.Deliverer
	if cfg.Mailer.APIKey != "" {
		var opts []mailer.ClientOption
		if cfg.Mailer.TimeoutMs > 0 {
			opts = append(opts, mailer.WithTimeout(time.Duration(cfg.Mailer.TimeoutMs)*time.Millisecond))
		}
		deliverer = mailer.NewMailerSendClient(cfg.Mailer.APIKey, cfg.Mailer.FromEmail, cfg.Mailer.FromName, opts...)
	}
	mailService := mailer.NewService(deliverer, archive, logger)
	dispatcher := notification.NewDispatcher(mailService, cfg.Notification.RecipientDomain, logger)

	var strategy charge.Strategy
	var verifier card.TokenVerifier

	if cfg.Gateway.SecretKey != "" {
		var opts []gateway.StripeOption
		if cfg.Gateway.BaseURL != "" {
			opts = append(opts, gateway.WithBaseURL(cfg.Gateway.BaseURL))
		}
		if cfg.Gateway.TimeoutMs > 0 {
			opts = append(opts, gateway.WithTimeout(time.Duration(cfg.Gateway.TimeoutMs)*time.Millisecond))
		}
		client := gateway.NewStripeClient(cfg.Gateway.SecretKey, opts...)

		currency := cfg.Gateway.Currency
		if currency == "" {
			currency = "brl"
		}

		strategy = charge.NewGatewayStrategy(client, currency)
		verifier = client
	} else {
		logger.Info("No gateway credential configured, simulating charge outcomes")
		strategy = charge.NewSimulatedStrategy(charge.NewRandomSource())
	}

	validator := card.NewValidator(verifier)
	executor := charge.NewExecutor(validator, strategy, store, logger)

	// the queue path has no card data, so it always simulates
	queueProcessor := queue.NewProcessor(store, charge.NewSimulatedStrategy(charge.NewRandomSource()), dispatcher, logger)

	if cfg.Kafka.Broker.URL != "" {
		eventWriter := kafka.NewWriter(cfg.Kafka, cfg.Kafka.Topic.PaymentEvents)
		defer eventWriter.Close()
		queueProcessor.WithPublisher(event.NewPublisher(eventWriter, logger))

		intakeReader := kafka.NewReader(cfg.Kafka.Broker.URL, cfg.Kafka.Topic.ChargeRequests, cfg.Kafka.Reader.GroupID)
		defer intakeReader.Close()
		kafka.ReadChargeRequests(intakeReader, event.NewProcessor(executor, queueProcessor, logger), logger)
	}

	poller := queue.NewPoller(queueProcessor, time.Duration(cfg.Queue.PollingIntervalMs)*time.Millisecond, logger)
	poller.Start(ctx)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /liveness", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	logger.Info("Starting payment service", "port", cfg.Server.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Server.Port, mux))
}
