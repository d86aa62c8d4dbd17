package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/vecino/marketplace/config"
	"github.com/vecino/marketplace/internal/domain/entity"
	"github.com/vecino/marketplace/internal/infrastructure/identifier"
	"github.com/vecino/marketplace/internal/infrastructure/mapper"
	pginfra "github.com/vecino/marketplace/internal/infrastructure/postgres"
	"github.com/vecino/marketplace/pkg/helpers"
	"github.com/vecino/marketplace/pkg/mailer"
	"github.com/vecino/marketplace/pkg/notify"
)

// The worker drains the notification queue: every job is persisted to the
// user's feed, and optionally emailed when Mailgun is configured.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-notification-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQNotificationQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	ids := identifier.UUID{}
	notifications := pginfra.NewNotificationRepository(pool, ids, mapper.NewNotificationMapper(ids))

	var mg *mailer.Mailgun
	if cfg.MailSendEnabled && cfg.MailgunDomain != "" && cfg.MailgunAPIKey != "" && cfg.MailgunSender != "" {
		mg = mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	}

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		log.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	// prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQNotificationQueue, true, false, false, false, nil); err != nil {
		log.Fatalf("queue declare: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQNotificationQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			var job notify.Job
			if err := json.Unmarshal(msg.Body, &job); err != nil {
				logger.WithError(err).Warn("bad message")
				_ = msg.Nack(false, false)
				continue
			}
			if job.UserID == "" {
				logger.Warn("job without user id")
				_ = msg.Nack(false, false)
				continue
			}

			jobType := entity.NotificationType(job.Type)
			if jobType == "" {
				jobType = entity.NotifySystem
			}
			n := &entity.Notification{
				UserID:  job.UserID,
				Type:    jobType,
				Title:   job.Title,
				Message: job.Message,
				Data:    job.Data,
			}
			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			if _, err := notifications.Create(c, n); err != nil {
				cancel()
				logger.WithError(err).WithField("user_id", job.UserID).Error("persist failed")
				_ = msg.Nack(false, true)
				continue
			}
			cancel()

			if mg != nil && job.Email != "" {
				body := fmt.Sprintf("%s\n\n%s", job.Title, job.Message)
				c, cancel := context.WithTimeout(ctx, 15*time.Second)
				if err := mg.Send(c, job.Email, job.Title, body, mailer.RenderNotificationHTML(job.Title, job.Message)); err != nil {
					// the feed entry exists; email is best effort
					logger.WithError(err).WithField("email", job.Email).Warn("email send failed")
				}
				cancel()
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("notification worker listening on queue=%s", cfg.RabbitMQNotificationQueue)
	<-stop
	logger.Info("shutting down...")
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
