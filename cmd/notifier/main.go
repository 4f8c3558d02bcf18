package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/solera-dev/back-office/backend/internal/config"
	"github.com/solera-dev/back-office/backend/internal/domain"
	"github.com/wneessen/go-mail"
)

func main() {
	/**********************************************
	 * logger
	 **********************************************/
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	/**********************************************
	 * configuration
	 **********************************************/
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * mail client
	 **********************************************/
	client, err := mail.NewClient(cfg.Email.SMTP.Host,
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithSSL(),
		mail.WithPort(cfg.Email.SMTP.Port),
		mail.WithUsername(cfg.Email.SMTP.Username),
		mail.WithPassword(cfg.Email.SMTP.Password),
	)
	if err != nil {
		logger.Error("failed to create mail client", slog.String("error", err.Error()))
		return
	}
	defer client.Close()

	clientDialCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Email.SMTP.DialTimeout)*time.Second)
	defer cancel()
	if err := client.DialWithContext(clientDialCtx); err != nil {
		logger.Error("failed to connect to mail server", slog.String("error", err.Error()))
		return
	}

	/**********************************************
	 * rabbitmq
	 **********************************************/
	conn, err := amqp.Dial(cfg.RabbitMQ.DSN)
	if err != nil {
		logger.Error("failed to connect to rabbitmq", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		logger.Error("failed to open channel", slog.String("error", err.Error()))
		return
	}
	defer ch.Close()

	for _, queue := range []string{"email_queue", "notification_queue"} {
		_, err := ch.QueueDeclare(
			queue,
			true,  // durable, messages survive a broker restart
			false, // no auto-delete when the last consumer goes away
			false,
			false,
			nil,
		)
		if err != nil {
			logger.Error("failed to declare queue", slog.String("queue", queue), slog.String("error", err.Error()))
			return
		}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	mailMsgs, err := ch.Consume("email_queue", "", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to consume email queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	notificationMsgs, err := ch.Consume("notification_queue", "", false, false, false, false, nil)
	if err != nil {
		logger.Error("failed to consume notification queue", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	wg := sync.WaitGroup{}

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-mailMsgs:
				handleMailMessage(logger, cfg, client, msg)
			case msg := <-notificationMsgs:
				handleNotificationMessage(logger, cfg, client, msg)
			}
		}
	}()

	logger.Info("waiting for messages... (CTRL+C to exit)")
	<-sigChan

	slog.Info("shutting down notifier...")
	cancel()
	wg.Wait()
	slog.Info("notifier stopped")
}

func handleMailMessage(logger *slog.Logger, cfg *config.Config, client *mail.Client, msg amqp.Delivery) {
	logger.Info("mail message received", slog.String("message", string(msg.Body)))

	mailMessage := domain.MailMessage{}
	if err := json.Unmarshal(msg.Body, &mailMessage); err != nil {
		logger.Error("failed to decode mail message", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		logger.Error("failed to set mail sender", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.To(mailMessage.To); err != nil {
		logger.Error("failed to set mail recipient", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	var templateFile, subject string
	switch mailMessage.Type {
	case "create_user":
		templateFile = "./templates/new_account_email.html"
		subject = "Solera Back Office - Your account"
	case "reset_password":
		templateFile = "./templates/reset_password_otp_email.html"
		subject = "Solera Back Office - Password reset"
	case "change_email":
		templateFile = "./templates/change_email_email.html"
		subject = "Solera Back Office - Email change"
	default:
		logger.Error("unsupported mail type", slog.String("type", mailMessage.Type))
		_ = msg.Nack(false, false)
		return
	}

	tmpl, err := template.ParseFiles(templateFile)
	if err != nil {
		logger.Error("failed to parse mail template", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.SetBodyHTMLTemplate(tmpl, mailMessage.Data); err != nil {
		logger.Error("failed to set mail body", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	m.Subject(subject)

	if err := client.DialAndSend(m); err != nil {
		logger.Error("failed to send mail", slog.String("error", err.Error()))
		_ = msg.Nack(false, true) // requeue, the SMTP server may come back
		return
	}

	_ = msg.Ack(false)
}

func handleNotificationMessage(logger *slog.Logger, cfg *config.Config, client *mail.Client, msg amqp.Delivery) {
	logger.Info("notification received", slog.String("message", string(msg.Body)))

	notification := domain.NotificationMessage{}
	if err := json.Unmarshal(msg.Body, &notification); err != nil {
		logger.Error("failed to decode notification", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	m := mail.NewMsg()
	if err := m.From(cfg.Email.SMTP.Username); err != nil {
		logger.Error("failed to set mail sender", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.To(notification.Email); err != nil {
		logger.Error("failed to set mail recipient", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}

	tmpl, err := template.ParseFiles("./templates/notification_email.html")
	if err != nil {
		logger.Error("failed to parse notification template", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	if err := m.SetBodyHTMLTemplate(tmpl, notification); err != nil {
		logger.Error("failed to set mail body", slog.String("error", err.Error()))
		_ = msg.Nack(false, false)
		return
	}
	m.Subject(fmt.Sprintf("Solera Back Office - %s", notification.Title))

	if err := client.DialAndSend(m); err != nil {
		logger.Error("failed to send notification mail", slog.String("error", err.Error()))
		_ = msg.Nack(false, true)
		return
	}

	_ = msg.Ack(false)
}
