package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/solera-dev/back-office/backend/internal/domain"
)

// publishMail queues an account mail. The caller decides whether a publish
// failure fails the request; OTP flows do, because without the mail the user
// is stuck.
func (h *Handler) publishMail(msg domain.MailMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	return h.mailChannel.PublishWithContext(
		ctx,
		"",
		"email_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// notify queues a staff notification. Delivery is best effort: a broker
// problem must never fail the scheduling request that triggered it, so
// failures are only logged.
func (h *Handler) notify(msg domain.NotificationMessage) {
	body, err := json.Marshal(msg)
	if err != nil {
		slog.Warn("failed to marshal notification", "error", err, "userID", msg.UserID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(h.config.RabbitMQ.PublishTimeout)*time.Second)
	defer cancel()

	if err := h.mailChannel.PublishWithContext(
		ctx,
		"",
		"notification_queue",
		true,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	); err != nil {
		slog.Warn("failed to publish notification", "error", err, "userID", msg.UserID, "type", msg.Type)
	}
}

// notifyUser looks the recipient up and queues the notification. Used where
// the caller only has a user id.
func (h *Handler) notifyUser(userID int64, title string, message string, notificationType string, relatedEntityID int64) {
	user, err := h.repository.GetUserByID(userID)
	if err != nil {
		slog.Warn("failed to load notification recipient", "error", err, "userID", userID)
		return
	}

	h.notify(domain.NotificationMessage{
		UserID:          user.ID,
		Email:           user.Email,
		FullName:        user.FullName,
		Title:           title,
		Message:         message,
		Type:            notificationType,
		RelatedEntityID: relatedEntityID,
	})
}
