package service

import (
	"context"

	"prompthub/internal/api/models"
	"prompthub/internal/events"
	"prompthub/pkg/logger"
)

// Pusher delivers a payload to a user's live connections, best effort.
// *ws.Hub implements it; tests pass nil.
type Pusher interface {
	Push(userID string, payload interface{})
}

// RegisterNotificationFanout subscribes the notification service to the user
// action events. Each event becomes one notification row for the recipient,
// pushed to their websocket connections when they are online. Failures are
// logged by the bus and never reach the publishing service.
func RegisterNotificationFanout(bus *events.Bus, notifications NotificationService, pusher Pusher) {
	handler := func(notificationType string) events.Handler {
		return func(ctx context.Context, ev events.Event) error {
			senderID := ev.ActorID
			notification, err := notifications.Create(ctx, ev.RecipientID, notificationType, ev.Content, &senderID, ev.Link)
			if err != nil {
				return err
			}

			if pusher != nil {
				pusher.Push(ev.RecipientID, notification)
			}

			logger.Debug().
				Str("type", notificationType).
				Str("recipient", ev.RecipientID).
				Int64("notification_id", notification.ID).
				Msg("notification created")
			return nil
		}
	}

	bus.Subscribe(events.TypeCommentCreated, handler(models.NotificationTypeComment))
	bus.Subscribe(events.TypePromptLiked, handler(models.NotificationTypeLike))
	bus.Subscribe(events.TypeUserFollowed, handler(models.NotificationTypeFollow))
}
