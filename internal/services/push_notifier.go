package services

import (
	"context"
	"log"

	"firebase.google.com/go/messaging"

	"rentedBack/internal/models"
)

// SocketSender delivers a notification to the recipient's open websocket, if
// any. Implemented by the websocket manager in cmd.
type SocketSender interface {
	Send(userID int, n models.Notification)
}

// PushNotifier fans a stored notification out to the recipient's websocket
// and registered FCM device tokens. Delivery is best effort: failures are
// logged and never surfaced to the workflow that wrote the notification.
type PushNotifier struct {
	FCM     *messaging.Client // nil when FCM is not configured
	Tokens  NotificationStore
	Sockets SocketSender // nil when the websocket channel is disabled
}

func (p *PushNotifier) Push(ctx context.Context, n models.Notification) {
	if p.Sockets != nil {
		p.Sockets.Send(n.UserID, n)
	}
	if p.FCM == nil {
		return
	}
	tokens, err := p.Tokens.DeviceTokensByUser(ctx, n.UserID)
	if err != nil {
		log.Printf("push: failed to load device tokens for user %d: %v", n.UserID, err)
		return
	}
	for _, token := range tokens {
		message := &messaging.Message{
			Token: token,
			Notification: &messaging.Notification{
				Title: n.Title,
				Body:  n.Message,
			},
			Data: map[string]string{
				"type":         n.Type,
				"related_type": n.RelatedType,
			},
			Android: &messaging.AndroidConfig{
				Priority: "high",
			},
			APNS: &messaging.APNSConfig{
				Headers: map[string]string{
					"apns-priority": "10",
				},
			},
		}
		if _, err := p.FCM.Send(ctx, message); err != nil {
			log.Printf("push: FCM send to user %d failed: %v", n.UserID, err)
		}
	}
}
