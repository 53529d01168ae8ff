package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"perfume-store/models"
)

const (
	NotifySuccess = "success"
	NotifyError   = "error"
)

// NotificationCenter queues short-lived feedback messages per session. Each
// notification auto-expires after a fixed TTL; expiry removes by id, not by
// position, so concurrent notifications expire independently even after
// manual dismissals reorder the queue.
type NotificationCenter struct {
	mu     sync.Mutex
	ttl    time.Duration
	queues map[string][]models.Notification
}

func NewNotificationCenter(ttl time.Duration) *NotificationCenter {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &NotificationCenter{
		ttl:    ttl,
		queues: make(map[string][]models.Notification),
	}
}

func (n *NotificationCenter) Notify(sessionID, message, kind string) models.Notification {
	notification := models.Notification{
		ID:      uuid.NewString(),
		Message: message,
		Kind:    kind,
	}

	n.mu.Lock()
	n.queues[sessionID] = append(n.queues[sessionID], notification)
	n.mu.Unlock()

	time.AfterFunc(n.ttl, func() {
		n.Dismiss(sessionID, notification.ID)
	})

	return notification
}

func (n *NotificationCenter) Dismiss(sessionID, id string) {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.queues[sessionID]
	for i := range queue {
		if queue[i].ID == id {
			queue = append(queue[:i], queue[i+1:]...)
			break
		}
	}
	if len(queue) == 0 {
		delete(n.queues, sessionID)
		return
	}
	n.queues[sessionID] = queue
}

// Active returns the session's notifications in enqueue order.
func (n *NotificationCenter) Active(sessionID string) []models.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()

	queue := n.queues[sessionID]
	out := make([]models.Notification, len(queue))
	copy(out, queue)
	return out
}
