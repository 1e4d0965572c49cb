package services

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"quantos/internal/models"
	"quantos/internal/types"
)

// maxNotifications caps the list; oldest entries fall off the end.
const maxNotifications = 50

// NotificationService keeps the in-memory notification list shown in the
// top-bar dropdown. Display-only state.
type NotificationService struct {
	mu   sync.RWMutex
	list []models.Notification
	hub  types.Broadcaster
}

func NewNotificationService(hub types.Broadcaster) *NotificationService {
	now := time.Now()
	return &NotificationService{
		list: []models.Notification{
			{ID: uuid.NewString(), Title: "Order Filled", Message: "Bought 100 AAPL @ 175.43", Type: models.NotificationSuccess, Read: false, CreatedAt: now.Add(-2 * time.Minute)},
			{ID: uuid.NewString(), Title: "Risk Alert", Message: "Portfolio Beta high (1.25)", Type: models.NotificationWarning, Read: false, CreatedAt: now.Add(-15 * time.Minute)},
			{ID: uuid.NewString(), Title: "System Update", Message: "Maintenance scheduled for 2 AM", Type: models.NotificationInfo, Read: true, CreatedAt: now.Add(-time.Hour)},
		},
		hub: hub,
	}
}

// Add prepends a new notification and pushes it to connected clients.
func (s *NotificationService) Add(title, message, notifType string) models.Notification {
	n := models.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Type:      notifType,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.list = append([]models.Notification{n}, s.list...)
	if len(s.list) > maxNotifications {
		s.list = s.list[:maxNotifications]
	}
	s.mu.Unlock()

	if s.hub != nil {
		s.hub.BroadcastMessage(types.Notification, n)
	}
	return n
}

// List returns a snapshot of the notification list, newest first.
func (s *NotificationService) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Notification(nil), s.list...)
}

// Clear empties the list.
func (s *NotificationService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.list = nil
}
