package notify

import (
	"encoding/json"
	"fmt"

	"crg-site/internal/logger"
	"crg-site/internal/models"
)

type SubscriberSource interface {
	ListActiveSubscribers() ([]models.Subscriber, error)
}

type EventPublisher interface {
	Publish(key string, value []byte) error
}

// Service fans a created talk out to active subscribers. Every failure is
// logged and swallowed: the talk row is already committed and notification is
// strictly best-effort.
type Service struct {
	Subscribers SubscriberSource
	Mailer      Mailer
	Publisher   EventPublisher
	Logger      *logger.Logger
}

func NewService(subscribers SubscriberSource, mailer Mailer, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		Subscribers: subscribers,
		Mailer:      mailer,
		Publisher:   publisher,
		Logger:      log,
	}
}

// TalkCreated implements the talk service's Notifier hook.
func (s *Service) TalkCreated(talk models.Talk) {
	subscribers, err := s.Subscribers.ListActiveSubscribers()
	if err != nil {
		s.Logger.Error("MAIL", fmt.Sprintf("Failed to load subscribers for talk %s: %v", talk.ID, err))
		return
	}
	if len(subscribers) == 0 {
		s.Logger.Info("MAIL", fmt.Sprintf("No active subscribers to notify for talk %s", talk.ID))
		return
	}

	recipients := make([]string, 0, len(subscribers))
	for _, subscriber := range subscribers {
		recipients = append(recipients, subscriber.Email)
	}

	event := models.TalkNotificationEvent{
		TalkID:     talk.ID,
		Title:      talk.Title,
		Speaker:    talk.Speaker,
		Date:       talk.Date.Format("2006-01-02"),
		Time:       talk.Time,
		Location:   talk.Location,
		ZoomLink:   talk.ZoomLink,
		Recipients: recipients,
	}

	// With a publisher configured delivery is handed to the notification
	// topic; otherwise mail goes out directly.
	if s.Publisher != nil {
		value, err := json.Marshal(event)
		if err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Failed to marshal notification for talk %s: %v", talk.ID, err))
			return
		}
		if err := s.Publisher.Publish(talk.ID, value); err != nil {
			s.Logger.Error("KAFKA", fmt.Sprintf("Failed to publish notification for talk %s: %v", talk.ID, err))
		} else {
			s.Logger.Info("KAFKA", fmt.Sprintf("Published notification event for talk %s (%d recipients)", talk.ID, len(recipients)))
		}
		return
	}

	s.Deliver(event)
}

// Deliver sends the announcement mail for an event. Used directly when Kafka
// is disabled and by the consumer worker when it is enabled.
func (s *Service) Deliver(event models.TalkNotificationEvent) {
	if s.Mailer == nil {
		s.Logger.Warn("MAIL", "No mailer configured, skipping talk announcement")
		return
	}
	if err := s.Mailer.SendTalkAnnouncement(event.Recipients, event); err != nil {
		s.Logger.Error("MAIL", fmt.Sprintf("Failed to send announcement for talk %s: %v", event.TalkID, err))
		return
	}
	s.Logger.LogMail("ANNOUNCE", fmt.Sprintf("%d recipients", len(event.Recipients)), event.Title)
}
