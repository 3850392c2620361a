package notify_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"crg-site/internal/logger"
	"crg-site/internal/models"
	"crg-site/internal/notify"
)

type mockSubscriberSource struct {
	subscribers []models.Subscriber
	err         error
}

func (m *mockSubscriberSource) ListActiveSubscribers() ([]models.Subscriber, error) {
	return m.subscribers, m.err
}

type mockMailer struct {
	sent []models.TalkNotificationEvent
	err  error
}

func (m *mockMailer) SendTalkAnnouncement(recipients []string, event models.TalkNotificationEvent) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, event)
	return nil
}

type mockPublisher struct {
	published [][]byte
	err       error
}

func (m *mockPublisher) Publish(key string, value []byte) error {
	if m.err != nil {
		return m.err
	}
	m.published = append(m.published, value)
	return nil
}

func testTalk() models.Talk {
	return models.Talk{
		ID:      "talk1",
		Title:   "Introduction to Zero-Knowledge Proofs",
		Speaker: "Alice Johnson",
		Date:    time.Date(2026, time.January, 24, 12, 0, 0, 0, time.UTC),
		Time:    "2:00 PM - 3:00 PM",
	}
}

func activeSubscribers() []models.Subscriber {
	return []models.Subscriber{
		{ID: "sub1", Email: "one@example.com", IsActive: true},
		{ID: "sub2", Email: "two@example.com", IsActive: true},
	}
}

func TestTalkCreatedSendsMailDirectly(t *testing.T) {
	mailer := &mockMailer{}
	service := notify.NewService(
		&mockSubscriberSource{subscribers: activeSubscribers()},
		mailer, nil, logger.NewLogger())

	service.TalkCreated(testTalk())

	assert.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"one@example.com", "two@example.com"}, mailer.sent[0].Recipients)
	assert.Equal(t, "2026-01-24", mailer.sent[0].Date)
}

func TestTalkCreatedNoSubscribers(t *testing.T) {
	mailer := &mockMailer{}
	service := notify.NewService(&mockSubscriberSource{}, mailer, nil, logger.NewLogger())

	service.TalkCreated(testTalk())

	assert.Empty(t, mailer.sent, "no mail without active subscribers")
}

func TestTalkCreatedPrefersPublisher(t *testing.T) {
	mailer := &mockMailer{}
	publisher := &mockPublisher{}
	service := notify.NewService(
		&mockSubscriberSource{subscribers: activeSubscribers()},
		mailer, publisher, logger.NewLogger())

	service.TalkCreated(testTalk())

	// Delivery is handed to the topic, not sent twice
	assert.Len(t, publisher.published, 1)
	assert.Empty(t, mailer.sent)

	var event models.TalkNotificationEvent
	assert.NoError(t, json.Unmarshal(publisher.published[0], &event))
	assert.Equal(t, "talk1", event.TalkID)
	assert.Len(t, event.Recipients, 2)
}

func TestTalkCreatedSwallowsFailures(t *testing.T) {
	// None of these may panic or propagate.
	log := logger.NewLogger()

	service := notify.NewService(
		&mockSubscriberSource{err: errors.New("db down")},
		&mockMailer{}, nil, log)
	service.TalkCreated(testTalk())

	service = notify.NewService(
		&mockSubscriberSource{subscribers: activeSubscribers()},
		&mockMailer{err: errors.New("smtp down")}, nil, log)
	service.TalkCreated(testTalk())

	service = notify.NewService(
		&mockSubscriberSource{subscribers: activeSubscribers()},
		nil, &mockPublisher{err: errors.New("broker down")}, log)
	service.TalkCreated(testTalk())
}

func TestDeliverWithoutMailer(t *testing.T) {
	service := notify.NewService(&mockSubscriberSource{}, nil, nil, logger.NewLogger())

	// Must log and return, not panic
	service.Deliver(models.TalkNotificationEvent{TalkID: "talk1", Recipients: []string{"one@example.com"}})
}
