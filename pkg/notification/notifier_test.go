package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/courseloom/courseloom/pkg/channels/gochannel"
	"github.com/courseloom/courseloom/pkg/eventbus"
	"github.com/courseloom/courseloom/pkg/events"
	"github.com/courseloom/courseloom/pkg/log"
	"github.com/courseloom/courseloom/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturingSender struct {
	mu       sync.Mutex
	messages []Message
}

func (s *capturingSender) Send(_ context.Context, message Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.messages = append(s.messages, message)

	return nil
}

func (s *capturingSender) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]Message{}, s.messages...)
}

func TestNotifierDeliversStatusChanges(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	publisher, subscriber, err := gochannel.CreateTestChannel(watermill.NopLogger{})
	require.NoError(t, err)

	bus := eventbus.NewWatermillEventBus(publisher, subscriber)

	t.Cleanup(func() {
		require.NoError(t, bus.Close())
	})

	sender := &capturingSender{}
	notifier := NewNotifier(bus, sender, log.WithModule("notification-test"))
	require.NoError(t, notifier.Start(ctx))

	event := events.CourseStatusChanged{
		BaseEvent:    events.NewBaseEvent(events.CourseStatusChangedEvent, "course-1"),
		CourseTitle:  "Practical Distributed Systems",
		FromStatus:   models.CourseStatusInReview,
		ToStatus:     models.CourseStatusPublished,
		ActorID:      "admin-1",
		InstructorID: "instructor-1",
	}
	require.NoError(t, bus.Publish(ctx, "course-1", event))

	require.Eventually(t, func() bool {
		return len(sender.Messages()) == 1
	}, 2*time.Second, 10*time.Millisecond)

	message := sender.Messages()[0]
	assert.Equal(t, "instructor-1", message.Recipient)
	assert.Contains(t, message.Subject, "is live")
	assert.Contains(t, message.Body, "Practical Distributed Systems")
}

func TestRenderStatusChange(t *testing.T) {
	base := events.CourseStatusChanged{
		CourseTitle:     "Practical Distributed Systems",
		InstructorID:    "instructor-1",
		InstructorEmail: "nina@example.com",
	}

	t.Run("rejection includes the reason", func(t *testing.T) {
		event := base
		event.ToStatus = models.CourseStatusRejected
		event.Reason = "thumbnail is a placeholder"

		message, deliver := RenderStatusChange(event)
		require.True(t, deliver)
		assert.Equal(t, "nina@example.com", message.Recipient)
		assert.Contains(t, message.Body, "thumbnail is a placeholder")
	})

	t.Run("submission notifies the instructor", func(t *testing.T) {
		event := base
		event.ToStatus = models.CourseStatusInReview

		message, deliver := RenderStatusChange(event)
		require.True(t, deliver)
		assert.Contains(t, message.Subject, "awaiting review")
	})

	t.Run("archive notifies the instructor", func(t *testing.T) {
		event := base
		event.ToStatus = models.CourseStatusArchived

		_, deliver := RenderStatusChange(event)
		assert.True(t, deliver)
	})

	t.Run("administrative transitions stay silent", func(t *testing.T) {
		for _, status := range []models.CourseStatus{models.CourseStatusDraft, models.CourseStatusSoftDeleted} {
			event := base
			event.ToStatus = status

			_, deliver := RenderStatusChange(event)
			assert.False(t, deliver, "expected no notification for %s", status)
		}
	})

	t.Run("falls back to instructor id without email", func(t *testing.T) {
		event := base
		event.InstructorEmail = ""
		event.ToStatus = models.CourseStatusPublished

		message, deliver := RenderStatusChange(event)
		require.True(t, deliver)
		assert.Equal(t, "instructor-1", message.Recipient)
	})
}
