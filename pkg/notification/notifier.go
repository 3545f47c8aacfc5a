// Package notification consumes lifecycle events and delivers human-readable
// notifications. Delivery is fire-and-forget from the engine's point of view:
// a failed notification never affects a committed transition.
package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/courseloom/courseloom/pkg/eventbus"
	"github.com/courseloom/courseloom/pkg/events"
	"github.com/courseloom/courseloom/pkg/models"
)

// Message is one rendered notification ready for delivery.
type Message struct {
	Recipient string
	Subject   string
	Body      string
}

// Sender delivers rendered notifications.
type Sender interface {
	Send(ctx context.Context, message Message) error
}

// LogSender writes notifications to the structured log. Used in development
// and as the default delivery channel.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-backed sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, message Message) error {
	s.logger.InfoContext(ctx, "notification delivered",
		"recipient", message.Recipient,
		"subject", message.Subject,
		"body", message.Body,
	)

	return nil
}

// Notifier subscribes to the lifecycle event stream and fans each event out
// through the configured sender.
type Notifier struct {
	eventBus eventbus.EventBus
	sender   Sender
	logger   *slog.Logger
}

// NewNotifier creates a notifier bound to the event bus.
func NewNotifier(eventBus eventbus.EventBus, sender Sender, logger *slog.Logger) *Notifier {
	return &Notifier{
		eventBus: eventBus,
		sender:   sender,
		logger:   logger,
	}
}

// Start registers event handlers and begins consuming. Blocks until the
// subscription is established; consumption continues until ctx is done.
func (n *Notifier) Start(ctx context.Context) error {
	err := n.eventBus.Handle(events.CourseStatusChangedEvent, n.handleStatusChanged)
	if err != nil {
		return fmt.Errorf("failed to register status change handler: %w", err)
	}

	err = n.eventBus.Handle(events.CourseVersionRestoredEvent, n.handleVersionRestored)
	if err != nil {
		return fmt.Errorf("failed to register version restore handler: %w", err)
	}

	return n.eventBus.Subscribe(ctx)
}

func (n *Notifier) handleStatusChanged(ctx context.Context, event any) error {
	changed, ok := event.(*events.CourseStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	message, deliver := RenderStatusChange(*changed)
	if !deliver {
		return nil
	}

	if err := n.sender.Send(ctx, message); err != nil {
		return fmt.Errorf("failed to deliver notification: %w", err)
	}

	return nil
}

func (n *Notifier) handleVersionRestored(ctx context.Context, event any) error {
	restored, ok := event.(*events.CourseVersionRestored)
	if !ok {
		return fmt.Errorf("unexpected event payload %T", event)
	}

	n.logger.InfoContext(ctx, "course content restored from snapshot",
		"course_id", restored.CourseID,
		"version_number", restored.VersionNumber,
		"new_version_number", restored.NewVersionNumber,
		"actor_id", restored.ActorID,
	)

	return nil
}

// RenderStatusChange builds the notification for a status change. The second
// return value reports whether the transition notifies anyone at all.
func RenderStatusChange(event events.CourseStatusChanged) (Message, bool) {
	recipient := event.InstructorEmail
	if recipient == "" {
		recipient = event.InstructorID
	}

	switch event.ToStatus {
	case models.CourseStatusInReview:
		return Message{
			Recipient: recipient,
			Subject:   fmt.Sprintf("%q is awaiting review", event.CourseTitle),
			Body:      fmt.Sprintf("Your course %q was submitted for review and is now locked for editing.", event.CourseTitle),
		}, true
	case models.CourseStatusPublished:
		return Message{
			Recipient: recipient,
			Subject:   fmt.Sprintf("%q is live", event.CourseTitle),
			Body:      fmt.Sprintf("Congratulations, your course %q has been published and is visible to students.", event.CourseTitle),
		}, true
	case models.CourseStatusRejected:
		return Message{
			Recipient: recipient,
			Subject:   fmt.Sprintf("%q needs changes", event.CourseTitle),
			Body:      fmt.Sprintf("Your course %q was sent back by the review team: %s", event.CourseTitle, event.Reason),
		}, true
	case models.CourseStatusArchived:
		return Message{
			Recipient: recipient,
			Subject:   fmt.Sprintf("%q was archived", event.CourseTitle),
			Body:      fmt.Sprintf("Your course %q is no longer accepting new enrollments.", event.CourseTitle),
		}, true
	case models.CourseStatusDraft, models.CourseStatusSoftDeleted:
		// Withdrawals, restores and deletions are administrative; the audit
		// log is the record for those.
		return Message{}, false
	}

	return Message{}, false
}
