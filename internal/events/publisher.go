// Package events publishes domain events. Publishing is best effort: a
// failed publish is logged by the caller and never changes the outcome of
// the operation that produced it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Topics carried on the bus.
const (
	TopicCourseCreated   = "course.created"
	TopicCourseDeleted   = "course.deleted"
	TopicRosterEnrolled  = "roster.enrolled"
	TopicRosterUnrolled  = "roster.unenrolled"
	TopicScoresRecorded  = "roster.scores_recorded"
	TopicUserRoleChanged = "user.role_changed"
	TopicSessionChanged  = "session.changed"
)

// Event is the envelope serialized onto the bus.
type Event struct {
	ID         string      `json:"id"`
	Topic      string      `json:"topic"`
	OccurredAt time.Time   `json:"occurred_at"`
	Payload    interface{} `json:"payload"`
}

// Payload shapes.
type (
	CourseCreated struct {
		CourseID  string `json:"course_id"`
		Name      string `json:"name"`
		TeacherID string `json:"teacher_id"`
	}

	CourseDeleted struct {
		CourseID string `json:"course_id"`
	}

	RosterChanged struct {
		CourseID  string `json:"course_id"`
		StudentID string `json:"student_id"`
	}

	ScoresRecorded struct {
		CourseID   string  `json:"course_id"`
		StudentID  string  `json:"student_id"`
		Attendance float64 `json:"attendance"`
		Homework   float64 `json:"homework"`
		Exam       float64 `json:"exam"`
	}

	RoleChanged struct {
		UserID  string `json:"user_id"`
		OldRole string `json:"old_role"`
		NewRole string `json:"new_role"`
	}

	SessionChanged struct {
		// Nil on sign-out.
		UserID *string `json:"user_id"`
	}
)

// EventPublisher is the producing side of the bus.
type EventPublisher interface {
	Publish(ctx context.Context, topic string, payload interface{}) error
	Close() error
}

// WatermillPublisher publishes events through a watermill backend.
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewGoChannelPublisher returns an in-process publisher plus its subscriber
// side, used when no broker is configured.
func NewGoChannelPublisher(logger *slog.Logger) (*WatermillPublisher, message.Subscriber) {
	ch := gochannel.NewGoChannel(gochannel.Config{}, watermill.NewSlogLogger(logger))
	return &WatermillPublisher{publisher: ch}, ch
}

// NewKafkaPublisher returns a publisher backed by Kafka.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (*WatermillPublisher, error) {
	pub, err := kafka.NewPublisher(kafka.PublisherConfig{
		Brokers:   brokers,
		Marshaler: kafka.DefaultMarshaler{},
	}, watermill.NewSlogLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	return &WatermillPublisher{publisher: pub}, nil
}

func (p *WatermillPublisher) Publish(ctx context.Context, topic string, payload interface{}) error {
	event := Event{
		ID:         watermill.NewUUID(),
		Topic:      topic,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, data)
	msg.SetContext(ctx)
	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

func (p *WatermillPublisher) Close() error {
	return p.publisher.Close()
}
