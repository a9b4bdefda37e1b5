package events

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"
)

func TestGoChannelPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher, subscriber := NewGoChannelPublisher(logger)
	defer publisher.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	messages, err := subscriber.Subscribe(ctx, TopicScoresRecorded)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	payload := ScoresRecorded{CourseID: "c1", StudentID: "s1", Attendance: 8, Homework: 9, Exam: 7}
	if err := publisher.Publish(ctx, TopicScoresRecorded, payload); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case msg := <-messages:
		msg.Ack()

		var event Event
		if err := json.Unmarshal(msg.Payload, &event); err != nil {
			t.Fatalf("event payload is not valid json: %v", err)
		}
		if event.Topic != TopicScoresRecorded {
			t.Errorf("event topic = %q, want %q", event.Topic, TopicScoresRecorded)
		}
		if event.ID == "" {
			t.Error("event id empty")
		}
		if event.OccurredAt.IsZero() {
			t.Error("event timestamp not set")
		}
	case <-ctx.Done():
		t.Fatal("no message received")
	}
}

func TestMockEventPublisher(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	mock := NewMockEventPublisher(logger)
	ctx := context.Background()

	_ = mock.Publish(ctx, TopicCourseCreated, CourseCreated{CourseID: "c1"})
	_ = mock.Publish(ctx, TopicCourseDeleted, CourseDeleted{CourseID: "c1"})

	if got := len(mock.GetPublishedEvents()); got != 2 {
		t.Errorf("recorded %d events, want 2", got)
	}
	if got := mock.EventsForTopic(TopicCourseCreated); len(got) != 1 {
		t.Errorf("EventsForTopic(course.created) = %d events, want 1", len(got))
	}
	if got := mock.EventsForTopic(TopicScoresRecorded); len(got) != 0 {
		t.Errorf("EventsForTopic(unpublished topic) = %d events, want 0", len(got))
	}
}
