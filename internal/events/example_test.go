package events_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/SAP-F-2025/skill-test-service/internal/events"
	"github.com/SAP-F-2025/skill-test-service/internal/models"
)

// A downstream consumer subscribes to the session topic and decodes the
// envelope; the event type is also available as message metadata.
func ExampleNewWatermillEventPublisher() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx := context.Background()
	messages, err := pubSub.Subscribe(ctx, "skill-test-sessions")
	if err != nil {
		panic(err)
	}

	publisher := events.NewWatermillEventPublisher(pubSub, "skill-test-sessions", logger)
	err = publisher.PublishSessionEvent(ctx, events.NewSessionEmptyEvent("sess-42", events.SessionEmptyEvent{
		Skill: "Go",
		Level: models.NewLevel("2"),
	}))
	if err != nil {
		panic(err)
	}

	msg := <-messages
	msg.Ack()

	var event events.SessionEvent
	if err := json.Unmarshal(msg.Payload, &event); err != nil {
		panic(err)
	}
	fmt.Println(msg.Metadata.Get("event_type"), event.SessionID, event.Source)
	// Output: session.empty sess-42 skill-test-service
}
