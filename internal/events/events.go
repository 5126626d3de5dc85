package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/apache/pulsar-client-go/pulsar"
	"github.com/google/uuid"
)

// Event describes a change to a tracked resource.
type Event struct {
	ID         string    `json:"id"`
	Resource   string    `json:"resource"` // user, group, spending
	ResourceID int64     `json:"resource_id"`
	Action     string    `json:"action"` // created, updated, deleted, joined, left
	UserID     int64     `json:"user_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// NewEvent builds an event with a fresh id and timestamp.
func NewEvent(resource, action string, resourceID, userID int64) Event {
	return Event{
		ID:         uuid.NewString(),
		Resource:   resource,
		Action:     action,
		ResourceID: resourceID,
		UserID:     userID,
		Timestamp:  time.Now().UTC(),
	}
}

// Notifier publishes resource change events.
type Notifier interface {
	Publish(event Event) error
	Close()
}

// EventPublisher is a Pulsar-backed Notifier.
type EventPublisher struct {
	client   pulsar.Client
	producer pulsar.Producer
}

// NewEventPublisher initializes the Pulsar client and producer.
func NewEventPublisher(pulsarURL, topic string) (*EventPublisher, error) {
	client, err := pulsar.NewClient(pulsar.ClientOptions{
		URL: pulsarURL,
	})
	if err != nil {
		return nil, fmt.Errorf("could not create Pulsar client: %w", err)
	}

	producer, err := client.CreateProducer(pulsar.ProducerOptions{
		Topic: topic,
	})
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("could not create Pulsar producer: %w", err)
	}

	return &EventPublisher{
		client:   client,
		producer: producer,
	}, nil
}

// Publish sends the event to the configured topic.
func (p *EventPublisher) Publish(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("could not marshal event payload: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = p.producer.Send(ctx, &pulsar.ProducerMessage{
		Payload: payload,
		Key:     event.Resource,
	})
	if err != nil {
		return fmt.Errorf("could not publish event: %w", err)
	}
	return nil
}

func (p *EventPublisher) Close() {
	p.producer.Close()
	p.client.Close()
}

// NoopNotifier discards all events. Used when no messaging system is configured.
type NoopNotifier struct{}

func (NoopNotifier) Publish(event Event) error { return nil }
func (NoopNotifier) Close()                    {}
