package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"cloud.google.com/go/pubsub"
)

// DecisionEventPublisher fire-and-forget publishes compliance_gate_passed
// / compliance_gate_blocked events to a Pub/Sub topic for downstream
// analytics, decoupled from the synchronous decision path and from
// whichever Dispatcher is doing the actual audit write. The topic is
// created on first use and messages are ordered per market.
type DecisionEventPublisher struct {
	client *pubsub.Client
	topic  *pubsub.Topic
	logger *slog.Logger
}

// NewDecisionEventPublisher connects to projectID/topicID, creating the
// topic if it does not already exist.
func NewDecisionEventPublisher(ctx context.Context, projectID, topicID string) (*DecisionEventPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub.NewClient: %w", err)
	}

	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("topic.Exists: %w", err)
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			client.Close()
			return nil, fmt.Errorf("CreateTopic: %w", err)
		}
	}
	topic.EnableMessageOrdering = true

	return &DecisionEventPublisher{client: client, topic: topic, logger: slog.Default()}, nil
}

// Publish publishes one Event, ordered by market id so a market's events
// are always delivered in the order they occurred.
func (p *DecisionEventPublisher) Publish(event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		p.logger.Warn("decision event marshal failed", "gate", event.GateName, "error", err)
		return
	}

	msg := &pubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"event-type": event.EventType,
			"market-id":  event.MarketID,
			"gate":       event.GateName,
		},
		OrderingKey: event.MarketID,
	}

	result := p.topic.Publish(context.Background(), msg)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if _, err := result.Get(ctx); err != nil {
			p.logger.Warn("decision event publish failed", "gate", event.GateName, "error", err)
		}
	}()
}

// Close gracefully shuts down the Pub/Sub client.
func (p *DecisionEventPublisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}
