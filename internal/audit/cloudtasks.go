package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
)

// CloudTasksDispatcher enqueues one Cloud Task per Event instead of
// writing in a bare goroutine, so an audit write survives a process
// restart between enqueue and delivery. Every event is enqueued toward a
// single fixed write endpoint.
type CloudTasksDispatcher struct {
	client        *cloudtasks.Client
	queuePath     string
	writeEndpoint string
	logger        *slog.Logger
	fallback      *GoroutineDispatcher
}

// NewCloudTasksDispatcher creates a Cloud Tasks-backed dispatcher.
// writeEndpoint is the HTTP URL Cloud Tasks will POST the Event JSON to
// (typically an internal handler that calls an engine.AuditSink). A
// non-nil fallback is used if enqueueing fails, matching
// CloudDispatcher's local-dev fallback pattern.
func NewCloudTasksDispatcher(ctx context.Context, projectID, locationID, queueID, writeEndpoint string, fallback *GoroutineDispatcher) (*CloudTasksDispatcher, error) {
	client, err := cloudtasks.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("cloudtasks.NewClient: %w", err)
	}

	queuePath := fmt.Sprintf("projects/%s/locations/%s/queues/%s", projectID, locationID, queueID)

	return &CloudTasksDispatcher{
		client:        client,
		queuePath:     queuePath,
		writeEndpoint: writeEndpoint,
		logger:        slog.Default(),
		fallback:      fallback,
	}, nil
}

// Dispatch enqueues a Cloud Task carrying the Event as an HTTP POST body.
// Enqueueing itself runs in a detached goroutine so Dispatch never blocks
// the caller's decision path.
func (d *CloudTasksDispatcher) Dispatch(_ context.Context, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		d.logger.Warn("audit event marshal failed", "gate", event.GateName, "error", err)
		return
	}

	req := &taskspb.CreateTaskRequest{
		Parent: d.queuePath,
		Task: &taskspb.Task{
			MessageType: &taskspb.Task_HttpRequest{
				HttpRequest: &taskspb.HttpRequest{
					HttpMethod: taskspb.HttpMethod_POST,
					Url:        d.writeEndpoint,
					Headers:    map[string]string{"Content-Type": "application/json"},
					Body:       payload,
				},
			},
		},
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if _, err := d.client.CreateTask(ctx, req); err != nil {
			d.logger.Warn("cloud tasks enqueue failed", "gate", event.GateName, "error", err)
			if d.fallback != nil {
				d.fallback.Dispatch(ctx, event)
			}
		}
	}()
}

// Close releases the Cloud Tasks client.
func (d *CloudTasksDispatcher) Close() error {
	return d.client.Close()
}
