package jobs

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/hrms-backend-go/internal/pkg/email"
	"github.com/hibiken/asynq"
)

// Enqueuer submits background work from request handling code.
type Enqueuer interface {
	EnqueueEmail(ctx context.Context, msg email.Message) error
}

// Client submits jobs to the queue.
type Client struct {
	client *asynq.Client
}

func NewClient(redisOpts asynq.RedisClientOpt) *Client {
	return &Client{client: asynq.NewClient(redisOpts)}
}

func (c *Client) EnqueueEmail(ctx context.Context, msg email.Message) error {
	task, err := NewSendEmailTask(msg)
	if err != nil {
		return err
	}
	info, err := c.client.EnqueueContext(ctx, task, asynq.Queue(QueueCritical))
	if err != nil {
		return err
	}
	slog.Debug("email task enqueued", "task_id", info.ID, "template", msg.Template)
	return nil
}

func (c *Client) EnqueueRollover(ctx context.Context, year int) error {
	task, err := NewLeaveRolloverTask(year)
	if err != nil {
		return err
	}
	_, err = c.client.EnqueueContext(ctx, task, asynq.Queue(QueueDefault))
	return err
}

// Close releases client resources.
func (c *Client) Close() error {
	return c.client.Close()
}

// NopEnqueuer drops everything; used when Redis is not configured and in demo flows.
type NopEnqueuer struct{}

func (NopEnqueuer) EnqueueEmail(ctx context.Context, msg email.Message) error {
	slog.Debug("email enqueue skipped", "template", msg.Template, "to", msg.To)
	return nil
}
