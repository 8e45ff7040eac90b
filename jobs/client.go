package jobs

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"
)

// Client enqueues background tasks.
type Client struct {
	client *asynq.Client
}

// NewClient constructs a Client against the given Redis address.
func NewClient(redisAddr string) *Client {
	return &Client{client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr})}
}

// Enqueue places a task on the default queue.
func (c *Client) Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) error {
	if c == nil || c.client == nil {
		return fmt.Errorf("jobs: client not configured")
	}
	opts = append(opts, asynq.Queue(QueueDefault))
	if _, err := c.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("jobs: enqueue %s: %w", task.Type(), err)
	}
	return nil
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
