package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/osikani/marketplace-payments/internal/config"
	domainErrors "github.com/osikani/marketplace-payments/internal/domain/errors"
)

const (
	defaultLeaseDuration = 5 * time.Minute
	defaultPollTimeout   = 5 * time.Second
)

// RedisQueue implements Queue on Redis. Layout per queue namespace:
// a waiting list, an active list, one hash per job, and a sorted set of
// lease expiries for crash recovery.
type RedisQueue struct {
	client        *redis.Client
	name          string
	leaseDuration time.Duration
	pollTimeout   time.Duration
	logger        *zap.Logger
}

var _ Queue = (*RedisQueue)(nil)

// NewRedisQueue connects to Redis and returns the queue.
func NewRedisQueue(cfg *config.RedisConfig, queueCfg *config.QueueConfig, logger *zap.Logger) (*RedisQueue, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	name := queueCfg.Name
	if name == "" {
		name = "payment"
	}
	leaseDuration := queueCfg.LeaseDuration
	if leaseDuration <= 0 {
		leaseDuration = defaultLeaseDuration
	}
	pollTimeout := queueCfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}

	return &RedisQueue{
		client:        client,
		name:          name,
		leaseDuration: leaseDuration,
		pollTimeout:   pollTimeout,
		logger:        logger,
	}, nil
}

// Close releases the Redis connection.
func (q *RedisQueue) Close() error {
	return q.client.Close()
}

func (q *RedisQueue) waitingKey() string { return fmt.Sprintf("queue:%s:waiting", q.name) }
func (q *RedisQueue) activeKey() string  { return fmt.Sprintf("queue:%s:active", q.name) }
func (q *RedisQueue) leaseKey() string   { return fmt.Sprintf("queue:%s:lease", q.name) }
func (q *RedisQueue) jobKey(id string) string {
	return fmt.Sprintf("queue:%s:job:%s", q.name, id)
}

// Enqueue stores the job durably and pushes it onto the waiting list.
func (q *RedisQueue) Enqueue(ctx context.Context, jobType string, payload interface{}) (*Job, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode job payload: %w", err)
	}

	now := time.Now().UTC()
	job := &Job{
		ID:        uuid.NewString(),
		Type:      jobType,
		State:     JobStateQueued,
		Payload:   data,
		CreatedAt: now,
		UpdatedAt: now,
	}

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.jobKey(job.ID), map[string]interface{}{
		"id":         job.ID,
		"type":       job.Type,
		"state":      string(job.State),
		"payload":    string(data),
		"created_at": now.Format(time.RFC3339Nano),
		"updated_at": now.Format(time.RFC3339Nano),
	})
	pipe.LPush(ctx, q.waitingKey(), job.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to enqueue job: %w", err)
	}

	q.logger.Info("job enqueued",
		zap.String("job_id", job.ID),
		zap.String("job_type", jobType))

	return job, nil
}

// Dequeue claims the next queued job under a lease.
func (q *RedisQueue) Dequeue(ctx context.Context) (*Job, error) {
	id, err := q.client.BLMove(ctx, q.waitingKey(), q.activeKey(), "RIGHT", "LEFT", q.pollTimeout).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to claim job: %w", err)
	}

	now := time.Now().UTC()
	expiry := now.Add(q.leaseDuration)

	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.jobKey(id), map[string]interface{}{
		"state":      string(JobStateActive),
		"updated_at": now.Format(time.RFC3339Nano),
	})
	pipe.ZAdd(ctx, q.leaseKey(), redis.Z{Score: float64(expiry.Unix()), Member: id})
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to lease job %s: %w", id, err)
	}

	return q.GetJob(ctx, id)
}

// Complete stores the return value and marks the job completed.
func (q *RedisQueue) Complete(ctx context.Context, id string, returnValue interface{}) error {
	data, err := json.Marshal(returnValue)
	if err != nil {
		return fmt.Errorf("failed to encode job return value: %w", err)
	}

	return q.finish(ctx, id, map[string]interface{}{
		"state":        string(JobStateCompleted),
		"return_value": string(data),
		"updated_at":   time.Now().UTC().Format(time.RFC3339Nano),
	})
}

// Fail records the failure message and marks the job failed.
func (q *RedisQueue) Fail(ctx context.Context, id string, message string) error {
	return q.finish(ctx, id, map[string]interface{}{
		"state":      string(JobStateFailed),
		"error":      message,
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func (q *RedisQueue) finish(ctx context.Context, id string, fields map[string]interface{}) error {
	pipe := q.client.TxPipeline()
	pipe.HSet(ctx, q.jobKey(id), fields)
	pipe.LRem(ctx, q.activeKey(), 0, id)
	pipe.ZRem(ctx, q.leaseKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to finish job %s: %w", id, err)
	}
	return nil
}

// GetJob returns the job or ErrJobNotFound.
func (q *RedisQueue) GetJob(ctx context.Context, id string) (*Job, error) {
	fields, err := q.client.HGetAll(ctx, q.jobKey(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load job %s: %w", id, err)
	}
	if len(fields) == 0 {
		return nil, domainErrors.ErrJobNotFound
	}

	job := &Job{
		ID:    fields["id"],
		Type:  fields["type"],
		State: JobState(fields["state"]),
		Error: fields["error"],
	}
	if v := fields["payload"]; v != "" {
		job.Payload = json.RawMessage(v)
	}
	if v := fields["return_value"]; v != "" {
		job.ReturnValue = json.RawMessage(v)
	}
	if v := fields["created_at"]; v != "" {
		job.CreatedAt, _ = time.Parse(time.RFC3339Nano, v)
	}
	if v := fields["updated_at"]; v != "" {
		job.UpdatedAt, _ = time.Parse(time.RFC3339Nano, v)
	}

	return job, nil
}

// ReclaimExpired re-queues active jobs whose lease expired.
func (q *RedisQueue) ReclaimExpired(ctx context.Context) (int, error) {
	now := time.Now().UTC().Unix()
	ids, err := q.client.ZRangeByScore(ctx, q.leaseKey(), &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(now, 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to scan expired leases: %w", err)
	}

	reclaimed := 0
	for _, id := range ids {
		pipe := q.client.TxPipeline()
		pipe.LRem(ctx, q.activeKey(), 0, id)
		pipe.LPush(ctx, q.waitingKey(), id)
		pipe.ZRem(ctx, q.leaseKey(), id)
		pipe.HSet(ctx, q.jobKey(id), map[string]interface{}{
			"state":      string(JobStateQueued),
			"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
		})
		if _, err := pipe.Exec(ctx); err != nil {
			q.logger.Error("failed to reclaim job",
				zap.String("job_id", id),
				zap.Error(err))
			continue
		}
		reclaimed++
		q.logger.Warn("reclaimed expired job lease", zap.String("job_id", id))
	}

	return reclaimed, nil
}
