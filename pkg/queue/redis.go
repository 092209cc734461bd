package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/edoc/booking-api/internal/model"
)

const defaultKey = "reminders:pending"

// RedisQueue keeps reminder jobs in a sorted set scored by fire-time, so
// pending reminders survive process restarts and a worker can drain what is
// due.
type RedisQueue struct {
	client *redis.Client
	key    string
}

func NewRedisQueue(url string) (*RedisQueue, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisQueue{client: client, key: defaultKey}, nil
}

func (q *RedisQueue) Enqueue(ctx context.Context, job model.ReminderJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal reminder job: %w", err)
	}

	err = q.client.ZAdd(ctx, q.key, redis.Z{
		Score:  float64(job.FireAt.Unix()),
		Member: payload,
	}).Err()
	if err != nil {
		return fmt.Errorf("failed to enqueue reminder job: %w", err)
	}
	return nil
}

// PopDue returns up to limit jobs whose fire-time has passed. Each job is
// removed before it is returned; a member already removed by a concurrent
// consumer is skipped.
func (q *RedisQueue) PopDue(ctx context.Context, now time.Time, limit int64) ([]model.ReminderJob, error) {
	members, err := q.client.ZRangeByScore(ctx, q.key, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(now.Unix(), 10),
		Count: limit,
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read due reminder jobs: %w", err)
	}

	jobs := make([]model.ReminderJob, 0, len(members))
	for _, member := range members {
		removed, err := q.client.ZRem(ctx, q.key, member).Result()
		if err != nil {
			return jobs, fmt.Errorf("failed to claim reminder job: %w", err)
		}
		if removed == 0 {
			continue
		}

		var job model.ReminderJob
		if err := json.Unmarshal([]byte(member), &job); err != nil {
			return jobs, fmt.Errorf("failed to unmarshal reminder job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

func (q *RedisQueue) Close() error {
	return q.client.Close()
}
