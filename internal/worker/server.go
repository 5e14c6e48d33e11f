package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"clipaja/internal/consumers"
)

type Worker struct {
	Processor *consumers.ViewProcessor
}

func NewWorker(processor *consumers.ViewProcessor) *Worker {
	return &Worker{
		Processor: processor,
	}
}

func (w *Worker) HandleRefreshViews(ctx context.Context, t *asynq.Task) error {
	var p consumers.RefreshViewsDTO
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	w.Processor.ProcessViewRefresh(p)
	return nil
}

func StartWorker(redisOpt asynq.RedisClientOpt, processor *consumers.ViewProcessor) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 3,
				"low":     1,
			},
		},
	)

	worker := NewWorker(processor)
	mux := asynq.NewServeMux()

	mux.HandleFunc(TypeRefreshViews, worker.HandleRefreshViews)

	if err := srv.Run(mux); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
