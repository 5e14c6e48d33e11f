package worker

import (
	"encoding/json"

	"github.com/hibiken/asynq"

	"clipaja/internal/consumers"
)

// Task Types
const (
	TypeRefreshViews = "refresh-views"
)

// Task Creators

func NewRefreshViewsTask(payload consumers.RefreshViewsDTO) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRefreshViews, data), nil
}
