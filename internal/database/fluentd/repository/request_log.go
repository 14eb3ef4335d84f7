package repository

import (
	"context"
	"encoding/json"
	"time"

	"ems/config"
	"ems/internal/core"
	"ems/internal/database/client"
	"ems/internal/database/fluentd/model"
)

// TimestampLayout is the timestamp format expected by the log pipeline.
const TimestampLayout = "2006-01-02 15:04:05.999999 UTC"

// LogRepository ships request, response and submission records to Fluentd.
type LogRepository struct {
	shipper client.LogShipper
	project string
	version string
}

func NewLogRepository(config *config.Configuration, shipper client.LogShipper) *LogRepository {
	version := "1.0.0"
	if config.App.Version != "" {
		version = config.App.Version
	}
	return &LogRepository{shipper: shipper, project: config.App.Name, version: version}
}

func (repository *LogRepository) LogRequest(ctx context.Context, req model.RequestLog) error {
	if req.LoggedAt == "" {
		req.LoggedAt = now()
	}
	if req.Version == "" {
		req.Version = repository.version
	}
	if req.ProjectName == "" {
		req.ProjectName = repository.project
	}
	return repository.post(ctx, core.FluentdRequest, req)
}

func (repository *LogRepository) LogResponse(ctx context.Context, resp model.ResponseLog) error {
	if resp.LoggedAt == "" {
		resp.LoggedAt = now()
	}
	if resp.Version == "" {
		resp.Version = repository.version
	}
	if resp.ProjectName == "" {
		resp.ProjectName = repository.project
	}
	return repository.post(ctx, core.FluentdResponse, resp)
}

func (repository *LogRepository) LogSubmission(ctx context.Context, sub model.SubmissionLog) error {
	if sub.LoggedAt == "" {
		sub.LoggedAt = now()
	}
	if sub.Version == "" {
		sub.Version = repository.version
	}
	if sub.ProjectName == "" {
		sub.ProjectName = repository.project
	}
	return repository.post(ctx, core.FluentdSubmission, sub)
}

// post flattens record to a map so Fluentd sees the json keys.
func (repository *LogRepository) post(ctx context.Context, tag core.FluentdSubTag, record any) error {
	b, err := json.Marshal(record)
	if err != nil {
		return err
	}
	var message map[string]any
	if err := json.Unmarshal(b, &message); err != nil {
		return err
	}
	return repository.shipper.Post(ctx, string(tag), message)
}

func now() string {
	return time.Now().UTC().Format(TimestampLayout)
}
