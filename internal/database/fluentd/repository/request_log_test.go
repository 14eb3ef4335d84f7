package repository

import (
	"context"
	"testing"

	"ems/config"
	"ems/internal/database/fluentd/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type posted struct {
	tag     string
	message map[string]any
}

type recordingShipper struct {
	posts []posted
}

func (r *recordingShipper) Post(ctx context.Context, tag string, message any) error {
	r.posts = append(r.posts, posted{tag: tag, message: message.(map[string]any)})
	return nil
}

func (r *recordingShipper) Close() error { return nil }

func TestLogSubmissionFillsDefaults(t *testing.T) {
	conf := &config.Configuration{}
	conf.App.Name = "ems"
	shipper := &recordingShipper{}
	repository := NewLogRepository(conf, shipper)

	err := repository.LogSubmission(context.Background(), model.SubmissionLog{
		RequestID:      "req-1",
		EmployeeNumber: "100",
		Outcome:        "inserted",
		FieldsPresent:  7,
	})
	require.NoError(t, err)
	require.Len(t, shipper.posts, 1)

	got := shipper.posts[0]
	assert.Equal(t, "submission_log", got.tag)
	assert.Equal(t, "ems", got.message["project_name"])
	assert.Equal(t, "1.0.0", got.message["version"])
	assert.Equal(t, "100", got.message["employee_number"])
	assert.NotEmpty(t, got.message["logged_at"])
	assert.NotContains(t, got.message, "flags")
}

func TestLogRequestAndResponseTags(t *testing.T) {
	conf := &config.Configuration{}
	conf.App.Version = "2.3.4"
	shipper := &recordingShipper{}
	repository := NewLogRepository(conf, shipper)

	require.NoError(t, repository.LogRequest(context.Background(), model.RequestLog{RequestID: "a", Path: "/", Method: "GET"}))
	require.NoError(t, repository.LogResponse(context.Background(), model.ResponseLog{RequestID: "a", StatusCode: 302, Location: "/index.html"}))

	require.Len(t, shipper.posts, 2)
	assert.Equal(t, "request_log", shipper.posts[0].tag)
	assert.Equal(t, "response_log", shipper.posts[1].tag)
	assert.Equal(t, "2.3.4", shipper.posts[1].message["version"])
	assert.Equal(t, "/index.html", shipper.posts[1].message["location"])
}
