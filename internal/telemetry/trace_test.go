package telemetry

import (
	"context"
	"errors"
	"testing"

	"ems/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettifyFuncName(t *testing.T) {
	cases := map[string]string{
		"ems/internal/handler.(*EmployeeHandler).Submit-fm":         "EmployeeHandler.Submit",
		"ems/internal/service.(*EmployeeService).Submit":            "EmployeeService.Submit",
		"ems/internal/middleware.(*Static).Handler.func1":           "Static.Handler",
		"ems/internal/database/mongodb/repository.NewEmployeeRepository": "NewEmployeeRepository",
	}
	for in, want := range cases {
		assert.Equal(t, want, prettifyFuncName(in), in)
	}
}

func TestParseTraceTag(t *testing.T) {
	key, omit := parseTraceTag("employee.number,omitempty")
	assert.Equal(t, "employee.number", key)
	assert.True(t, omit)

	key, omit = parseTraceTag("submission.strict")
	assert.Equal(t, "submission.strict", key)
	assert.False(t, omit)

	key, _ = parseTraceTag("-")
	assert.Empty(t, key)
}

func TestDisabledTraceIsNoop(t *testing.T) {
	tr, cleanup, err := NewTrace(&config.Configuration{})
	require.NoError(t, err)
	defer cleanup()

	ctx, span, end := tr.WithSpan(context.Background())
	require.NotNil(t, ctx)
	assert.False(t, span.IsRecording())
	// must not panic on a non-recording span
	tr.ApplyTraceAttributes(span, struct {
		Name string `trace:"name"`
	}{Name: "x"})
	end(errors.New("boom"))
}

func TestDisabledMetricIsSafe(t *testing.T) {
	m := NewMetric(&config.Configuration{})
	m.ObserveSubmission("inserted", []string{"salary:required"})
	m.SetMongoState("open")
	assert.NotNil(t, m.Handler())
}

func TestEnabledMetricRecordsSubmissions(t *testing.T) {
	conf := &config.Configuration{}
	conf.App.Name = "ems_test"
	conf.Telemetry.Metric.Enabled = true

	// private registries allow building the metric set more than once
	first := NewMetric(conf)
	second := NewMetric(conf)
	require.NotNil(t, first.SubmissionsTotal)
	require.NotNil(t, second.SubmissionsTotal)

	first.ObserveSubmission("inserted", []string{"salary:salary"})
	families, err := first.registry.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["ems_test_submissions_total"])
	assert.True(t, names["ems_test_submission_flags_total"])
}
