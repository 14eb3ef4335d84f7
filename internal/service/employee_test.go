package service

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"ems/config"
	"ems/internal/core"
	fluentdModel "ems/internal/database/fluentd/model"
	"ems/internal/database/mongodb/model"
	"ems/internal/dto"
	cErr "ems/internal/pkg/error"
	"ems/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStore struct {
	mu       sync.Mutex
	inserted []*model.Employee
	err      error
	block    bool
}

func (f *fakeStore) Create(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	employee.ID = primitive.NewObjectID()
	f.inserted = append(f.inserted, employee)
	return employee, nil
}

type fakeSubmissionLog struct {
	records []fluentdModel.SubmissionLog
}

func (f *fakeSubmissionLog) LogSubmission(_ context.Context, sub fluentdModel.SubmissionLog) error {
	f.records = append(f.records, sub)
	return nil
}

func str(s string) *string { return &s }

func fullSubmission() *dto.EmployeeSubmissionDto {
	return &dto.EmployeeSubmissionDto{
		EmployeeNumber:   str("100"),
		FirstName:        str("Jane"),
		LastName:         str("Doe"),
		Department:       str("IT"),
		AccessLevel:      str("User"),
		EmploymentStatus: str("Active"),
		Salary:           "50000",
	}
}

func newTestService(t *testing.T, conf *config.Configuration, store EmployeeStore) (*EmployeeService, *fakeSubmissionLog, *observer.ObservedLogs) {
	t.Helper()
	tr, _, err := telemetry.NewTrace(conf)
	require.NoError(t, err)
	obsCore, logs := observer.New(zapcore.DebugLevel)
	sublog := &fakeSubmissionLog{}
	return NewEmployeeService(zap.New(obsCore), tr, telemetry.NewMetric(conf), conf, store, sublog), sublog, logs
}

func TestSubmitStoresFullRecord(t *testing.T) {
	store := &fakeStore{}
	svc, sublog, _ := newTestService(t, &config.Configuration{}, store)

	result, err := svc.Submit(context.Background(), fullSubmission())
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)

	stored := store.inserted[0]
	assert.Equal(t, stored.ID.Hex(), result.ID)
	assert.Equal(t, "100", *stored.EmployeeNumber)
	assert.Equal(t, "Jane", *stored.FirstName)
	assert.Equal(t, "Doe", *stored.LastName)
	assert.Equal(t, "IT", *stored.Department)
	assert.Equal(t, "User", *stored.AccessLevel)
	assert.Equal(t, "Active", *stored.EmploymentStatus)
	assert.Equal(t, "50000", stored.Salary)
	assert.Empty(t, result.Flags)

	require.Len(t, sublog.records, 1)
	assert.Equal(t, string(core.SubmissionInserted), sublog.records[0].Outcome)
	assert.Equal(t, result.ID, sublog.records[0].InsertedID)
	assert.Equal(t, 7, sublog.records[0].FieldsPresent)
}

func TestSubmitTwiceCreatesTwoRecords(t *testing.T) {
	store := &fakeStore{}
	svc, _, _ := newTestService(t, &config.Configuration{}, store)

	first, err := svc.Submit(context.Background(), fullSubmission())
	require.NoError(t, err)
	second, err := svc.Submit(context.Background(), fullSubmission())
	require.NoError(t, err)

	assert.Len(t, store.inserted, 2)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestSubmitMissingFieldsIsFlaggedNotRejected(t *testing.T) {
	store := &fakeStore{}
	svc, sublog, logs := newTestService(t, &config.Configuration{}, store)

	result, err := svc.Submit(context.Background(), &dto.EmployeeSubmissionDto{
		EmployeeNumber: str("7"),
		FirstName:      str("Ann"),
	})
	require.NoError(t, err)
	require.Len(t, store.inserted, 1)

	stored := store.inserted[0]
	assert.Nil(t, stored.LastName)
	assert.Nil(t, stored.Salary)
	assert.Contains(t, result.Flags, "lastName:required")
	assert.Contains(t, result.Flags, "salary:required")
	assert.Equal(t, 1, logs.FilterMessage("submission stored with validation flags").Len())
	assert.Equal(t, result.Flags, sublog.records[0].Flags)
}

func TestSubmitStrictModeRejects(t *testing.T) {
	conf := &config.Configuration{}
	conf.Submission.Strict = true
	store := &fakeStore{}
	svc, sublog, _ := newTestService(t, conf, store)

	_, err := svc.Submit(context.Background(), &dto.EmployeeSubmissionDto{FirstName: str("Ann")})
	require.Error(t, err)

	var appErr *cErr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusBadRequest, appErr.HttpCode())
	assert.Equal(t, cErr.BAD_REQUEST_BODY, appErr.ErrorCode())
	assert.Empty(t, store.inserted)
	assert.Equal(t, string(core.SubmissionRejected), sublog.records[0].Outcome)
}

func TestSubmitStrictModeAcceptsCleanRecord(t *testing.T) {
	conf := &config.Configuration{}
	conf.Submission.Strict = true
	store := &fakeStore{}
	svc, _, _ := newTestService(t, conf, store)

	_, err := svc.Submit(context.Background(), fullSubmission())
	require.NoError(t, err)
	assert.Len(t, store.inserted, 1)
}

func TestSubmitInsertFailureMapsToDatabaseError(t *testing.T) {
	store := &fakeStore{err: errors.New("no reachable servers")}
	svc, sublog, logs := newTestService(t, &config.Configuration{}, store)

	result, err := svc.Submit(context.Background(), fullSubmission())
	assert.Nil(t, result)

	var appErr *cErr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusInternalServerError, appErr.HttpCode())
	assert.Equal(t, cErr.DATABASE_ERROR, appErr.ErrorCode())
	assert.Equal(t, string(core.SubmissionFailed), sublog.records[0].Outcome)
	assert.Equal(t, "no reachable servers", sublog.records[0].Error)
	assert.Equal(t, 1, logs.FilterMessage("insert employee failed").Len())
}

func TestSubmitInsertIsBoundedByTimeout(t *testing.T) {
	conf := &config.Configuration{}
	conf.Submission.InsertTimeoutMs = 20
	svc, _, _ := newTestService(t, conf, &fakeStore{block: true})

	start := time.Now()
	_, err := svc.Submit(context.Background(), fullSubmission())
	assert.Less(t, time.Since(start), 2*time.Second)

	var appErr *cErr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "database insert timed out", appErr.ErrorDesc())
}

func TestSubmissionLogNeverCarriesNamesOrSalary(t *testing.T) {
	svc, sublog, _ := newTestService(t, &config.Configuration{}, &fakeStore{})

	_, err := svc.Submit(context.Background(), fullSubmission())
	require.NoError(t, err)

	record := sublog.records[0]
	assert.Equal(t, "100", record.EmployeeNumber)
	assert.Equal(t, "IT", record.Department)
	assert.NotContains(t, record.Error, "Jane")
}

func TestHealthService(t *testing.T) {
	h := NewHealthService()
	assert.True(t, h.IsLive())
	assert.False(t, h.IsReady())
	h.SetReady(true)
	assert.True(t, h.IsReady())
	h.SetLive(false)
	assert.False(t, h.IsLive())
}

func TestSubmissionLogCarriesRequestID(t *testing.T) {
	svc, sublog, _ := newTestService(t, &config.Configuration{}, &fakeStore{})

	ctx := core.WithRequestID(context.Background(), "0190f3a2-7c1e-7b4e-9d2a-3f5c6e7a8b9c")
	_, err := svc.Submit(ctx, fullSubmission())
	require.NoError(t, err)
	assert.Equal(t, "0190f3a2-7c1e-7b4e-9d2a-3f5c6e7a8b9c", sublog.records[0].RequestID)
}
