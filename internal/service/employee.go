package service

import (
	"context"
	"errors"
	"time"

	"ems/config"
	"ems/internal/core"
	fluentdModel "ems/internal/database/fluentd/model"
	"ems/internal/database/mongodb/model"
	"ems/internal/dto"
	cErr "ems/internal/pkg/error"
	"ems/internal/pkg/request"
	"ems/internal/telemetry"

	"go.uber.org/zap"
)

// EmployeeStore persists one submission per call.
type EmployeeStore interface {
	Create(ctx context.Context, employee *model.Employee) (*model.Employee, error)
}

// SubmissionLogger ships the per-submission audit record.
type SubmissionLogger interface {
	LogSubmission(ctx context.Context, sub fluentdModel.SubmissionLog) error
}

type EmployeeService struct {
	logger        *zap.Logger
	trace         *telemetry.Trace
	metric        *telemetry.Metric
	store         EmployeeStore
	submissionLog SubmissionLogger
	strict        bool
	insertTimeout time.Duration
}

func NewEmployeeService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	store EmployeeStore,
	submissionLog SubmissionLogger,
) *EmployeeService {
	insertTimeout := 10 * time.Second
	if config.Submission.InsertTimeoutMs > 0 {
		insertTimeout = time.Duration(config.Submission.InsertTimeoutMs) * time.Millisecond
	}
	return &EmployeeService{
		logger:        logger,
		trace:         trace,
		metric:        metric,
		store:         store,
		submissionLog: submissionLog,
		strict:        config.Submission.Strict,
		insertTimeout: insertTimeout,
	}
}

// Submit validates the submission and stores it with a single insert.
// Validation failures only flag the record unless the service runs in strict mode.
func (s *EmployeeService) Submit(ctx context.Context, submission *dto.EmployeeSubmissionDto) (_ *dto.SubmissionResultDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	requestID := core.RequestIDFromContext(ctx)
	if requestID == "" {
		requestID = span.SpanContext().TraceID().String()
	}
	meta := core.TraceSubmissionMeta{
		EmployeeNumber: deref(submission.EmployeeNumber),
		Department:     deref(submission.Department),
		FieldsPresent:  submission.FieldsPresent(),
		Strict:         s.strict,
	}
	audit := fluentdModel.SubmissionLog{
		RequestID:      requestID,
		EmployeeNumber: meta.EmployeeNumber,
		Department:     meta.Department,
		FieldsPresent:  meta.FieldsPresent,
	}
	defer func() {
		s.trace.ApplyTraceAttributes(span, meta)
		s.metric.ObserveSubmission(core.SubmissionOutcome(meta.Outcome), meta.Flags)
		audit.Outcome, audit.Flags, audit.InsertedID = meta.Outcome, meta.Flags, meta.InsertedID
		if err := s.submissionLog.LogSubmission(ctx, audit); err != nil {
			s.logger.Warn("ship submission log failed", zap.Error(err))
		}
	}()

	flags, validationErr := request.Check(submission)
	if validationErr != nil && len(flags) == 0 {
		// not a rule violation: the validator could not inspect the struct
		meta.Outcome = string(core.SubmissionFailed)
		audit.Error = validationErr.Error()
		return nil, cErr.InternalServer(validationErr.Error())
	}
	meta.Flags = flags
	if len(flags) > 0 {
		if s.strict {
			meta.Outcome = string(core.SubmissionRejected)
			appErr := request.GetError(submission, validationErr)
			audit.Error = appErr.ErrorDesc()
			return nil, appErr
		}
		s.logger.Warn("submission stored with validation flags",
			zap.Strings("flags", flags),
			zap.String("employeeNumber", meta.EmployeeNumber),
			zap.String("requestId", requestID),
		)
	}

	insertCtx, cancel := context.WithTimeout(ctx, s.insertTimeout)
	defer cancel()

	created, err := s.store.Create(insertCtx, toEmployeeModel(submission))
	if err != nil {
		meta.Outcome = string(core.SubmissionFailed)
		audit.Error = err.Error()
		s.logger.Error("insert employee failed", zap.Error(err), zap.String("requestId", requestID))
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, cErr.DatabaseError("database insert timed out")
		}
		return nil, cErr.DatabaseError("database CreateEmployee error")
	}

	meta.Outcome = string(core.SubmissionInserted)
	meta.InsertedID = created.ID.Hex()
	return &dto.SubmissionResultDto{ID: meta.InsertedID, Flags: flags}, nil
}

func toEmployeeModel(submission *dto.EmployeeSubmissionDto) *model.Employee {
	return &model.Employee{
		EmployeeNumber:   submission.EmployeeNumber,
		FirstName:        submission.FirstName,
		LastName:         submission.LastName,
		Department:       submission.Department,
		AccessLevel:      submission.AccessLevel,
		EmploymentStatus: submission.EmploymentStatus,
		Salary:           submission.Salary,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
