package core

// ─── MongoDB ───────────────────────────────────────────────────────────────────

type MongoCollection string

const (
	MongoCollectionEmployees MongoCollection = "employees"
)

// ConnectionState of the single MongoDB handle.
type ConnectionState string

const (
	ConnectionConnecting ConnectionState = "connecting"
	ConnectionOpen       ConnectionState = "open"
	ConnectionError      ConnectionState = "error"
)

// ─── Redis Keys ────────────────────────────────────────────────────────────────

type RedisKey string

const (
	RedisKeyServerName       RedisKey = "ems"
	RedisKeySubmissionWindow RedisKey = "submission_window"
)

// ─── Fluentd ───────────────────────────────────────────────────────────────────

type FluentdSubTag string

const (
	FluentdRequest    FluentdSubTag = "request_log"
	FluentdResponse   FluentdSubTag = "response_log"
	FluentdSubmission FluentdSubTag = "submission_log"
)

// SubmissionOutcome is recorded in the submission log and metrics.
type SubmissionOutcome string

const (
	SubmissionInserted SubmissionOutcome = "inserted"
	SubmissionRejected SubmissionOutcome = "rejected"
	SubmissionFailed   SubmissionOutcome = "failed"
)
