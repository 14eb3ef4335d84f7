package core

import "context"

const ContextTraceKey = "telemetry_trace_ctx"

type requestIDKey struct{}

// WithRequestID attaches the per-request id used across logs and shipped records.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanDecodeMiddleware    TraceSpanName = "decode_middleware"
	SpanStaticMiddleware    TraceSpanName = "static_middleware"
	SpanMongoPing           TraceSpanName = "mongo_ping"
)

type MetricName string

const (
	MetricHttpRequestsTotal     MetricName = "requests_total"
	MetricHttpRequestDuration   MetricName = "request_duration_seconds"
	MetricSubmissionsTotal      MetricName = "submissions_total"
	MetricSubmissionFlagsTotal  MetricName = "submission_flags_total"
	MetricRateLimitTotal        MetricName = "rate_limited_total"
	MetricMongoConnectionStatus MetricName = "mongo_connection_up"
)

type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelOutcome  MetricLabelName = "outcome"
	MetricLabelFlag     MetricLabelName = "flag"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Location   string  `trace:"http.response.location,omitempty"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceHttpServerMeta struct {
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

// TraceSubmissionMeta never carries names or salary.
type TraceSubmissionMeta struct {
	EmployeeNumber string   `trace:"employee.number,omitempty"`
	Department     string   `trace:"employee.department,omitempty"`
	FieldsPresent  int      `trace:"submission.fields_present"`
	Flags          []string `trace:"submission.flags,omitempty"`
	Strict         bool     `trace:"submission.strict"`
	Outcome        string   `trace:"submission.outcome"`
	InsertedID     string   `trace:"mongo.inserted_id,omitempty"`
}

type TraceRateLimitMeta struct {
	Key       string `trace:"rl.key"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Blocked   bool   `trace:"rl.blocked"`
	Op        string `trace:"rl.op"`
}

type TraceMongoPingMeta struct {
	Database string  `trace:"db.name"`
	State    string  `trace:"db.connection_state"`
	Error    *string `trace:"error,omitempty"`
}
