package error

const (
	SUCCESS = 0

	// 40000 ~ 40099: bad requests (400)
	BAD_REQUEST_BODY    = 40000 // unreadable or invalid body
	BAD_REQUEST_PARAMS  = 40001
	BAD_REQUEST_HEADERS = 40002 // e.g. unsupported Content-Encoding

	// 40400 ~ 40499: not found (404)
	NOT_FOUND = 40400

	// 41300 ~ 41399: body too large (413)
	PAYLOAD_TOO_LARGE = 41300

	// 42900 ~ 42999: throttling (429)
	RATE_LIMIT_EXCEEDED = 42900

	// 50000 ~ 50199: server side (500 / 503)
	INTERNAL_ERROR      = 50000
	DATABASE_ERROR      = 50001
	SERVICE_UNAVAILABLE = 50002
)
