package config

type Submission struct {
	// reject submissions failing validation instead of flagging them
	Strict          bool      `mapstructure:"STRICT" json:"strict" yaml:"strict"`
	RedirectPath    string    `mapstructure:"REDIRECT_PATH" json:"redirectPath" yaml:"redirectPath"`
	InsertTimeoutMs int64     `mapstructure:"INSERT_TIMEOUT_MS" json:"insertTimeoutMs" yaml:"insertTimeoutMs"`
	RateLimit       RateLimit `mapstructure:"RATE_LIMIT" json:"rateLimit" yaml:"rateLimit"`
}

// RateLimit is a fixed window per client IP, backed by Redis.
type RateLimit struct {
	Enabled       bool  `mapstructure:"ENABLED" json:"enabled" yaml:"enabled"`
	Limit         int   `mapstructure:"LIMIT" json:"limit" yaml:"limit"`
	WindowSeconds int64 `mapstructure:"WINDOW_SECONDS" json:"windowSeconds" yaml:"windowSeconds"`
}
