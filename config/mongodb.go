package config

type MongoDB struct {
	// connection string without credentials, e.g. mongodb+srv://cluster0.example.net
	URI string `mapstructure:"URI" json:"uri" yaml:"uri"`
	// extra query options appended to URI, e.g. retryWrites=true&w=majority
	Options  string `mapstructure:"OPTIONS" json:"options" yaml:"options"`
	Username string `mapstructure:"USERNAME" json:"-" yaml:"username"`
	Password string `mapstructure:"PASSWORD" json:"-" yaml:"password"`
	Database string `mapstructure:"DATABASE" json:"database" yaml:"database"`
	// background probe timeout in milliseconds
	PingTimeoutMs int64 `mapstructure:"PING_TIMEOUT_MS" json:"pingTimeoutMs" yaml:"pingTimeoutMs"`
	// cron spec of the heartbeat job, empty disables it
	HeartbeatSpec string `mapstructure:"HEARTBEAT_SPEC" json:"heartbeatSpec" yaml:"heartbeatSpec"`
}
