package config

type App struct {
	// runtime environment: production / test / development
	Env string `mapstructure:"ENV" json:"env" yaml:"env"`
	// listening port
	Port uint32 `mapstructure:"PORT" json:"port" yaml:"port"`
	// service name, also used as the metric prefix
	Name    string `mapstructure:"NAME" json:"name" yaml:"name"`
	Version string `mapstructure:"VERSION" json:"version" yaml:"version"`
	// proxies (IPs or CIDRs) whose X-Forwarded-For is believed; empty means the
	// socket address is the client IP
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES" json:"trusted_proxies" yaml:"trusted_proxies"`
	// mounts /swagger when true
	SwaggerEnabled bool `mapstructure:"SWAGGER_ENABLED" json:"swagger_enabled" yaml:"swagger_enabled"`
}
