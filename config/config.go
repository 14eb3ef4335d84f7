package config

type Configuration struct {
	App        App             `mapstructure:"APP" json:"app" yaml:"app"`
	Log        Log             `mapstructure:"LOG" json:"log" yaml:"log"`
	MongoDB    MongoDB         `mapstructure:"MONGODB" json:"mongodb" yaml:"mongodb"`
	Redis      Redis           `mapstructure:"REDIS" json:"redis" yaml:"redis"`
	Fluentd    Fluentd         `mapstructure:"FLUENTD" json:"fluentd" yaml:"fluentd"`
	Telemetry  TelemetryConfig `mapstructure:"TELEMETRY" json:"telemetry" yaml:"telemetry"`
	Static     Static          `mapstructure:"STATIC" json:"static" yaml:"static"`
	Submission Submission      `mapstructure:"SUBMISSION" json:"submission" yaml:"submission"`
}
