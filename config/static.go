package config

type Static struct {
	// directory holding the form and confirmation pages
	Dir string `mapstructure:"DIR" json:"dir" yaml:"dir"`
	// target of GET /
	IndexPath string `mapstructure:"INDEX_PATH" json:"indexPath" yaml:"indexPath"`
}
