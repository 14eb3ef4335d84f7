package config

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"ems/utils/path"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// LoadOptions selects the configuration source. EnvPath wins over YamlPath.
// Environment variables (APP__PORT, MONGODB__URI, ...) always apply.
type LoadOptions struct {
	EnvPath  string
	YamlPath string
}

func Load(opts LoadOptions) (*Configuration, error) {
	v, useFile := newViper(opts)
	if useFile {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config failed: %w", err)
		}
	}
	return decode(v)
}

// Watch hands fn a freshly decoded Configuration each time the config file changes.
// Configurations already handed out are never mutated, so a reload only affects what
// fn applies. Without a file there is nothing to watch.
func Watch(opts LoadOptions, fn func(*Configuration, error)) error {
	v, useFile := newViper(opts)
	if !useFile {
		return nil
	}
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config failed: %w", err)
	}
	v.OnConfigChange(onFileChange(v, fn))
	v.WatchConfig()
	return nil
}

func onFileChange(v *viper.Viper, fn func(*Configuration, error)) func(fsnotify.Event) {
	// viper has already re-read the file when this runs
	return func(fsnotify.Event) {
		fn(decode(v))
	}
}

func newViper(opts LoadOptions) (*viper.Viper, bool) {
	v := viper.NewWithOptions(viper.KeyDelimiter("__"))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()
	SetDefaults(v)
	bindEnvs(v, reflect.TypeOf(Configuration{}))

	rootPath := path.RootPath()
	switch {
	case opts.EnvPath != "":
		envPath := opts.EnvPath
		if !filepath.IsAbs(envPath) {
			envPath = filepath.Join(rootPath, envPath)
		}
		v.SetConfigFile(envPath)
		v.SetConfigType("env")
		return v, true
	case opts.YamlPath != "":
		yamlPath := opts.YamlPath
		if !filepath.IsAbs(yamlPath) {
			yamlPath = filepath.Join(rootPath, "conf", yamlPath)
		}
		v.SetConfigFile(yamlPath)
		v.SetConfigType("yaml")
		return v, true
	}
	return v, false
}

func decode(v *viper.Viper) (*Configuration, error) {
	conf := &Configuration{}
	if err := v.Unmarshal(conf); err != nil {
		return nil, fmt.Errorf("unmarshal config failed: %w", err)
	}
	return conf, nil
}

// SetDefaults keeps the service runnable with nothing but MONGODB__URI set.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP__ENV", "development")
	v.SetDefault("APP__PORT", 3000)
	v.SetDefault("APP__NAME", "ems")
	v.SetDefault("APP__VERSION", "1.0.0")
	v.SetDefault("LOG__LEVEL", "info")
	v.SetDefault("MONGODB__URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB__DATABASE", "ems")
	v.SetDefault("MONGODB__PING_TIMEOUT_MS", 5000)
	v.SetDefault("MONGODB__HEARTBEAT_SPEC", "@every 30s")
	v.SetDefault("REDIS__HOST", "localhost")
	v.SetDefault("REDIS__PORT", 6379)
	v.SetDefault("FLUENTD__PORT", 24224)
	v.SetDefault("FLUENTD__TAG_PREFIX", "ems")
	v.SetDefault("STATIC__DIR", "public")
	v.SetDefault("STATIC__INDEX_PATH", "/index.html")
	v.SetDefault("SUBMISSION__REDIRECT_PATH", "/employee_management_system.html")
	v.SetDefault("SUBMISSION__INSERT_TIMEOUT_MS", 10000)
	v.SetDefault("SUBMISSION__RATE_LIMIT__LIMIT", 30)
	v.SetDefault("SUBMISSION__RATE_LIMIT__WINDOW_SECONDS", 60)
}

// bindEnvs walks the mapstructure tags so that every leaf can come from the environment.
func bindEnvs(v *viper.Viper, t reflect.Type, path ...string) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			tag = field.Name
		}
		newPath := append(append([]string{}, path...), tag)
		if field.Type.Kind() == reflect.Struct || (field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct) {
			bindEnvs(v, field.Type, newPath...)
		} else {
			_ = v.BindEnv(strings.Join(newPath, "__"))
		}
	}
}
