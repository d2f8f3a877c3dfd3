package authstate

import (
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g.
// AUTH_STATE_REVALIDATE_INTERVAL=5m or AUTH_STATE_LOG_LEVEL=debug.
const EnvPrefix = "AUTH_STATE"

// Config holds controller settings
type Config struct {
	// RevalidateOnFocus re-checks the token whenever a FocusSource fires
	RevalidateOnFocus bool `mapstructure:"revalidate_on_focus"`
	// RevalidateInterval adds a periodic revalidation, zero disables it
	RevalidateInterval time.Duration `mapstructure:"revalidate_interval"`
	// LoadOnMount runs LoadUser when the controller is mounted
	LoadOnMount bool      `mapstructure:"load_on_mount"`
	Log         LogConfig `mapstructure:"log"`
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		RevalidateOnFocus: true,
		LoadOnMount:       true,
		Log: LogConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// LoadConfig reads settings from path (any format viper understands) and
// applies AUTH_STATE_* environment overrides. An empty path loads defaults
// plus environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to read auth state config").
				WithMetadata(map[string]any{"path": path})
		}
	}

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode auth state config")
	}

	if cfg.RevalidateInterval < 0 {
		return Config{}, goerrors.New("revalidate_interval must not be negative", goerrors.CategoryValidation).
			WithCode(goerrors.CodeBadRequest)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("revalidate_on_focus", cfg.RevalidateOnFocus)
	v.SetDefault("revalidate_interval", cfg.RevalidateInterval)
	v.SetDefault("load_on_mount", cfg.LoadOnMount)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("log.output", cfg.Log.Output)
}
