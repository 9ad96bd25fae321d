// Package config loads twbmeta settings from flags, environment and config files via viper.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TWBMETA_SERVER_ADDR.
const EnvPrefix = "TWBMETA"

// Config holds all twbmeta configuration.
type Config struct {
	Log     LogConfig
	Server  ServerConfig
	Extract ExtractConfig
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string // "debug", "info", "warn", "error"
	Format string // "text" or "json"
}

// ServerConfig holds upload service settings.
type ServerConfig struct {
	Addr           string
	UploadDir      string
	OutputDir      string
	MaxUploadBytes int64
	// RetainOutputs keeps generated reports after they are sent.
	RetainOutputs bool
}

// ExtractConfig holds document parse limits.
type ExtractConfig struct {
	MaxDepth int
	MaxAttrs int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.upload_dir", "uploads")
	v.SetDefault("server.output_dir", "outputs")
	v.SetDefault("server.max_upload_bytes", 16<<20)
	v.SetDefault("server.retain_outputs", false)
	v.SetDefault("extract.max_depth", 256)
	v.SetDefault("extract.max_attrs", 256)
}

// BindEnv makes v read TWBMETA_* environment variables, with "." in keys mapped to "_".
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load reads the configuration from v and validates it.
func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Server: ServerConfig{
			Addr:           v.GetString("server.addr"),
			UploadDir:      v.GetString("server.upload_dir"),
			OutputDir:      v.GetString("server.output_dir"),
			MaxUploadBytes: v.GetInt64("server.max_upload_bytes"),
			RetainOutputs:  v.GetBool("server.retain_outputs"),
		},
		Extract: ExtractConfig{
			MaxDepth: v.GetInt("extract.max_depth"),
			MaxAttrs: v.GetInt("extract.max_attrs"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting.
func (c Config) Validate() error {
	var errs []error
	if c.Server.UploadDir == "" {
		errs = append(errs, errors.New("server.upload_dir must not be empty"))
	}
	if c.Server.OutputDir == "" {
		errs = append(errs, errors.New("server.output_dir must not be empty"))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_upload_bytes must be > 0, got %d", c.Server.MaxUploadBytes))
	}
	if c.Extract.MaxDepth <= 0 {
		errs = append(errs, fmt.Errorf("extract.max_depth must be > 0, got %d", c.Extract.MaxDepth))
	}
	if c.Extract.MaxAttrs <= 0 {
		errs = append(errs, fmt.Errorf("extract.max_attrs must be > 0, got %d", c.Extract.MaxAttrs))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
