package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/nickyhof/PrimitiveDB/db"
)

// EnvPrefix namespaces environment overrides, e.g. PRIMITIVEDB_DATA_DIR.
const EnvPrefix = "PRIMITIVEDB"

type Config struct {
	DataDir     string `mapstructure:"data_dir"`
	Backend     string `mapstructure:"backend"`
	Codec       string `mapstructure:"codec"`
	LogLevel    string `mapstructure:"log_level"`
	HistoryFile string `mapstructure:"history_file"`

	Identity struct {
		Name  string `mapstructure:"name"`
		Email string `mapstructure:"email"`
	} `mapstructure:"identity"`

	S3 S3Settings `mapstructure:"s3"`
}

type S3Settings struct {
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// flagKeys maps config keys to the flags that override them.
var flagKeys = map[string]string{
	"data_dir":       "data-dir",
	"backend":        "backend",
	"codec":          "codec",
	"log_level":      "log-level",
	"history_file":   "history-file",
	"identity.name":  "name",
	"identity.email": "email",
	"s3.region":      "s3-region",
	"s3.endpoint":    "s3-endpoint",
	"s3.access_key":  "s3-access-key",
	"s3.secret_key":  "s3-secret-key",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", ".primitivedb")
	v.SetDefault("backend", "git")
	v.SetDefault("codec", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("history_file", getHistoryPath())
	v.SetDefault("identity.name", "PrimitiveDB")
	v.SetDefault("identity.email", "cli@primitivedb.local")
	v.SetDefault("s3.region", "")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.access_key", "")
	v.SetDefault("s3.secret_key", "")
}

// LoadConfig resolves settings as flags > environment > config file > defaults.
// The config file is read only when --config is set.
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, name := range flagKeys {
		if flag := flags.Lookup(name); flag != nil {
			if err := v.BindPFlag(key, flag); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path, _ := flags.GetString("config"); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Remote returns the export settings, or nil when none are configured.
func (cfg *Config) Remote() *db.S3Config {
	if cfg.S3 == (S3Settings{}) {
		return nil
	}
	return &db.S3Config{
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		Region:    cfg.S3.Region,
		Endpoint:  cfg.S3.Endpoint,
	}
}

// Logger writes text records to w at the configured level.
func (cfg *Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}

func getHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".primitivedb_history")
}
