package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SerialConfig describes the link to the instrument.
type SerialConfig struct {
	Port        string        `mapstructure:"port"`
	BaudRate    int           `mapstructure:"baudRate"`
	Address     int           `mapstructure:"address"`
	ReadTimeout time.Duration `mapstructure:"readTimeout"`
	// SettleDelay zero means: derive from the baud rate.
	SettleDelay time.Duration `mapstructure:"settleDelay"`
}

// MonitorConfig controls the background status poller.
type MonitorConfig struct {
	Interval     time.Duration `mapstructure:"interval"`
	ErrorBackoff time.Duration `mapstructure:"errorBackoff"`
}

// FileConfig is the rotating log file setup (lumberjack).
type FileConfig struct {
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"maxSize"`
	MaxBackups int    `mapstructure:"maxBackups"`
	MaxAgeDays int    `mapstructure:"maxAge"`
	Compress   bool   `mapstructure:"compress"`
}

// LoggingConfig selects log level, format and optional file output.
type LoggingConfig struct {
	Level  string     `mapstructure:"level"`
	Format string     `mapstructure:"format"`
	File   FileConfig `mapstructure:"file"`
}

// Config is the top-level configuration.
type Config struct {
	Serial  SerialConfig  `mapstructure:"serial"`
	Monitor MonitorConfig `mapstructure:"monitor"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Load reads configuration from a YAML file and the environment.
// An empty path falls back to bk1788.yaml in the working directory or
// ./configs; a missing file is fine, defaults and BK1788_* environment
// variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.SetConfigName("bk1788")
		v.SetConfigType("yaml")
	}

	setDefaults(v)

	v.SetEnvPrefix("BK1788")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if cfg.Serial.Address < 0 || cfg.Serial.Address > 0xFF {
		return nil, fmt.Errorf("serial.address %d out of range [0, 255]", cfg.Serial.Address)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("serial.port", "/dev/ttyUSB0")
	v.SetDefault("serial.baudRate", 4800)
	v.SetDefault("serial.address", 0)
	v.SetDefault("serial.readTimeout", "1s")
	v.SetDefault("serial.settleDelay", "0s")

	v.SetDefault("monitor.interval", "500ms")
	v.SetDefault("monitor.errorBackoff", "1s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.file.filename", "")
	v.SetDefault("logging.file.maxSize", 10)
	v.SetDefault("logging.file.maxBackups", 3)
	v.SetDefault("logging.file.maxAge", 28)
	v.SetDefault("logging.file.compress", false)
}
