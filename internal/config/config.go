package config

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/leb128/pkg/logger"
	"github.com/gaze-network/leb128/pkg/logger/slogx"
	"github.com/gaze-network/leb128/pkg/middleware/requestlogger"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultHTTPPort      = 8080
	DefaultMaxInputBytes = 1 << 20
	DefaultBodyLimit     = 4 << 20
)

var (
	isInit     bool
	mu         sync.Mutex
	config     = defaultConfig()
	configFile string
)

// envOnlyKeys are optional keys that have no default value.
var envOnlyKeys = []string{
	"codec.upper_bound",
	"http_server.logger.request_header",
	"http_server.logger.request_body",
	"http_server.logger.disable",
	"http_server.logger.hidden_request_headers",
}

type Config struct {
	Logger     logger.Config    `mapstructure:"logger"`
	HTTPServer HTTPServerConfig `mapstructure:"http_server"`
	Codec      CodecConfig      `mapstructure:"codec"`
}

type HTTPServerConfig struct {
	Port      int                  `mapstructure:"port"`
	BodyLimit int                  `mapstructure:"body_limit"`
	Logger    requestlogger.Config `mapstructure:"logger"`
}

type CodecConfig struct {
	// UpperBound is the default upper bound applied when a request doesn't provide one.
	// nil means no bound.
	UpperBound *uint64 `mapstructure:"upper_bound"`

	// MaxInputBytes limits the size of a single encoded input.
	MaxInputBytes int `mapstructure:"max_input_bytes"`
}

func defaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			Output: "text",
		},
		HTTPServer: HTTPServerConfig{
			Port:      DefaultHTTPPort,
			BodyLimit: DefaultBodyLimit,
		},
		Codec: CodecConfig{
			MaxInputBytes: DefaultMaxInputBytes,
		},
	}
}

// Parse reads the configuration from the given file (or `./config.yaml` when empty)
// and environment variables. Environment keys use `_` instead of `.`,
// e.g. `HTTP_SERVER_PORT`.
func Parse(file string) Config {
	mu.Lock()
	defer mu.Unlock()
	return parse(file)
}

func parse(file string) Config {
	ctx := logger.WithContext(context.Background(), slogx.String("package", "config"))

	if file != "" {
		viper.SetConfigFile(file)
	} else {
		viper.AddConfigPath("./")
		viper.SetConfigName("config")
	}

	// defaults make the keys known to viper, so environment variables can override them
	viper.SetDefault("logger.output", config.Logger.Output)
	viper.SetDefault("logger.debug", config.Logger.Debug)
	viper.SetDefault("http_server.port", config.HTTPServer.Port)
	viper.SetDefault("http_server.body_limit", config.HTTPServer.BodyLimit)
	viper.SetDefault("codec.max_input_bytes", config.Codec.MaxInputBytes)

	// keys without a default are unknown to AutomaticEnv, bind them explicitly
	for _, key := range envOnlyKeys {
		if err := viper.BindEnv(key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))); err != nil {
			logger.PanicContext(ctx, "Something went wrong, failed to bind env for config", slogx.String("key", key), slogx.Error(err))
		}
	}

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		var errNotfound viper.ConfigFileNotFoundError
		if errors.As(err, &errNotfound) {
			logger.DebugContext(ctx, "Config file not found, use default value", slogx.Error(err))
		} else {
			logger.PanicContext(ctx, "Invalid config file", slogx.Error(err))
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		logger.PanicContext(ctx, "Failed to unmarshal config", slogx.Error(err))
	}

	isInit = true
	configFile = file
	return *config
}

// Load returns the parsed configuration, parsing it with defaults on first use.
func Load() Config {
	mu.Lock()
	defer mu.Unlock()
	if !isInit {
		return parse(configFile)
	}
	return *config
}

// BindPFlag binds a specific key to a pflag (as used by cobra).
func BindPFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		logger.Panic("Something went wrong, failed to bind flag for config", slogx.String("package", "config"), slogx.Error(err))
	}
}

// SetDefault sets the default value for this key.
func SetDefault(key string, value any) {
	viper.SetDefault(key, value)
}
