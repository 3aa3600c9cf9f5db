package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	mu.Lock()
	isInit, configFile, config = false, "", defaultConfig()
	mu.Unlock()
	t.Cleanup(viper.Reset)
}

func TestParseDefaults(t *testing.T) {
	resetConfig(t)

	conf := Parse("")
	assert.Equal(t, DefaultHTTPPort, conf.HTTPServer.Port)
	assert.Equal(t, DefaultMaxInputBytes, conf.Codec.MaxInputBytes)
	assert.Nil(t, conf.Codec.UpperBound)
	assert.Equal(t, "text", conf.Logger.Output)
}

func TestParseFile(t *testing.T) {
	resetConfig(t)

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
logger:
  output: json
  debug: true
http_server:
  port: 9000
codec:
  upper_bound: 200
  max_input_bytes: 64
`), 0o600))

	conf := Parse(file)
	assert.Equal(t, "json", conf.Logger.Output)
	assert.True(t, conf.Logger.Debug)
	assert.Equal(t, 9000, conf.HTTPServer.Port)
	assert.Equal(t, 64, conf.Codec.MaxInputBytes)
	require.NotNil(t, conf.Codec.UpperBound)
	assert.EqualValues(t, 200, *conf.Codec.UpperBound)

	assert.Equal(t, conf, Load())
}

func TestParseEnv(t *testing.T) {
	resetConfig(t)
	t.Setenv("HTTP_SERVER_PORT", "9100")
	t.Setenv("CODEC_MAX_INPUT_BYTES", "16")
	t.Setenv("CODEC_UPPER_BOUND", "200")
	t.Setenv("LOGGER_OUTPUT", "json")
	t.Setenv("HTTP_SERVER_LOGGER_DISABLE", "true")
	t.Setenv("HTTP_SERVER_LOGGER_HIDDEN_REQUEST_HEADERS", "authorization,cookie")

	conf := Parse("")
	assert.Equal(t, 9100, conf.HTTPServer.Port)
	assert.Equal(t, 16, conf.Codec.MaxInputBytes)
	assert.Equal(t, "json", conf.Logger.Output)
	require.NotNil(t, conf.Codec.UpperBound)
	assert.EqualValues(t, 200, *conf.Codec.UpperBound)
	assert.True(t, conf.HTTPServer.Logger.Disable)
	assert.Equal(t, []string{"authorization", "cookie"}, conf.HTTPServer.Logger.HiddenRequestHeaders)
}

func TestParseEnvOverridesFile(t *testing.T) {
	resetConfig(t)

	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
codec:
  upper_bound: 200
`), 0o600))
	t.Setenv("CODEC_UPPER_BOUND", "500")

	conf := Parse(file)
	require.NotNil(t, conf.Codec.UpperBound)
	assert.EqualValues(t, 500, *conf.Codec.UpperBound)
}
