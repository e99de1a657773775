package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/km-arc/go-magic/framework/config"
)

// ── helpers ──────────────────────────────────────────────────────────────────

// unset clears key for the duration of the test so godotenv may populate it.
func unset(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // restores the original value after the test
	_ = os.Unsetenv(key)
}

// ── Load ─────────────────────────────────────────────────────────────────────

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"APP_NAME", "APP_ENV", "APP_DEBUG", "APP_PORT", "LOG_LEVEL", "LOG_FORMAT", "ROUTER_GREEDY"} {
		unset(t, key)
	}
	cfg := config.Load("testdata/empty.env")

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"App.Name", cfg.App.Name, "GoMagic"},
		{"App.Env", cfg.App.Env, "local"},
		{"App.Debug", cfg.App.Debug, true},
		{"App.Port", cfg.App.Port, "8000"},
		{"Log.Level", cfg.Log.Level, "info"},
		{"Log.Format", cfg.Log.Format, "console"},
		{"Router.Greedy", cfg.Router.Greedy, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestLoad_DotenvFile(t *testing.T) {
	for _, key := range []string{"APP_NAME", "LOG_LEVEL", "ROUTER_GREEDY"} {
		unset(t, key)
	}

	cfg := config.Load("testdata/app.env")

	assert.Equal(t, "FromDotenv", cfg.App.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Router.Greedy)
}

func TestLoad_EnvOverridesDotenv(t *testing.T) {
	t.Setenv("APP_NAME", "FromEnv")
	unset(t, "LOG_LEVEL")
	unset(t, "ROUTER_GREEDY")

	cfg := config.Load("testdata/app.env")
	assert.Equal(t, "FromEnv", cfg.App.Name)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("LOG_FORMAT", "json")

	cfg := config.Load("testdata/empty.env")

	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "9000", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, "json", cfg.Log.Format)
}

// ── Get / GetInt / GetBool ───────────────────────────────────────────────────

func TestGet(t *testing.T) {
	t.Setenv("CUSTOM_KEY", "hello")
	assert.Equal(t, "hello", config.Get("CUSTOM_KEY", "default"))

	unset(t, "MISSING_KEY")
	assert.Equal(t, "fallback", config.Get("MISSING_KEY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, config.GetInt("SOME_INT", 0))

	t.Setenv("SOME_INT", "notanint")
	assert.Equal(t, 99, config.GetInt("SOME_INT", 99))
}

func TestGetBool(t *testing.T) {
	for _, val := range []string{"true", "1", "True", "TRUE"} {
		t.Setenv("BOOL_KEY", val)
		assert.True(t, config.GetBool("BOOL_KEY", false), val)
	}

	t.Setenv("BOOL_KEY", "false")
	assert.False(t, config.GetBool("BOOL_KEY", true))

	t.Setenv("BOOL_KEY", "notabool")
	assert.True(t, config.GetBool("BOOL_KEY", true))
}
