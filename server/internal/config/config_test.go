package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigLoad_Defaults(t *testing.T) {
	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "roster.db", cfg.SQLitePath)
	assert.Equal(t, 5000, cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.AuthRequired)
	assert.Equal(t, "Harvinder_Singh_Resume.txt", cfg.ResumeFilename)
	assert.NotEmpty(t, cfg.JWTSecret, "development gets a fallback secret")
}

func TestConfigLoad_EnvOverride(t *testing.T) {
	t.Setenv("ROSTER_HTTP_PORT", "9000")
	t.Setenv("ROSTER_DATA_DIR", "/var/lib/roster")
	t.Setenv("ROSTER_AUTH_REQUIRED", "true")
	t.Setenv("ROSTER_JWT_SECRET", "s3cret")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.GetHTTPAddr())
	assert.Equal(t, "/var/lib/roster/roster.db", cfg.SQLitePath)
	assert.True(t, cfg.AuthRequired)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
}

func TestResolveDefaults(t *testing.T) {
	cases := []struct {
		name    string
		cfg     Config
		driver  string
		wantErr bool
	}{
		{name: "local", cfg: Config{BuildTarget: "local", DBDriver: "auto"}, driver: "sqlite"},
		{name: "cloud", cfg: Config{BuildTarget: "cloud", PostgresDSN: "postgres://x"}, driver: "postgres"},
		{name: "cloud without dsn", cfg: Config{BuildTarget: "cloud"}, wantErr: true},
		{name: "override", cfg: Config{BuildTarget: "cloud", DBDriver: "sqlite"}, driver: "sqlite"},
		{name: "bad target", cfg: Config{BuildTarget: "mars"}, wantErr: true},
		{name: "bad driver", cfg: Config{BuildTarget: "local", DBDriver: "mysql"}, wantErr: true},
		{name: "auth without secret", cfg: Config{BuildTarget: "local", AuthRequired: true}, wantErr: true},
		{name: "production without secret", cfg: Config{BuildTarget: "local", Environment: EnvProduction}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tc.cfg
			err := cfg.ResolveDefaults()
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.driver, cfg.DBDriver)
		})
	}
}

func TestNewForTesting(t *testing.T) {
	cfg := NewForTesting()
	assert.True(t, cfg.IsTesting())
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":memory:", cfg.SQLitePath)
}
