package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowquote/flowquote/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_BASE_URL", "https://app.flowquote.io/")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "https://app.flowquote.io", cfg.App.BaseURL)
	assert.Equal(t, 168*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, []string{"https://www.flowquote.io", "https://flowquote.io"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "postgres://postgres:@localhost:5432/flowquote?sslmode=disable", cfg.ConnectionString())
}

func TestConfig_ObjectStorage(t *testing.T) {
	type testCase struct {
		name   string
		setup  func(c *config.Config)
		verify func(t *testing.T, os *config.ObjectStorage)
	}

	tests := []testCase{
		{
			name:  "NotConfigured",
			setup: func(c *config.Config) {},
			verify: func(t *testing.T, os *config.ObjectStorage) {
				assert.Nil(t, os)
			},
		},
		{
			name: "MissingEndpointAndAccount",
			setup: func(c *config.Config) {
				c.R2.Bucket = "media"
				c.R2.AccessKeyID = "key"
				c.R2.SecretAccessKey = "secret"
			},
			verify: func(t *testing.T, os *config.ObjectStorage) {
				assert.Nil(t, os)
			},
		},
		{
			name: "AccountDerivedEndpoint",
			setup: func(c *config.Config) {
				c.R2.AccountID = "acct"
				c.R2.Bucket = "media"
				c.R2.AccessKeyID = "key"
				c.R2.SecretAccessKey = "secret"
			},
			verify: func(t *testing.T, os *config.ObjectStorage) {
				require.NotNil(t, os)
				assert.Equal(t, "acct.r2.cloudflarestorage.com", os.Endpoint)
				assert.Equal(t, "https://media.acct.r2.cloudflarestorage.com", os.PublicBaseURL)
			},
		},
		{
			name: "ExplicitEndpoint",
			setup: func(c *config.Config) {
				c.R2.Endpoint = "http://localhost:9000/"
				c.R2.Bucket = "media"
				c.R2.AccessKeyID = "key"
				c.R2.SecretAccessKey = "secret"
				c.R2.PublicBaseURL = "https://cdn.example.com/"
			},
			verify: func(t *testing.T, os *config.ObjectStorage) {
				require.NotNil(t, os)
				assert.Equal(t, "localhost:9000", os.Endpoint)
				assert.Equal(t, "https://cdn.example.com", os.PublicBaseURL)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg config.Config
			tt.setup(&cfg)
			tt.verify(t, cfg.ObjectStorage())
		})
	}
}
