package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 0.2, cfg.OpenAI.Temperature)
	assert.Equal(t, 1000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "https://api.meetstream.ai", cfg.MeetStream.APIURL)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.False(t, cfg.Pipeline.Parallel)
	assert.False(t, cfg.Storage.Enabled)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	t.Setenv("PIPELINE_PARALLEL", "true")
	t.Setenv("CACHE_TTL", "5m")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.True(t, cfg.Pipeline.Parallel)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "test environment skips key checks",
			cfg:  Config{Server: ServerConfig{Environment: "test"}},
		},
		{
			name:    "missing openai key",
			cfg:     Config{Server: ServerConfig{Environment: "production"}},
			wantErr: "OPENAI_API_KEY is required",
		},
		{
			name: "missing meetstream key",
			cfg: Config{
				Server: ServerConfig{Environment: "production"},
				OpenAI: OpenAIConfig{APIKey: "sk-test"},
			},
			wantErr: "MEETSTREAM_API_KEY is required",
		},
		{
			name: "complete",
			cfg: Config{
				Server:     ServerConfig{Environment: "production"},
				OpenAI:     OpenAIConfig{APIKey: "sk-test"},
				MeetStream: MeetStreamConfig{APIKey: "ms-test"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestLegalDomains(t *testing.T) {
	assert.Equal(t, []string{"compliance", "contracts", "ip_tech", "governance", "litigation"}, DomainKeys())

	domains := LegalDomains()
	require.Len(t, domains, 5)
	domains[0].Name = "mutated"
	assert.NotEqual(t, "mutated", LegalDomains()[0].Name)

	d, ok := DomainByKey("ip_tech")
	require.True(t, ok)
	assert.Contains(t, d.Description, "intellectual property")

	_, ok = DomainByKey("tax")
	assert.False(t, ok)
	assert.Equal(t, "tax", DomainName("tax"))
}
