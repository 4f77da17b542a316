package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("JWT_SECRET", "a-very-long-test-secret")
}

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)
	setRequired(t)

	config, err := LoadConfig()
	req.NoError(err)
	req.Equal(8080, config.Port)
	req.Equal(time.Hour, config.AuthTokenDuration)
	req.Equal(256, config.ConnectionBufferSize)
	req.Equal("members", config.MessageFanoutScope)
	req.Equal(AttachmentBackendDisk, config.AttachmentBackend)
	req.Equal("0.0.0.0:8080", config.Address())
	req.Equal([]string{"*"}, config.Origins())
}

func TestLoadConfig_Overrides(t *testing.T) {
	req := require.New(t)
	setRequired(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SINK_TIMEOUT", "150ms")
	t.Setenv("MESSAGE_FANOUT_SCOPE", "all")
	t.Setenv("ALLOWED_ORIGINS", "http://a.example, https://b.example ,")

	config, err := LoadConfig()
	req.NoError(err)
	req.Equal(9090, config.Port)
	req.Equal(150*time.Millisecond, config.SinkTimeout)
	req.Equal("all", config.MessageFanoutScope)
	req.Equal([]string{"http://a.example", "https://b.example"}, config.Origins())
}

func TestLoadConfig_Rejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"short secret", "JWT_SECRET", "short"},
		{"unknown scope", "MESSAGE_FANOUT_SCOPE", "everyone"},
		{"unknown backend", "ATTACHMENT_BACKEND", "ftp"},
		{"minio without endpoint", "ATTACHMENT_BACKEND", "minio"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingSecret(t *testing.T) {
	t.Setenv("BADGER_FILEPATH", t.TempDir())
	t.Setenv("JWT_SECRET", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestConfig_CensorRune(t *testing.T) {
	req := require.New(t)

	r, err := Config{CensorReplacement: "#"}.CensorRune()
	req.NoError(err)
	req.Equal('#', r)

	_, err = Config{CensorReplacement: "##"}.CensorRune()
	req.Error(err)
}
