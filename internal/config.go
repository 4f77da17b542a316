package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

const (
	AttachmentBackendDisk  = "disk"
	AttachmentBackendMinio = "minio"
)

type Config struct {
	LogLevel          string        `env:"LOG_LEVEL,default=INFO"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=8080" validate:"gt=0,lt=65536"`
	BadgerFilepath    string        `env:"BADGER_FILEPATH,required=true" validate:"required"`
	BlugeFilepath     string        `env:"BLUGE_FILEPATH"`
	JWTSecret         string        `env:"JWT_SECRET,required=true" validate:"required,min=16"`
	AuthTokenDuration time.Duration `env:"AUTH_TOKEN_DURATION,default=1h" validate:"gt=0"`

	ConnectionBufferSize int           `env:"CONNECTION_BUFFER_SIZE,default=256" validate:"gt=0"`
	MaxMessageSize       int64         `env:"MAX_MESSAGE_SIZE,default=65536" validate:"gt=0"`
	SinkTimeout          time.Duration `env:"SINK_TIMEOUT,default=2s" validate:"gt=0"`
	RestartInterval      time.Duration `env:"RESTART_INTERVAL,default=1s"`
	ValueLogGCInterval   time.Duration `env:"VALUE_LOG_GC_INTERVAL,default=5m"`
	HeartbeatInterval    time.Duration `env:"HEARTBEAT_INTERVAL,default=15s"`
	MessageFanoutScope   string        `env:"MESSAGE_FANOUT_SCOPE,default=members" validate:"oneof=members all"`
	// AllowedOrigins is a comma separated list; "*" accepts any origin.
	AllowedOrigins string `env:"ALLOWED_ORIGINS,default=*"`

	// CensoredWordsFile lists one blocklisted word per line; empty disables moderation.
	CensoredWordsFile string `env:"CENSORED_WORDS_FILE"`
	CensorReplacement string `env:"CENSOR_REPLACEMENT,default=*"`

	AttachmentBackend string `env:"ATTACHMENT_BACKEND,default=disk" validate:"oneof=disk minio"`
	AttachmentDir     string `env:"ATTACHMENT_DIR,default=./uploads"`
	MaxUploadSize     int64  `env:"MAX_UPLOAD_SIZE,default=10485760" validate:"gt=0"`
	MinioEndpoint     string `env:"MINIO_ENDPOINT" validate:"required_if=AttachmentBackend minio"`
	MinioAccessKey    string `env:"MINIO_ACCESS_KEY"`
	MinioSecretKey    string `env:"MINIO_SECRET_KEY"`
	MinioBucket       string `env:"MINIO_BUCKET,default=attachments"`
	MinioUseSSL       bool   `env:"MINIO_USE_SSL,default=false"`

	OtelEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName     string        `env:"SERVICE_NAME,default=chat-relay"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=10s" validate:"gt=0"`
}

// LoadConfig reads an optional .env file, then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c Config) Origins() []string {
	var origins []string
	for _, origin := range strings.Split(c.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

func (c Config) CensorRune() (rune, error) {
	r := []rune(c.CensorReplacement)
	if len(r) != 1 {
		return 0, fmt.Errorf("CENSOR_REPLACEMENT must be a single character, got %q", c.CensorReplacement)
	}
	return r[0], nil
}
