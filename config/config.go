package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type (
	Config struct {
		HTTP        HTTP
		Log         Log
		PG          PG
		S3          S3
		Kafka       Kafka
		OutboxRelay OutboxRelay
		LabelWorker LabelWorker
		Unsplash    Unsplash
		Search      Search
		SearchLog   SearchLog
		Changelog   Changelog
		Labels      Labels
		Swagger     Swagger
		Metrics     Metrics
	}

	HTTP struct {
		Port           string `env:"HTTP_PORT,required"`
		UsePreforkMode bool   `env:"HTTP_USE_PREFORK_MODE" envDefault:"false"`
		BodyLimit      int    `env:"HTTP_BODY_LIMIT" envDefault:"5242880"`
	}

	Log struct {
		Level string `env:"LOG_LEVEL,required"`
	}

	PG struct {
		PoolMax int    `env:"PG_POOL_MAX,required"`
		URL     string `env:"PG_URL,required"`
		Migrate bool   `env:"PG_MIGRATE" envDefault:"true"`
	}

	S3 struct {
		Endpoint       string        `env:"S3_ENDPOINT"`
		Region         string        `env:"S3_REGION" envDefault:"us-west-2"`
		AccessKey      string        `env:"S3_ACCESS_KEY,required"`
		SecretKey      string        `env:"S3_SECRET_KEY,required"`
		Bucket         string        `env:"S3_BUCKET,required"`
		PublicBaseURL  string        `env:"S3_PUBLIC_BASE_URL"`
		UsePathStyle   bool          `env:"S3_USE_PATH_STYLE" envDefault:"false"`
		CfgLoadTimeout time.Duration `env:"S3_LOAD_CFG_TIMEOUT" envDefault:"10s"`
	}

	Kafka struct {
		Enabled bool     `env:"KAFKA_ENABLED" envDefault:"false"`
		Brokers []string `env:"KAFKA_BROKERS"`
		GroupID string   `env:"KAFKA_GROUP_ID" envDefault:"copycat-labeler"`
		Topic   string   `env:"KAFKA_TOPIC" envDefault:"photos"`
	}

	OutboxRelay struct {
		PollInterval        time.Duration `env:"OUTBOX_RELAY_POLL_INTERVAL" envDefault:"2s"`
		MarkFailedInterval  time.Duration `env:"OUTBOX_RELAY_MARK_FAILED_INTERVAL" envDefault:"2m"`
		CleanupInterval     time.Duration `env:"OUTBOX_RELAY_CLEANUP_INTERVAL" envDefault:"24h"`
		Retention           time.Duration `env:"OUTBOX_RELAY_RETENTION" envDefault:"168h"`
		ProcessBatchTimeout time.Duration `env:"OUTBOX_RELAY_PROCESS_BATCH_TIMEOUT" envDefault:"15s"`
		ShutdownTimeout     time.Duration `env:"OUTBOX_RELAY_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		BatchSize           int           `env:"OUTBOX_RELAY_BATCH_SIZE" envDefault:"100"`
		MaxRetries          int           `env:"OUTBOX_RELAY_MAX_RETRIES" envDefault:"3"`
	}

	LabelWorker struct {
		CommitTimeout   time.Duration `env:"LABEL_WORKER_COMMIT_TIMEOUT" envDefault:"2s"`
		ProcessTimeout  time.Duration `env:"LABEL_WORKER_PROCESS_TIMEOUT" envDefault:"30s"`
		ShutdownTimeout time.Duration `env:"LABEL_WORKER_SHUTDOWN_TIMEOUT" envDefault:"5s"`
		Workers         int           `env:"LABEL_WORKER_WORKERS" envDefault:"2"`
	}

	Unsplash struct {
		BaseURL  string        `env:"UNSPLASH_BASE_URL" envDefault:"https://api.unsplash.com"`
		ClientID string        `env:"UNSPLASH_CLIENT_ID,required"`
		Timeout  time.Duration `env:"UNSPLASH_TIMEOUT" envDefault:"10s"`

		BreakerFailures uint32        `env:"UNSPLASH_BREAKER_FAILURES" envDefault:"5"`
		BreakerTimeout  time.Duration `env:"UNSPLASH_BREAKER_TIMEOUT" envDefault:"30s"`
	}

	Search struct {
		PopularTagsDir string `env:"SEARCH_POPULAR_TAGS_DIR" envDefault:"public/popularTags"`
		PublicPrefix   string `env:"SEARCH_PUBLIC_PREFIX" envDefault:"http://localhost:3001"`
	}

	SearchLog struct {
		File      string `env:"SEARCH_LOG_FILE" envDefault:"log/copycat-search.log"`
		QueueSize int    `env:"SEARCH_LOG_QUEUE_SIZE" envDefault:"1024"`
	}

	Changelog struct {
		File string `env:"CHANGELOG_FILE" envDefault:"changeLog/copycat-change.log"`
	}

	Labels struct {
		Interpreter string        `env:"LABELS_INTERPRETER" envDefault:"python"`
		Script      string        `env:"LABELS_SCRIPT" envDefault:"python_modules/google_vision_label_detection.py"`
		APIKey      string        `env:"LABELS_API_KEY"`
		Timeout     time.Duration `env:"LABELS_TIMEOUT" envDefault:"30s"`
	}

	Swagger struct {
		Enabled bool `env:"SWAGGER_ENABLED" envDefault:"false"`
	}

	Metrics struct {
		Enabled bool `env:"METRICS_ENABLED" envDefault:"true"`
	}
)

func New() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	if cfg.Kafka.Enabled && len(cfg.Kafka.Brokers) == 0 {
		return nil, fmt.Errorf("config error: KAFKA_BROKERS is required when KAFKA_ENABLED is set")
	}

	return cfg, nil
}
