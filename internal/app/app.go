package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baiqizhang/CopyCat-Server/config"
	kafkactrl "github.com/baiqizhang/CopyCat-Server/internal/controller/kafka"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/restapi"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/worker/outbox"
	"github.com/baiqizhang/CopyCat-Server/internal/controller/worker/tagwatch"
	infrakafka "github.com/baiqizhang/CopyCat-Server/internal/infrastructure/kafka"
	"github.com/baiqizhang/CopyCat-Server/internal/infrastructure/processor"
	"github.com/baiqizhang/CopyCat-Server/internal/repo"
	"github.com/baiqizhang/CopyCat-Server/internal/repo/localfs"
	"github.com/baiqizhang/CopyCat-Server/internal/repo/persistent"
	"github.com/baiqizhang/CopyCat-Server/internal/repo/webapi"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/changelog"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/labels"
	outboxuc "github.com/baiqizhang/CopyCat-Server/internal/usecase/outbox"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/photo"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/search"
	"github.com/baiqizhang/CopyCat-Server/internal/usecase/searchlog"
	"github.com/baiqizhang/CopyCat-Server/migrations"
	"github.com/baiqizhang/CopyCat-Server/pkg/httpserver"
	"github.com/baiqizhang/CopyCat-Server/pkg/kafka/consumer"
	"github.com/baiqizhang/CopyCat-Server/pkg/kafka/producer"
	"github.com/baiqizhang/CopyCat-Server/pkg/logger"
	"github.com/baiqizhang/CopyCat-Server/pkg/postgres"
	"github.com/baiqizhang/CopyCat-Server/pkg/s3client"
)

const _workerShutdownTimeout = 5 * time.Second

type worker interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

type component struct {
	name    string
	w       worker
	timeout time.Duration
}

func Run(cfg *config.Config) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Logger
	l := logger.New(cfg.Log.Level)

	// Repository

	// s3
	s3Ctx, s3Cancel := context.WithTimeout(ctx, cfg.S3.CfgLoadTimeout)
	defer s3Cancel()
	s3c, err := s3client.New(s3Ctx, cfg.S3.Endpoint, cfg.S3.AccessKey, cfg.S3.SecretKey,
		s3client.Region(cfg.S3.Region),
		s3client.UsePathStyle(cfg.S3.UsePathStyle),
		s3client.CheckBucket(cfg.S3.Bucket),
	)
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - s3client.New: %w", err))
	}

	// postgres
	pg, err := postgres.New(cfg.PG.URL, postgres.MaxPoolSize(cfg.PG.PoolMax))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - postgres.New: %w", err))
	}
	defer pg.Close()

	if cfg.PG.Migrate {
		err = pg.Migrate(ctx, migrations.FS)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - pg.Migrate: %w", err))
		}
	}

	// flat files and external services
	tagRepo := localfs.NewPopularTagsRepo(cfg.Search.PopularTagsDir)
	unsplash := webapi.NewUnsplashWebAPI(
		&http.Client{Timeout: cfg.Unsplash.Timeout},
		cfg.Unsplash.BaseURL,
		cfg.Unsplash.ClientID,
		cfg.Unsplash.BreakerFailures,
		cfg.Unsplash.BreakerTimeout,
	)
	detector := webapi.NewLabelDetectorWebAPI(
		cfg.Labels.Interpreter,
		cfg.Labels.Script,
		cfg.Labels.APIKey,
		cfg.Labels.Timeout,
	)

	// Use-Case

	// photo outbox is only written when something relays it
	var outboxRepo repo.OutboxRepo
	if cfg.Kafka.Enabled {
		outboxRepo = persistent.NewOutboxRepo(pg)
	}

	photoUseCase := photo.New(
		persistent.NewPhotoRepo(pg),
		persistent.NewObjectRepo(s3c, cfg.S3.Bucket, cfg.S3.PublicBaseURL),
		outboxRepo,
		pg,
		processor.New(),
	)

	labelsUseCase := labels.New(detector, persistent.NewPhotoLabelsRepo(pg))

	searchUseCase := search.New(tagRepo, unsplash, cfg.Search.PublicPrefix, l)

	searchLogUseCase := searchlog.New(ctx, persistent.NewTallyFileRepo(cfg.SearchLog.File), l, cfg.SearchLog.QueueSize)

	changelogUseCase, err := changelog.New(ctx, persistent.NewChangelogFileRepo(cfg.Changelog.File))
	if err != nil {
		l.Fatal(fmt.Errorf("app - Run - changelog.New: %w", err))
	}

	// Workers
	workers := []component{
		{name: "searchLog", w: searchLogUseCase, timeout: _workerShutdownTimeout},
		{name: "tagWatcher", w: tagwatch.New(searchUseCase, cfg.Search.PopularTagsDir, l), timeout: _workerShutdownTimeout},
	}

	if cfg.Kafka.Enabled {
		// Kafka Producer
		kafkaProducer, err := producer.New(ctx, cfg.Kafka.Brokers)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - producer.New: %w", err))
		}

		// Outbox Relay Worker
		outboxRelayWorker := outbox.New(
			outboxuc.New(outboxRepo, pg, cfg.OutboxRelay.Retention, l),
			infrakafka.NewEventProducer(kafkaProducer, cfg.Kafka.Topic),
			l,
			outbox.Settings{
				PollInterval:        cfg.OutboxRelay.PollInterval,
				CleanupInterval:     cfg.OutboxRelay.CleanupInterval,
				MarkFailedInterval:  cfg.OutboxRelay.MarkFailedInterval,
				ProcessBatchTimeout: cfg.OutboxRelay.ProcessBatchTimeout,
				BatchSize:           cfg.OutboxRelay.BatchSize,
				MaxRetries:          cfg.OutboxRelay.MaxRetries,
			},
		)

		// Kafka Consumer
		kafkaConsumer, err := consumer.New(ctx, cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.Topic)
		if err != nil {
			l.Fatal(fmt.Errorf("app - Run - consumer.New: %w", err))
		}

		// Kafka as Controller
		kafkaController := kafkactrl.New(
			labelsUseCase,
			infrakafka.NewEventConsumer(kafkaConsumer),
			l,
			cfg.LabelWorker.CommitTimeout,
			cfg.LabelWorker.ProcessTimeout,
			cfg.LabelWorker.Workers,
		)

		workers = append(workers,
			component{name: "outboxRelay", w: outboxRelayWorker, timeout: cfg.OutboxRelay.ShutdownTimeout},
			component{name: "kafkaController", w: kafkaController, timeout: cfg.LabelWorker.ShutdownTimeout},
		)
	}

	// HTTP Server
	httpServer := httpserver.New(l,
		httpserver.Port(cfg.HTTP.Port),
		httpserver.Prefork(cfg.HTTP.UsePreforkMode),
		httpserver.BodyLimit(cfg.HTTP.BodyLimit),
	)
	restapi.NewRouter(httpServer.App, cfg, photoUseCase, labelsUseCase, searchUseCase, searchLogUseCase, changelogUseCase, l)

	// Start Components
	for _, w := range workers {
		err = w.w.Start(ctx)
		if err != nil {
			// without a watcher the index is built once and not refreshed
			if w.name == "tagWatcher" {
				l.Error(err, "app - Run - tagWatcher.Start")

				if err = searchUseCase.RebuildTags(ctx); err != nil {
					l.Error(err, "app - Run - searchUseCase.RebuildTags")
				}

				continue
			}
			l.Fatal(fmt.Errorf("app - Run - %s.Start: %w", w.name, err))
		}
	}
	httpServer.Start()

	// Waiting Signal
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	select {
	case s := <-interrupt:
		l.Info("app - Run - signal: %s", s.String())
	case err = <-httpServer.Notify():
		l.Error(fmt.Errorf("app - Run - httpServer.Notify: %w", err))
	}

	// Shutdown
	err = httpServer.Shutdown()
	if err != nil {
		l.Error(fmt.Errorf("app - Run - httpServer.Shutdown: %w", err))
	}

	for i := len(workers) - 1; i >= 0; i-- {
		w := workers[i]

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, w.timeout)
		err = w.w.Shutdown(shutdownCtx)
		shutdownCancel()
		if err != nil {
			l.Error(fmt.Errorf("app - Run - %s.Shutdown: %w", w.name, err))
		}
	}
}
