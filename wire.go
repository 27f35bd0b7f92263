package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/sunthewhat/event-cert-api/api"
	accommodation_controller "github.com/sunthewhat/event-cert-api/api/controllers/accommodation"
	attendee_controller "github.com/sunthewhat/event-cert-api/api/controllers/attendee"
	certificate_controller "github.com/sunthewhat/event-cert-api/api/controllers/certificate"
	email_controller "github.com/sunthewhat/event-cert-api/api/controllers/email"
	event_controller "github.com/sunthewhat/event-cert-api/api/controllers/event"
	file_controller "github.com/sunthewhat/event-cert-api/api/controllers/file"
	logs_controller "github.com/sunthewhat/event-cert-api/api/controllers/logs"
	settings_controller "github.com/sunthewhat/event-cert-api/api/controllers/settings"
	accommodationmodel "github.com/sunthewhat/event-cert-api/api/model/accommodationModel"
	attendeemodel "github.com/sunthewhat/event-cert-api/api/model/attendeeModel"
	certificatemodel "github.com/sunthewhat/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/sunthewhat/event-cert-api/api/model/eventModel"
	operationlogmodel "github.com/sunthewhat/event-cert-api/api/model/operationLogModel"
	settingsmodel "github.com/sunthewhat/event-cert-api/api/model/settingsModel"
	"github.com/sunthewhat/event-cert-api/api/routes"
	"github.com/sunthewhat/event-cert-api/common"
	"github.com/sunthewhat/event-cert-api/common/util"
	"github.com/sunthewhat/event-cert-api/internal/cache"
	"github.com/sunthewhat/event-cert-api/internal/filestore"
	"github.com/sunthewhat/event-cert-api/internal/generator"
	"github.com/sunthewhat/event-cert-api/internal/mailing"
	"github.com/sunthewhat/event-cert-api/internal/metrics"
	"github.com/sunthewhat/event-cert-api/internal/queue"
	"github.com/sunthewhat/event-cert-api/internal/renderer"
	"github.com/sunthewhat/event-cert-api/type/shared"
)

const defaultCacheTTL = 5 * time.Minute

type application struct {
	fiber       *fiber.App
	cache       *cache.Service
	mailer      *mailing.Service
	metrics     *metrics.Metrics
	queueClient *queue.Client
	queueOpts   *asynq.RedisClientOpt
	oplog       operationlogmodel.IOperationLogRepository
}

func build(ctx context.Context) (*application, error) {
	cfg := common.Config
	m := metrics.New()

	oplog := operationlogmodel.New(common.Mongo, "logs")
	certRepo := certificatemodel.NewCertificateRepository(common.Gorm, oplog)
	eventRepo := eventmodel.NewEventRepository(common.Gorm, oplog)
	attendeeRepo := attendeemodel.NewAttendeeRepository(common.Gorm, oplog)
	settingsRepo := settingsmodel.NewSettingsRepository(common.Gorm, oplog)
	accommodationRepo := accommodationmodel.NewAccommodationRepository(common.Gorm, oplog)

	certificates, idcards, err := buildStores(ctx, cfg.FileStore)
	if err != nil {
		return nil, err
	}

	rdr, err := buildRenderer(cfg.Renderer, certificates, m)
	if err != nil {
		return nil, err
	}
	gen := generator.New(rdr, eventRepo, attendeeRepo, certRepo)

	mailOpts := []mailing.Option{mailing.WithObserver(m.ObserveEmail)}
	if cfg.Mail != nil {
		if cfg.Mail.Workers != nil {
			mailOpts = append(mailOpts, mailing.WithWorkers(*cfg.Mail.Workers))
		}
		if cfg.Mail.DefaultCompanyName != nil {
			mailOpts = append(mailOpts, mailing.WithCompanyName(*cfg.Mail.DefaultCompanyName))
		}
	}
	mailer := mailing.New(settingsRepo, eventRepo, attendeeRepo, gen, util.SMTPSender{}, mailOpts...)

	var backend cache.Backend = cache.NewMemoryBackend(nil)
	if common.Redis != nil {
		backend = cache.NewRedisBackend(common.Redis, "eventcert:")
	}
	var eventsTTL, accommodationsTTL time.Duration
	if cfg.Cache != nil {
		eventsTTL = parseTTL(cfg.Cache.EventsTTL)
		accommodationsTTL = parseTTL(cfg.Cache.AccommodationsTTL)
	}
	svc := cache.New(backend, nil, defaultCacheTTL)

	a := &application{cache: svc, mailer: mailer, metrics: m, oplog: oplog}

	var enqueuer queue.Enqueuer
	if cfg.Queue != nil && cfg.Queue.Enabled != nil && *cfg.Queue.Enabled {
		if cfg.Redis == nil || *cfg.Redis == "" {
			return nil, fmt.Errorf("queue enabled but redis is not configured")
		}
		opts := asynq.RedisClientOpt{Addr: *cfg.Redis}
		a.queueOpts = &opts
		a.queueClient = queue.NewClient(opts)
		enqueuer = a.queueClient
	}

	var scanner filestore.Scanner = filestore.NopScanner{}
	if cfg.Clamd != nil && cfg.Clamd.Enabled != nil && *cfg.Clamd.Enabled && cfg.Clamd.Address != nil {
		clamd := filestore.NewClamdScanner(*cfg.Clamd.Address)
		if err := clamd.Ping(); err != nil {
			slog.Warn("Clamd unreachable, uploads will fail until it is back", "error", err)
		}
		scanner = clamd
	}

	ctrls := routes.Controllers{
		Certificate:   certificate_controller.NewCertificateController(certRepo, eventRepo, gen),
		File:          file_controller.NewFileController(certificates, idcards, scanner, certRepo),
		Event:         event_controller.NewEventController(eventRepo, svc, eventsTTL),
		Attendee:      attendee_controller.NewAttendeeController(attendeeRepo),
		Email:         email_controller.NewEmailController(mailer, enqueuer),
		Settings:      settings_controller.NewSettingsController(settingsRepo),
		Accommodation: accommodation_controller.NewAccommodationController(accommodationRepo, svc, accommodationsTTL),
		Logs:          logs_controller.NewLogsController(oplog),
	}
	a.fiber = api.NewApp(ctrls, m)

	return a, nil
}

func buildStores(ctx context.Context, cfg *shared.FileStoreConfig) (filestore.Store, filestore.Store, error) {
	if *cfg.Driver == "minio" {
		client, err := util.InitMinIO()
		if err != nil {
			return nil, nil, err
		}
		certificates, err := filestore.NewMinioStore(ctx, client, stringOr(cfg.BucketCertificate, "certificates"))
		if err != nil {
			return nil, nil, err
		}
		idcards, err := filestore.NewMinioStore(ctx, client, stringOr(cfg.BucketIDCard, "idcards"))
		if err != nil {
			return nil, nil, err
		}
		slog.Info("File store using MinIO", "endpoint", *cfg.MinIoEndpoint)
		return certificates, idcards, nil
	}

	certificates, err := filestore.NewLocalStore(stringOr(cfg.CertificateRoot, "uploads/certificates"))
	if err != nil {
		return nil, nil, err
	}
	idcards, err := filestore.NewLocalStore(stringOr(cfg.IDCardRoot, "uploads/idcards"))
	if err != nil {
		return nil, nil, err
	}
	return certificates, idcards, nil
}

func buildRenderer(cfg *shared.RendererConfig, source renderer.TemplateSource, m *metrics.Metrics) (*renderer.Renderer, error) {
	resolver := renderer.NewResolver()
	if cfg.FuzzyFormFieldMatch != nil {
		resolver.FuzzyFormFieldMatch = *cfg.FuzzyFormFieldMatch
	}
	if cfg.Timezone != nil && *cfg.Timezone != "" {
		loc, err := time.LoadLocation(*cfg.Timezone)
		if err != nil {
			return nil, fmt.Errorf("invalid renderer timezone: %w", err)
		}
		resolver.Location = loc
	}

	signer, err := renderer.NewSigner(renderer.SigningConfig{
		Enabled:  cfg.SigningEnabled != nil && *cfg.SigningEnabled,
		CertPath: stringOr(cfg.SigningCertPath, ""),
		KeyPath:  stringOr(cfg.SigningKeyPath, ""),
	})
	if err != nil {
		return nil, err
	}

	return renderer.New(source,
		renderer.WithPreviewSize(renderer.PreviewSize{Width: *cfg.PreviewWidth, Height: *cfg.PreviewHeight}),
		renderer.WithResolver(resolver),
		renderer.WithSigner(signer),
		renderer.WithObserver(m.ObserveRender),
	), nil
}

// startWorkers runs the asynq server in the background when the queue is enabled.
func (a *application) startWorkers(ctx context.Context) {
	if a.queueOpts == nil {
		return
	}
	concurrency := 0
	if q := common.Config.Queue; q.Concurrency != nil {
		concurrency = *q.Concurrency
	}
	srv := queue.NewServer(queue.ServerConfig{
		RedisOpts:   *a.queueOpts,
		Concurrency: concurrency,
		Mailer:      a.mailer,
		Middleware:  []asynq.MiddlewareFunc{a.metrics.AsynqMiddleware()},
	})
	go func() {
		if err := srv.Run(ctx); err != nil {
			slog.Error("Queue server stopped", "error", err)
		}
	}()
	slog.Info("Queue server started", "concurrency", concurrency)
}

func (a *application) close() {
	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			slog.Error("Queue client close", "error", err)
		}
	}
	if f, ok := a.oplog.(interface{ Flush() }); ok {
		f.Flush()
	}
	if common.Redis != nil {
		_ = common.Redis.Close()
	}
}

func parseTTL(raw *string) time.Duration {
	if raw == nil || *raw == "" {
		return defaultCacheTTL
	}
	d, err := time.ParseDuration(*raw)
	if err != nil || d <= 0 {
		slog.Warn("Invalid cache TTL, using default", "value", *raw, "default", defaultCacheTTL)
		return defaultCacheTTL
	}
	return d
}

func stringOr(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}
