package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/totegamma/gravatar/client"
	"github.com/totegamma/gravatar/internal/config"
	"github.com/totegamma/gravatar/internal/domain"
	"github.com/totegamma/gravatar/internal/infra/cache"
	"github.com/totegamma/gravatar/internal/infra/database"
	"github.com/totegamma/gravatar/internal/infra/repository"
	"github.com/totegamma/gravatar/internal/interface/rest"
	"github.com/totegamma/gravatar/internal/usecase"
)

const (
	serviceName     = "gravatar"
	shutdownTimeout = 10 * time.Second
)

func main() {
	configPath := flag.String("config", "/etc/gravatar/config.yaml", "path to config file")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	conf, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if conf.Server.EnableTrace {
		cleanup, err := setupTraceProvider(ctx, conf.Server.TraceEndpoint)
		if err != nil {
			log.Fatalf("failed to setup trace provider: %v", err)
		}
		defer cleanup()
	}

	var presets usecase.PresetRepository
	if conf.Server.PostgresDsn != "" {
		db, err := database.NewPostgres(conf.Server.PostgresDsn)
		if err != nil {
			log.Fatalf("%v", err)
		}
		err = database.MigratePostgres(db)
		if err != nil {
			log.Fatalf("failed to migrate database: %v", err)
		}
		presetRepo := repository.NewPresetRepository(db)
		for name, options := range conf.Presets {
			err := presetRepo.Upsert(ctx, domain.Preset{Name: name, Options: options})
			if err != nil {
				log.Fatalf("failed to seed preset %s: %v", name, err)
			}
		}
		presets = presetRepo
	} else {
		presets = repository.NewMemoryPresetRepository(conf.Presets)
	}

	clientOpts := []client.Option{client.WithUserAgent(conf.Server.UserAgent)}
	switch {
	case conf.Server.RedisAddr != "":
		rdb, err := database.NewRedis(ctx, conf.Server.RedisAddr, conf.Server.RedisPassword, conf.Server.RedisDB)
		if err != nil {
			log.Fatalf("%v", err)
		}
		defer rdb.Close()
		clientOpts = append(clientOpts, client.WithStore(cache.NewRedisStore(rdb)))
	case conf.Server.MemcachedAddr != "":
		mc, err := database.NewMemcached(conf.Server.MemcachedAddr)
		if err != nil {
			log.Fatalf("%v", err)
		}
		clientOpts = append(clientOpts, client.WithStore(cache.NewMemcachedStore(mc)))
	}
	cl := client.New(clientOpts...)

	avatarUC := usecase.NewAvatarUsecase(presets, cl, conf.Server.BaseURL)
	handler := rest.NewHandler(avatarUC)

	e := echo.New()
	e.HideBanner = true
	if conf.Server.EnableTrace {
		e.Use(otelecho.Middleware(serviceName))
	}
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler.RegisterRoutes(e)

	log.Printf("gravatar service listening on %s (base %s)", conf.Server.Listen, conf.Server.BaseURL)
	if err := serve(ctx, e, conf.Server.Listen); err != nil {
		log.Printf("server stopped: %v", err)
		return
	}
	log.Printf("server stopped")
}

// serve runs e until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, e *echo.Echo, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func setupTraceProvider(ctx context.Context, endpoint string) (func(), error) {
	exporter, err := otlptracehttp.New(
		ctx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(
		ctx,
		resource.WithAttributes(attribute.String("service.name", serviceName)),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	cleanup := func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Printf("failed to shutdown tracer provider: %v", err)
		}
	}
	return cleanup, nil
}
