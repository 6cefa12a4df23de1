package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	fbapp "firebase.google.com/go/v4"

	"rugstore/internal/accessor"
	"rugstore/internal/adapter/api"
	"rugstore/internal/adapter/api/handler"
	apimiddleware "rugstore/internal/adapter/api/middleware"
	"rugstore/internal/adapter/api/router"
	"rugstore/internal/adapter/repository"
	"rugstore/internal/domain/service"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/infrastructure/firebase"
	"rugstore/internal/infrastructure/ratelimit"
	"rugstore/internal/infrastructure/storage"
	"rugstore/internal/infrastructure/websocket"
	"rugstore/internal/transform"
	"rugstore/internal/usecase"
	"rugstore/pkg/config"
	"rugstore/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("error", "production").Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, identity, files, closeBackends, err := backends(ctx, cfg, log)
	if err != nil {
		log.Error("failed to initialize backends", "error", err)
		os.Exit(1)
	}
	defer closeBackends()

	appCache := newCache(ctx, cfg, log)

	wsManager := websocket.NewManager(log)
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(map[ratelimit.Action]ratelimit.Policy{
		ratelimit.ActionSubmitLead: {PerMinute: cfg.FormRatePerMinute, Burst: cfg.FormRateBurst},
		ratelimit.ActionUpload:     {PerMinute: cfg.FormRatePerMinute * 2, Burst: cfg.FormRateBurst * 2},
	})
	limiter.StartCleanupRoutine(ctx)

	transformer := transform.New()
	repos := repository.New(stores)

	catalog := accessor.NewCatalog(repos.Products, repos.Collections, repos.WeaveTypes, repos.Content, transformer, appCache, log)
	leads := accessor.NewLeads(repos.Leads, transformer, log)

	sessionUseCase := usecase.NewSessionUseCase(identity, cfg.SessionExpiry, log)
	productUseCase := usecase.NewProductUseCase(repos.Products, transformer, files, appCache, log)
	collectionUseCase := usecase.NewCollectionUseCase(repos.Collections, transformer, files, appCache, log)
	weaveTypeUseCase := usecase.NewWeaveTypeUseCase(repos.WeaveTypes, transformer, files, appCache, log)
	contentUseCase := usecase.NewContentUseCase(repos.Content, transformer, files, appCache, log)
	leadUseCase := usecase.NewLeadUseCase(repos.Leads, repos.Products, leads, wsManager, transformer, files, appCache, log)

	e := echo.New()
	e.HideBanner = true

	e.Use(apimiddleware.RequestID())
	e.Use(apimiddleware.RequestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
			apimiddleware.HeaderRequestID,
		},
	}))
	e.Use(middleware.BodyLimit(bodyLimit(cfg.MaxUploadBytes)))

	e.Validator = api.NewValidator()

	router.Setup(e, router.Handlers{
		Catalog:  handler.NewCatalogHandler(catalog),
		Leads:    handler.NewLeadHandler(leadUseCase, leads),
		Files:    handler.NewFileHandler(files, cfg.MaxUploadBytes, log),
		Sessions: handler.NewSessionHandler(sessionUseCase, cfg.SessionCookieName, cfg.IsProduction()),
		Admin: handler.NewAdminHandler(
			catalog,
			productUseCase,
			collectionUseCase,
			weaveTypeUseCase,
			contentUseCase,
		),
		Health:    handler.NewHealthHandler(appCache, wsManager),
		WebSocket: handler.NewWebSocketHandler(wsManager, cfg.AllowedOrigins),
	}, router.Middlewares{
		Auth:        apimiddleware.NewAuthMiddleware(sessionUseCase, cfg.SessionCookieName),
		RateLimiter: limiter,
		Log:         log,
	})

	// the memory driver hands out URLs under /files; serve them from the
	// same process
	if local, ok := files.(http.Handler); ok {
		e.GET("/files/*", echo.WrapHandler(http.StripPrefix("/files", local)))
	}

	go func() {
		log.Info("starting server", "port", cfg.ServerPort, "environment", cfg.Environment, "store", cfg.StoreDriver)
		if err := e.Start(":" + cfg.ServerPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	log.Info("server stopped")
}

// backends opens the document store, identity provider and file storage for
// the configured driver. The memory driver needs no credentials.
func backends(ctx context.Context, cfg *config.Config, log logger.Logger) (repository.Stores, service.IdentityProvider, service.FileStorage, func(), error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using in-memory store; data is lost on restart")
		return repository.NewMemoryStores(), firebase.NewDevIdentity(), storage.NewMemoryStorage("http://localhost:" + cfg.ServerPort + "/files"), func() {}, nil
	}

	opts := cfg.ClientOptions()

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{
		ProjectID:     cfg.FirebaseProject,
		StorageBucket: cfg.StorageBucket,
	}, opts...)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	authClient, err := firebaseApp.Auth(ctx)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, log, opts...)
	if err != nil {
		firestoreClient.Close()
		return nil, nil, nil, nil, err
	}
	if err := storageClient.EnsureCORS(ctx, cfg.AllowedOrigins); err != nil {
		log.Warn("failed to update bucket CORS", "error", err)
	}

	closeAll := func() {
		if err := storageClient.Close(); err != nil {
			log.Warn("failed to close storage client", "error", err)
		}
		if err := firestoreClient.Close(); err != nil {
			log.Warn("failed to close firestore client", "error", err)
		}
	}

	return repository.NewFirestoreStores(firestoreClient), firebase.NewFirebaseAuthClient(authClient), storageClient, closeAll, nil
}

// newCache connects to Redis when configured. Reads work without a cache, so
// an unreachable server only costs a warning.
func newCache(ctx context.Context, cfg *config.Config, log logger.Logger) cache.Cache {
	if cfg.RedisAddr == "" {
		return cache.Nop()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "error", err)
		client.Close()
		return cache.Nop()
	}

	log.Info("connected to redis", "addr", cfg.RedisAddr)
	return cache.NewRedis(client, cfg.CachePrefix)
}

// bodyLimit leaves room for multipart framing around the largest upload.
func bodyLimit(maxUpload int64) string {
	const overhead = 64 * 1024
	return formatBytes(maxUpload + overhead)
}

func formatBytes(n int64) string {
	kb := (n + 1023) / 1024
	return strconv.FormatInt(kb, 10) + "K"
}
