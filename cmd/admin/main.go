// Command admin manages staff access and seeds catalog data from the shell.
//
//	admin -grant owner@rugs.example
//	admin -revoke former@rugs.example
//	admin -seed-collections collections.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"cloud.google.com/go/firestore"
	"github.com/redis/go-redis/v9"

	fbapp "firebase.google.com/go/v4"

	"rugstore/internal/adapter/repository"
	"rugstore/internal/domain/entity"
	"rugstore/internal/infrastructure/cache"
	"rugstore/internal/infrastructure/firebase"
	"rugstore/internal/infrastructure/storage"
	"rugstore/internal/transform"
	"rugstore/internal/usecase"
	"rugstore/pkg/config"
	"rugstore/pkg/logger"
)

func main() {
	grant := flag.String("grant", "", "email of the account to make an admin")
	revoke := flag.String("revoke", "", "email of the account to remove admin access from")
	seedFile := flag.String("seed-collections", "", "JSON file with an array of collections to write")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to load configuration:", err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.Environment)

	if err := run(context.Background(), cfg, log, *grant, *revoke, *seedFile); err != nil {
		log.Error("admin command failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log logger.Logger, grant, revoke, seedFile string) error {
	if grant == "" && revoke == "" && seedFile == "" {
		flag.Usage()
		return fmt.Errorf("nothing to do")
	}

	opts := cfg.ClientOptions()
	app, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		return fmt.Errorf("initialize firebase: %w", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		return fmt.Errorf("initialize auth: %w", err)
	}
	sessions := usecase.NewSessionUseCase(firebase.NewFirebaseAuthClient(authClient), cfg.SessionExpiry, log)

	for email, admin := range map[string]bool{grant: true, revoke: false} {
		if email == "" {
			continue
		}
		uid, err := sessions.GrantAdmin(ctx, email, admin)
		if err != nil {
			return err
		}
		log.Info("admin claim updated", "email", email, "uid", uid, "admin", admin)
	}

	if seedFile == "" {
		return nil
	}

	data, err := os.ReadFile(seedFile)
	if err != nil {
		return err
	}
	var inputs []usecase.CollectionInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return fmt.Errorf("parse %s: %w", seedFile, err)
	}

	client, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		return fmt.Errorf("initialize firestore: %w", err)
	}
	defer client.Close()

	var appCache cache.Cache = cache.Nop()
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		defer rdb.Close()
		appCache = cache.NewRedis(rdb, cfg.CachePrefix)
	}

	repos := repository.New(repository.NewFirestoreStores(client))
	// Seeding never touches files, so uploads go nowhere.
	collections := usecase.NewCollectionUseCase(repos.Collections, transform.New(), storage.NewMemoryStorage(""), appCache, log)

	ctx = usecase.WithPrincipal(ctx, &entity.Principal{UID: "admin-cli", Email: "admin-cli", Admin: true})
	seeded, err := collections.Seed(ctx, inputs)
	if err != nil {
		return err
	}
	log.Info("seeded collections", "count", len(seeded), "file", seedFile)
	return nil
}
