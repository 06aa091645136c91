package storage

import (
	"context"
	"fmt"
	"net"
	"strings"
	"time"

	"alcyxob/workout-tracker/internal/config"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMongo  = "mongo"
	BackendS3     = "s3"
)

// Open builds the configured backend. When the backend is known but cannot
// be reached, Open logs a warning and returns a MemoryStore with
// fallback=true: the stored data is a convenience cache, so losing it on
// restart is preferable to refusing to start. Only an unknown backend name
// is returned as an error.
func Open(ctx context.Context, cfg config.Config) (store Store, fallback bool, err error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))

	var openErr error
	switch backend {
	case BackendMemory, "":
		return NewMemoryStore(), false, nil
	case BackendSQLite:
		store, openErr = OpenSQLite(ctx, cfg.Storage.SQLitePath)
	case BackendRedis:
		store, openErr = openRedis(ctx, cfg.Redis)
	case BackendMongo:
		store, openErr = openMongo(ctx, cfg.Database)
	case BackendS3:
		store, openErr = openS3(ctx, cfg.S3)
	default:
		return nil, false, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	if openErr != nil {
		log.WithError(openErr).WithField("backend", backend).
			Warn("storage backend unavailable, falling back to volatile memory store")
		return NewMemoryStore(), true, nil
	}

	if cfg.Storage.CacheSizeMB > 0 {
		log.Infof("read cache enabled: %d MB", cfg.Storage.CacheSizeMB)
		store = NewCachedStore(store, cfg.Storage.CacheSizeMB*1024*1024)
	}

	log.WithField("backend", backend).Info("storage backend ready")
	return store, false, nil
}

func openRedis(ctx context.Context, cfg config.RedisConfig) (Store, error) {
	host, port, err := net.SplitHostPort(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("redis.address: %w", err)
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(host, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisStore(rdb), nil
}

func openMongo(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	client, err := ConnectDB(cfg.URI)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	store := NewMongoStore(client, client.Database(cfg.Name))

	// Index creation is not needed to serve requests.
	go func() {
		idxCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		store.EnsureIndexes(idxCtx)
	}()
	return store, nil
}

func openS3(ctx context.Context, cfg config.S3Config) (Store, error) {
	if cfg.BucketName == "" {
		return nil, fmt.Errorf("s3.bucket_name is empty")
	}
	client, err := NewS3Client(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store := NewS3Store(client, cfg.BucketName, cfg.Prefix)

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := store.CheckBucket(checkCtx); err != nil {
		return nil, fmt.Errorf("head bucket %s: %w", cfg.BucketName, err)
	}
	log.Infof("S3 storage initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)
	return store, nil
}
