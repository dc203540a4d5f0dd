package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-redis/redis/v8"
	"github.com/google/wire"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/iWorld-y/ipo_radar/app/sentiment/internal/conf"
)

// ProviderSet is data providers.
var ProviderSet = wire.NewSet(NewData, NewHistoryRepo, NewResultCache)

const defaultCacheTTL = 6 * time.Hour

// Data holds the optional history database and result cache.
type Data struct {
	db     *sql.DB
	driver string
	rdb    *redis.Client
	ttl    time.Duration
}

// NewData opens the configured stores. Stores without a source stay nil.
func NewData(c *conf.Data, logger log.Logger) (*Data, func(), error) {
	helper := log.NewHelper(logger)
	d := &Data{ttl: defaultCacheTTL}

	if c != nil && c.Database != nil && c.Database.Source != "" {
		db, err := openDB(c.Database.Driver, c.Database.Source)
		if err != nil {
			return nil, nil, err
		}
		d.db = db
		d.driver = c.Database.Driver
	}

	if c != nil && c.Redis != nil && c.Redis.Addr != "" {
		d.rdb = redis.NewClient(&redis.Options{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       int(c.Redis.Db),
		})
		if c.Redis.Ttl != "" {
			if ttl, err := time.ParseDuration(c.Redis.Ttl); err == nil {
				d.ttl = ttl
			}
		}
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := d.rdb.Ping(ctx).Err(); err != nil {
			helper.Warnf("redis %s unreachable, caching disabled: %v", c.Redis.Addr, err)
			d.rdb.Close()
			d.rdb = nil
		}
	}

	cleanup := func() {
		helper.Info("closing the data resources")
		if d.db != nil {
			d.db.Close()
		}
		if d.rdb != nil {
			d.rdb.Close()
		}
	}
	return d, cleanup, nil
}

func openDB(driver, source string) (*sql.DB, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, err
	}
	if driver == "sqlite" {
		// An in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	if _, err := db.Exec(schema(driver)); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to init analysis_runs table: %w", err)
	}
	return db, nil
}

func schema(driver string) string {
	id := "SERIAL PRIMARY KEY"
	if driver == "sqlite" {
		id = "INTEGER PRIMARY KEY AUTOINCREMENT"
	}
	return `
		CREATE TABLE IF NOT EXISTS analysis_runs (
			id ` + id + `,
			run_id TEXT NOT NULL,
			company_name TEXT NOT NULL,
			verdict TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			article_count INTEGER NOT NULL,
			created_at BIGINT NOT NULL
		)
	`
}
