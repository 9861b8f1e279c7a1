package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	config "example.com/socialhub/internal/init"
	"example.com/socialhub/internal/logger"
	"example.com/socialhub/internal/models"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var logg = logger.New()

// --- Errors ---

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned when a unique constraint is violated.
	ErrDuplicate = errors.New("duplicate key value")
)

// isDuplicate reports whether err is a Postgres unique violation.
func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// --- Interfaces ---

type StoreInterface interface {
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	GetUserByCredentials(ctx context.Context, username, password string) (models.User, error)
	GetUserByIDOrUsername(ctx context.Context, query string) (models.User, error)
	GetUserByID(ctx context.Context, id string) (models.User, error)
	UpdateUser(ctx context.Context, u models.User) error
	FreezeUser(ctx context.Context, id string) error

	ToggleFollow(ctx context.Context, followerID, followingID string) (bool, error)

	CreatePost(ctx context.Context, p models.Post) (models.Post, error)
	GetPost(ctx context.Context, id string) (models.Post, error)
	DeletePost(ctx context.Context, id string) error
	ToggleLike(ctx context.Context, userID, postID string) (bool, error)
	CreateReply(ctx context.Context, r models.Reply) (models.Reply, error)

	CreateMessage(ctx context.Context, m models.Message) (models.Message, error)
	GetConversation(ctx context.Context, userID, otherID string) ([]models.Message, error)

	Close()
}

// --- Store Implementation ---

type Store struct {
	Pool *pgxpool.Pool
}

// New runs migrations and opens a Postgres connection pool using the config.
func New(ctx context.Context, cfg *config.Config) (StoreInterface, error) {
	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	poolCfg.ConnConfig.ConnectTimeout = cfg.DBTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, cfg.DBTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logg.Info("store", "Connected to Postgres (connection details anonymized)")
	return &Store{Pool: pool}, nil
}

// --- Migration runner ---

func runMigrations(cfg *config.Config) error {
	migrationsPath := filepath.Join("./migrations/postgres")
	sourceURL := fmt.Sprintf("file://%s", migrationsPath)

	m, err := migrate.New(sourceURL, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration up failed: %w", err)
	}

	if err == migrate.ErrNoChange {
		logg.Info("store", "No new migrations to apply")
	} else {
		logg.Info("store", "Migrations applied successfully")
	}
	return nil
}

// Close gracefully closes the connection pool.
func (s *Store) Close() {
	if s.Pool != nil {
		s.Pool.Close()
		logg.Info("store", "Postgres pool closed")
	}
}
