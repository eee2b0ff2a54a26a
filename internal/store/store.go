// Package store provides the persistence layer built on GORM with a SQLite
// driver: connection pooling, retrying open, auto-migration, and one
// repository type per aggregate.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
)

// Store wraps the GORM handle and hands out repositories.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// Open connects to the database with retry logic and connection pooling,
// then runs auto-migration when enabled. The context cancels connection
// attempts during retries.
func Open(ctx context.Context, cfg Config, log *logger.Logger) (*Store, error) {
	cfg.ApplyDefaults()

	slowThreshold, _ := time.ParseDuration(cfg.SlowQueryThreshold)
	gormCfg := &gorm.Config{
		Logger: newGormLogger(log, slowThreshold, parseLogLevel(cfg.LogLevel)),
	}

	var db *gorm.DB
	var err error
	for attempt := 1; attempt <= cfg.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("database connection canceled: %w", ctx.Err())
		}

		db, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
		if err == nil {
			sqlDB, sqlErr := db.DB()
			if sqlErr != nil {
				err = sqlErr
			} else if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
				err = pingErr
			} else {
				sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
				sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
				if lifetime, parseErr := time.ParseDuration(cfg.ConnMaxLifetime); parseErr == nil {
					sqlDB.SetConnMaxLifetime(lifetime)
				}
				log.Info("Database connection established", map[string]interface{}{
					"dsn":     cfg.DSN,
					"attempt": attempt,
				})
				s := &Store{db: db, log: log.WithComponent("store")}
				if cfg.AutoMigrate {
					if migErr := s.Migrate(ctx); migErr != nil {
						return nil, migErr
					}
				}
				return s, nil
			}
		}

		if attempt < cfg.MaxRetries {
			backoff := time.Duration(attempt) * time.Second
			log.Warn("Database connection attempt failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"error":   err.Error(),
				"backoff": backoff.String(),
			})
			select {
			case <-ctx.Done():
				return nil, fmt.Errorf("database connection canceled during retry: %w", ctx.Err())
			case <-time.After(backoff):
			}
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", cfg.MaxRetries, err)
}

// Migrate creates or updates the schema for all models.
func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}
	s.log.Info("Database schema migrated")
	return nil
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Users returns the user repository.
func (s *Store) Users() *UserRepository { return &UserRepository{db: s.db} }

// Quizzes returns the quiz repository.
func (s *Store) Quizzes() *QuizRepository { return &QuizRepository{db: s.db} }

// Questions returns the question repository.
func (s *Store) Questions() *QuestionRepository { return &QuestionRepository{db: s.db} }

// Answers returns the answer repository.
func (s *Store) Answers() *AnswerRepository { return &AnswerRepository{db: s.db} }

// Stories returns the story repository.
func (s *Store) Stories() *StoryRepository { return &StoryRepository{db: s.db} }

// Attempts returns the quiz attempt repository.
func (s *Store) Attempts() *AttemptRepository { return &AttemptRepository{db: s.db} }

// Progress returns the quiz progress repository.
func (s *Store) Progress() *ProgressRepository { return &ProgressRepository{db: s.db} }

// translate converts a GORM error into an AppError for the named resource.
func translate(err error, resource string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFound(resource)
	case errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err):
		return apperr.Conflict(fmt.Sprintf("%s already exists", resource)).WithCause(err)
	default:
		return apperr.Database(err)
	}
}

// isUniqueViolation matches the sqlite driver's constraint error text, which
// GORM does not always normalize to ErrDuplicatedKey.
func isUniqueViolation(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "unique constraint")
}
