package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	dbutil "github.com/waveup-app/waveup-api/internal/db"
	"github.com/waveup-app/waveup-api/internal/models"
	"github.com/waveup-app/waveup-api/internal/settings"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore persists key-value records through GORM. Update serializes
// read-modify-write cycles with a per-store mutex and, on PostgreSQL, a row
// lock inside the transaction.
type GormStore struct {
	db      *gorm.DB
	timeout time.Duration

	mu sync.Mutex
}

// NewGormStore constructs a GormStore with the default call timeout.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, timeout: settings.DefaultStoreTimeout}
}

// bound derives a context with the store call timeout applied.
func (s *GormStore) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Get returns the value stored under key.
func (s *GormStore) Get(ctx context.Context, key string) (string, bool, error) {
	if s == nil || s.db == nil {
		return "", false, fmt.Errorf("gorm store: not initialized: %w", ErrUnavailable)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	var row models.Record
	if errFind := s.db.WithContext(ctx).Where("key = ?", key).Take(&row).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("gorm store: load %s: %w", key, errFind)
	}
	return string(row.Content), true, nil
}

// Set stores value under key, replacing any previous value.
func (s *GormStore) Set(ctx context.Context, key, value string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("gorm store: not initialized: %w", ErrUnavailable)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	return upsertRecord(s.db.WithContext(ctx), key, value)
}

// Remove deletes the value stored under key.
func (s *GormStore) Remove(ctx context.Context, key string) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("gorm store: not initialized: %w", ErrUnavailable)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()
	if errDelete := s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Record{}).Error; errDelete != nil {
		return fmt.Errorf("gorm store: delete %s: %w", key, errDelete)
	}
	return nil
}

// ListKeys returns all keys starting with prefix, sorted.
func (s *GormStore) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("gorm store: not initialized: %w", ErrUnavailable)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	keys := make([]string, 0)
	if errPluck := s.db.WithContext(ctx).
		Model(&models.Record{}).
		Where("key LIKE ? ESCAPE '\\'", escapeLike(prefix)+"%").
		Order("key ASC").
		Pluck("key", &keys).Error; errPluck != nil {
		return nil, fmt.Errorf("gorm store: list %s: %w", prefix, errPluck)
	}
	return keys, nil
}

// Update applies fn to the current value of key as a single transaction.
func (s *GormStore) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("gorm store: not initialized: %w", ErrUnavailable)
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		query := tx.Where("key = ?", key)
		if !dbutil.IsSQLite(tx) {
			query = query.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		old := ""
		found := true
		var row models.Record
		if errFind := query.Take(&row).Error; errFind != nil {
			if !errors.Is(errFind, gorm.ErrRecordNotFound) {
				return fmt.Errorf("gorm store: load %s: %w", key, errFind)
			}
			found = false
		} else {
			old = string(row.Content)
		}

		next, errFn := fn(old, found)
		if errFn != nil {
			return errFn
		}
		return upsertRecord(tx, key, next)
	})
}

// upsertRecord inserts or replaces the record payload for key.
func upsertRecord(tx *gorm.DB, key, value string) error {
	now := time.Now().UTC()
	row := models.Record{
		Key:       key,
		Content:   datatypes.JSON([]byte(value)),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errUpsert := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&row).Error; errUpsert != nil {
		return fmt.Errorf("gorm store: upsert %s: %w", key, errUpsert)
	}
	return nil
}

// likeEscaper neutralizes LIKE wildcards inside a literal prefix.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(prefix string) string {
	return likeEscaper.Replace(prefix)
}
