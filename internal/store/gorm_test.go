package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/waveup-app/waveup-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if errMigrate := db.AutoMigrate(&models.Record{}); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}
	return NewGormStore(db)
}

func TestGormStore_SetOverwritesAndGetRoundTrips(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if errSet := s.Set(ctx, "security_state", `{"global_lock_active":false}`); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	if errSet := s.Set(ctx, "security_state", `{"global_lock_active":true}`); errSet != nil {
		t.Fatalf("set again: %v", errSet)
	}

	value, ok, err := s.Get(ctx, "security_state")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	var decoded struct {
		GlobalLockActive bool `json:"global_lock_active"`
	}
	if errUnmarshal := json.Unmarshal([]byte(value), &decoded); errUnmarshal != nil {
		t.Fatalf("unmarshal: %v", errUnmarshal)
	}
	if !decoded.GlobalLockActive {
		t.Fatal("expected second write to win")
	}

	var count int64
	if errCount := s.db.Model(&models.Record{}).Count(&count).Error; errCount != nil {
		t.Fatalf("count: %v", errCount)
	}
	if count != 1 {
		t.Fatalf("expected a single row after upsert, got %d", count)
	}
}

func TestGormStore_UpdateCreatesAndIncrements(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	type tracker struct {
		Date  string `json:"date"`
		Count int    `json:"count"`
	}

	increment := func(old string, ok bool) (string, error) {
		current := tracker{Date: "2024-01-15"}
		if ok {
			if errUnmarshal := json.Unmarshal([]byte(old), &current); errUnmarshal != nil {
				current = tracker{Date: "2024-01-15"}
			}
		}
		current.Count++
		payload, errMarshal := json.Marshal(current)
		if errMarshal != nil {
			return "", errMarshal
		}
		return string(payload), nil
	}

	for i := 0; i < 3; i++ {
		if errUpdate := s.Update(ctx, "ideas_used:c1", increment); errUpdate != nil {
			t.Fatalf("update %d: %v", i, errUpdate)
		}
	}

	value, ok, err := s.Get(ctx, "ideas_used:c1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	var current tracker
	if errUnmarshal := json.Unmarshal([]byte(value), &current); errUnmarshal != nil {
		t.Fatalf("unmarshal: %v", errUnmarshal)
	}
	if current.Count != 3 {
		t.Fatalf("expected count 3, got %d", current.Count)
	}
}

func TestGormStore_ListKeysAndRemove(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, key := range []string{"ideas_used:a", "ideas_used:b", "premium_status:a"} {
		if errSet := s.Set(ctx, key, `{}`); errSet != nil {
			t.Fatalf("set %s: %v", key, errSet)
		}
	}

	keys, err := s.ListKeys(ctx, "ideas_used:")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(keys) != 2 {
		t.Fatalf("expected 2 keys, got %v", keys)
	}

	if errRemove := s.Remove(ctx, "ideas_used:a"); errRemove != nil {
		t.Fatalf("remove: %v", errRemove)
	}
	if _, ok, _ := s.Get(ctx, "ideas_used:a"); ok {
		t.Fatal("expected key removed")
	}
}
