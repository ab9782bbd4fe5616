package store

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"testing"
)

func TestMemoryStore_SetGetRemove(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if _, ok, err := s.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if errSet := s.Set(ctx, "premium_status:c1", `{"tier":"free"}`); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	value, ok, err := s.Get(ctx, "premium_status:c1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != `{"tier":"free"}` {
		t.Fatalf("unexpected value %q", value)
	}

	if errRemove := s.Remove(ctx, "premium_status:c1"); errRemove != nil {
		t.Fatalf("remove: %v", errRemove)
	}
	if _, ok, _ := s.Get(ctx, "premium_status:c1"); ok {
		t.Fatal("expected key removed")
	}
}

func TestMemoryStore_ListKeysByPrefix(t *testing.T) {
	s := NewMemoryStore()
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
	if len(keys) != 2 || keys[0] != "ideas_used:a" || keys[1] != "ideas_used:b" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestMemoryStore_UpdateIsAtomic(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	const workers = 50

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Update(ctx, "counter", func(old string, ok bool) (string, error) {
				count := 0
				if ok {
					count, _ = strconv.Atoi(old)
				}
				return strconv.Itoa(count + 1), nil
			})
		}()
	}
	wg.Wait()

	value, ok, err := s.Get(ctx, "counter")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if value != strconv.Itoa(workers) {
		t.Fatalf("expected %d increments, got %s", workers, value)
	}
}

func TestMemoryStore_UpdateErrorLeavesValue(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	if errSet := s.Set(ctx, "k", `{"count":1}`); errSet != nil {
		t.Fatalf("set: %v", errSet)
	}
	errUpdate := s.Update(ctx, "k", func(old string, ok bool) (string, error) {
		return "", json.Unmarshal([]byte("not json"), &struct{}{})
	})
	if errUpdate == nil {
		t.Fatal("expected update error")
	}
	value, _, _ := s.Get(ctx, "k")
	if value != `{"count":1}` {
		t.Fatalf("value changed on failed update: %q", value)
	}
}
