package quality

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func testCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCache(client, time.Minute), mr
}

func TestFetchJSONPopulatesAndReuses(t *testing.T) {
	cache, _ := testCache(t)
	calls := 0
	loader := func(ctx context.Context) (interface{}, error) {
		calls++
		return []Reading{{Date: "2026-08-01", Turbidity: 12}}, nil
	}

	var first []Reading
	if err := cache.FetchJSON(context.Background(), "quality:test", &first, loader); err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	var second []Reading
	if err := cache.FetchJSON(context.Background(), "quality:test", &second, loader); err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected loader to run once, ran %d times", calls)
	}
	if len(second) != 1 || second[0].Turbidity != 12 {
		t.Fatalf("cached value mismatch: %+v", second)
	}
}

func TestFetchJSONPropagatesLoaderError(t *testing.T) {
	cache, _ := testCache(t)
	wantErr := errors.New("inference down")

	var dest []Reading
	err := cache.FetchJSON(context.Background(), "quality:test", &dest, func(ctx context.Context) (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

func TestFetchJSONNilClientPassesThrough(t *testing.T) {
	var cache *Cache
	calls := 0

	var dest []Reading
	for i := 0; i < 2; i++ {
		err := cache.FetchJSON(context.Background(), "quality:test", &dest, func(ctx context.Context) (interface{}, error) {
			calls++
			return []Reading{{Turbidity: 5}}, nil
		})
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
	}
	if calls != 2 {
		t.Fatalf("expected pass-through to call loader each time, got %d", calls)
	}
}

func TestStoreJSONOverwrites(t *testing.T) {
	cache, _ := testCache(t)
	ctx := context.Background()

	if err := cache.StoreJSON(ctx, keyOverview, &Overview{CriticalCount: 1}); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := cache.StoreJSON(ctx, keyOverview, &Overview{CriticalCount: 3}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	var overview Overview
	err := cache.FetchJSON(ctx, keyOverview, &overview, func(ctx context.Context) (interface{}, error) {
		t.Fatalf("loader must not run when the entry exists")
		return nil, nil
	})
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if overview.CriticalCount != 3 {
		t.Fatalf("expected overwritten value, got %d", overview.CriticalCount)
	}
}

func TestDropRemovesEntries(t *testing.T) {
	cache, mr := testCache(t)
	ctx := context.Background()

	if err := cache.StoreJSON(ctx, latestKey("1"), &Snapshot{WaterBodyID: "1"}); err != nil {
		t.Fatalf("store: %v", err)
	}
	if err := cache.Drop(ctx, latestKey("1")); err != nil {
		t.Fatalf("drop: %v", err)
	}
	if mr.Exists(latestKey("1")) {
		t.Fatalf("expected key to be removed")
	}
}
