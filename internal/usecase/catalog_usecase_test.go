package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
)

type fakeCatalogSource struct {
	calls    int
	products []entity.Product
	err      error
}

func (f *fakeCatalogSource) Fetch(ctx context.Context) ([]entity.Product, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.products, nil
}

type fakeCachingSource struct {
	fakeCatalogSource
	invalidated int
	fetchedAt   time.Time
}

func (f *fakeCachingSource) Invalidate() { f.invalidated++ }

func (f *fakeCachingSource) Info() (int, time.Time) {
	return len(f.products), f.fetchedAt
}

func TestCatalogSnapshot(t *testing.T) {
	src := &fakeCatalogSource{products: []entity.Product{{Code: "A1", Name: "Mug"}}}
	u := NewCatalogUseCase(src, "file:catalog.xlsx")

	snap, err := u.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(snap.Products) != 1 || snap.Source != "file:catalog.xlsx" {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
	if snap.UpdatedAt.IsZero() {
		t.Error("snapshot must carry a timestamp")
	}
}

func TestCatalogSnapshotUsesCacheTimestamp(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	src := &fakeCachingSource{fetchedAt: ts}
	src.products = []entity.Product{{Code: "A1"}}
	u := NewCatalogUseCase(src, "sheets:test")

	snap, err := u.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !snap.UpdatedAt.Equal(ts) {
		t.Errorf("updated at = %v, want %v", snap.UpdatedAt, ts)
	}
}

func TestCatalogRefreshInvalidates(t *testing.T) {
	src := &fakeCachingSource{}
	u := NewCatalogUseCase(src, "sheets:test")

	if _, err := u.Refresh(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.invalidated != 1 {
		t.Errorf("invalidations = %d, want 1", src.invalidated)
	}
	if src.calls != 1 {
		t.Errorf("fetches = %d, want 1", src.calls)
	}
}

func TestCatalogSnapshotError(t *testing.T) {
	u := NewCatalogUseCase(&fakeCatalogSource{err: errors.New("sheet down")}, "sheets:test")
	if _, err := u.Snapshot(context.Background()); err == nil {
		t.Error("source failure must propagate")
	}
}
