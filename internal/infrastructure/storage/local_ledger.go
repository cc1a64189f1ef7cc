package storage

import (
	"context"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/domain/repository"
)

// localLedger treats the local store as the order ledger. Used when no
// spreadsheet backend is configured.
type localLedger struct {
	store repository.OrderStore
}

// NewLocalLedger adapts an OrderStore into an OrderLedger.
func NewLocalLedger(store repository.OrderStore) repository.OrderLedger {
	return &localLedger{store: store}
}

func (l *localLedger) Append(ctx context.Context, order entity.Order) error {
	return l.store.Save(ctx, order)
}
