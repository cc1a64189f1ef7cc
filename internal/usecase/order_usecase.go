package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/line-shop-bot/internal/domain/entity"
	"github.com/yourusername/line-shop-bot/internal/domain/repository"
)

// OrderUseCase records confirmed orders: one row appended to the
// ledger sheet, mirrored into the local store.
type OrderUseCase struct {
	ledger repository.OrderLedger
	store  repository.OrderStore
}

// NewOrderUseCase wires the ledger and the local mirror. The mirror is
// optional.
func NewOrderUseCase(ledger repository.OrderLedger, store repository.OrderStore) *OrderUseCase {
	return &OrderUseCase{ledger: ledger, store: store}
}

// Place validates the quantity and appends the order. The returned
// order carries the generated ID and timestamp for the confirmation
// reply.
func (u *OrderUseCase) Place(ctx context.Context, userID, displayName string, p entity.Product, qty int) (entity.Order, error) {
	if qty <= 0 {
		return entity.Order{}, fmt.Errorf("quantity must be positive, got %d", qty)
	}

	order := entity.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		DisplayName: displayName,
		ProductCode: p.Code,
		ProductName: p.Name,
		Qty:         qty,
		Price:       p.Price,
		Status:      entity.OrderStatusPending,
		CreatedAt:   time.Now(),
	}

	if err := u.ledger.Append(ctx, order); err != nil {
		return entity.Order{}, fmt.Errorf("failed to append order to ledger: %w", err)
	}

	// Mirror failure must not fail an order the ledger accepted.
	if u.store != nil {
		if err := u.store.Save(ctx, order); err != nil {
			log.Printf("order %s: local mirror save failed: %v", order.ID, err)
		}
	}

	return order, nil
}

// Recent lists recent orders from the local mirror.
func (u *OrderUseCase) Recent(ctx context.Context, limit int) ([]entity.Order, error) {
	if u.store == nil {
		return nil, fmt.Errorf("no local order store configured")
	}
	return u.store.Recent(ctx, limit)
}
