package repository

import (
	"context"
	"time"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
)

// StockMovementRepository define el puerto del libro de movimientos de stock.
// El libro es append-only: no hay Update ni Delete.
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// ListByInsumo devuelve los asientos de un insumo ordenados del más
	// reciente al más antiguo (para pantalla). from/to acotan por fecha si no
	// son nil.
	ListByInsumo(ctx context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error)
}
