package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
)

// InsumoRepository define el puerto para consultar y actualizar insumos (DIP).
// UpdateStock solo debe invocarse desde el libro de movimientos, dentro de la
// misma transacción que inserta el asiento.
type InsumoRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Insumo, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Insumo, error)
	// GetByIDs devuelve los insumos existentes indexados por ID. Los IDs sin
	// fila simplemente no aparecen en el mapa (referencias colgantes).
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Insumo, error)

	// GetForUpdate bloquea la fila del insumo (SELECT FOR UPDATE) para
	// serializar las escrituras de stock por insumo.
	GetForUpdate(ctx context.Context, id string) (*entity.Insumo, error)
	// UpdateStock persiste el nuevo saldo y la recepción pendiente del insumo.
	UpdateStock(ctx context.Context, id string, stock, pendingReception decimal.Decimal) error
}
