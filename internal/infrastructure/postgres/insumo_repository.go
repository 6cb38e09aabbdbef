package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

const insumoColumns = `id, name, base_unit, purchase_unit, conversion_factor, unit_cost,
		stock_quantity, min_stock_level, pending_reception_quantity, pending_delivery_quantity,
		created_at, updated_at`

// InsumoRepo implementación de InsumoRepository sobre PostgreSQL (usable con pool o tx).
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

// GetByID obtiene un insumo por ID. Devuelve (nil, nil) si no existe.
func (r *InsumoRepo) GetByID(ctx context.Context, id string) (*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE id = $1`
	insumo, err := scanInsumo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return insumo, nil
}

// List devuelve insumos ordenados por nombre. limit <= 0 = sin límite.
func (r *InsumoRepo) List(ctx context.Context, limit, offset int) ([]*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos ORDER BY name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1 OFFSET $2`
		args = append(args, limit, offset)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()

	var list []*entity.Insumo
	for rows.Next() {
		insumo, err := scanInsumo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, insumo)
	}
	return list, rows.Err()
}

// GetByIDs devuelve los insumos existentes indexados por ID; los IDs colgantes
// simplemente no aparecen.
func (r *InsumoRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Insumo, error) {
	result := make(map[string]*entity.Insumo, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get insumos by ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		insumo, err := scanInsumo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan insumo: %w", err)
		}
		result[insumo.ID] = insumo
	}
	return result, rows.Err()
}

// GetForUpdate obtiene el insumo y bloquea la fila (SELECT FOR UPDATE) para
// serializar las escrituras de stock por insumo. Devuelve (nil, nil) si no existe.
func (r *InsumoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Insumo, error) {
	query := `SELECT ` + insumoColumns + ` FROM insumos WHERE id = $1 FOR UPDATE`
	insumo, err := scanInsumo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo for update: %w", err)
	}
	return insumo, nil
}

// UpdateStock persiste el saldo y la recepción pendiente. Solo debe llamarse
// desde la transacción que inserta el asiento correspondiente.
func (r *InsumoRepo) UpdateStock(ctx context.Context, id string, stock, pendingReception decimal.Decimal) error {
	query := `
		UPDATE insumos
		SET stock_quantity = $2, pending_reception_quantity = $3, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, stock, pendingReception)
	if err != nil {
		return fmt.Errorf("update stock insumo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update stock insumo %s: fila inexistente", id)
	}
	return nil
}

func scanInsumo(row pgx.Row) (*entity.Insumo, error) {
	var i entity.Insumo
	err := row.Scan(
		&i.ID, &i.Name, &i.BaseUnit, &i.PurchaseUnit, &i.ConversionFactor, &i.UnitCost,
		&i.StockQuantity, &i.MinStockLevel, &i.PendingReceptionQuantity, &i.PendingDeliveryQuantity,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}
