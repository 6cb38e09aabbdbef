package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lista: el libro es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un asiento del libro de stock.
func (r *StockMovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, insumo_id, movement_type, quantity_change, resulting_balance, reference, notes, menu_id, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	menuID := (*string)(nil)
	if movement.MenuID != "" {
		menuID = &movement.MenuID
	}
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.InsumoID, movement.MovementType,
		movement.QuantityChange, movement.ResultingBalance,
		movement.Reference, movement.Notes, menuID,
		movement.CreatedAt, createdBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create stock movement %s: asiento duplicado: %w", movement.ID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListByInsumo lista los asientos de un insumo en un rango de fechas, el más
// reciente primero (orden de pantalla).
func (r *StockMovementRepo) ListByInsumo(ctx context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, insumo_id, movement_type, quantity_change, resulting_balance, reference, notes, menu_id, created_at, created_by
		FROM stock_movements WHERE insumo_id = $1`
	args := []any{insumoID}
	pos := 2
	if from != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *from)
		pos++
	}
	if to != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *to)
		pos++
	}
	query += " ORDER BY created_at DESC"
	// limit <= 0 = sin límite, igual que el listado de insumos.
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", pos, pos+1)
		args = append(args, limit, offset)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var menuID, createdBy *string
		if err := rows.Scan(&m.ID, &m.InsumoID, &m.MovementType, &m.QuantityChange, &m.ResultingBalance,
			&m.Reference, &m.Notes, &menuID, &m.CreatedAt, &createdBy); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if menuID != nil {
			m.MenuID = *menuID
		}
		if createdBy != nil {
			m.CreatedBy = *createdBy
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
