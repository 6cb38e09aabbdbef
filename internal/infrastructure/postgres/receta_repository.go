package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

var _ repository.RecetaRepository = (*RecetaRepo)(nil)

// RecetaRepo implementación de RecetaRepository sobre PostgreSQL (usable con pool o tx).
type RecetaRepo struct {
	q Querier
}

// NewRecetaRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRecetaRepository(q Querier) *RecetaRepo {
	return &RecetaRepo{q: q}
}

// GetByID obtiene una receta con sus líneas. Devuelve (nil, nil) si no existe.
func (r *RecetaRepo) GetByID(ctx context.Context, id string) (*entity.Receta, error) {
	query := `SELECT id, name, category FROM recetas WHERE id = $1`
	var receta entity.Receta
	err := r.q.QueryRow(ctx, query, id).Scan(&receta.ID, &receta.Name, &receta.Category)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get receta: %w", err)
	}
	lines, err := r.loadLines(ctx, []string{id})
	if err != nil {
		return nil, err
	}
	receta.Lines = lines[id]
	return &receta, nil
}

// GetByIDs devuelve las recetas existentes (con líneas) indexadas por ID.
func (r *RecetaRepo) GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Receta, error) {
	result := make(map[string]*entity.Receta, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	query := `SELECT id, name, category FROM recetas WHERE id = ANY($1)`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("get recetas by ids: %w", err)
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var receta entity.Receta
		if err := rows.Scan(&receta.ID, &receta.Name, &receta.Category); err != nil {
			return nil, fmt.Errorf("scan receta: %w", err)
		}
		result[receta.ID] = &receta
		found = append(found, receta.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	lines, err := r.loadLines(ctx, found)
	if err != nil {
		return nil, err
	}
	for recetaID, recetaLines := range lines {
		if receta, ok := result[recetaID]; ok {
			receta.Lines = recetaLines
		}
	}
	return result, nil
}

// loadLines trae las líneas de varias recetas en una sola lectura, respetando
// el orden de carga de cada receta (line_order).
func (r *RecetaRepo) loadLines(ctx context.Context, recetaIDs []string) (map[string][]entity.RecetaInsumo, error) {
	result := make(map[string][]entity.RecetaInsumo, len(recetaIDs))
	if len(recetaIDs) == 0 {
		return result, nil
	}
	query := `
		SELECT receta_id, insumo_id, quantity_base
		FROM receta_insumos
		WHERE receta_id = ANY($1)
		ORDER BY receta_id, line_order`
	rows, err := r.q.Query(ctx, query, recetaIDs)
	if err != nil {
		return nil, fmt.Errorf("load receta lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var recetaID string
		var line entity.RecetaInsumo
		if err := rows.Scan(&recetaID, &line.InsumoID, &line.QuantityBase); err != nil {
			return nil, fmt.Errorf("scan receta line: %w", err)
		}
		result[recetaID] = append(result[recetaID], line)
	}
	return result, rows.Err()
}
