package repository

import (
	"context"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
)

// RecetaRepository define el puerto de lectura de recetas con sus líneas de insumos.
type RecetaRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Receta, error)
	// GetByIDs devuelve las recetas existentes (con líneas) indexadas por ID.
	// Los IDs sin fila no aparecen en el mapa.
	GetByIDs(ctx context.Context, ids []string) (map[string]*entity.Receta, error)
}
