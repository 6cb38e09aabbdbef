package repository

import (
	"context"
	"time"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
)

// MenuRepository define el puerto de lectura de menús planificados.
type MenuRepository interface {
	// ListByDateRange devuelve los menús cuya fecha cae en [start, end]
	// (inclusive), con servicios y asignaciones de recetas cargados.
	ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Menu, error)
}
