// Package memory implementa los puertos de repositorio sobre estructuras en
// memoria. Se usa en los tests de los casos de uso de planificación y stock
// para ejercitar la lógica sin PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// Store contiene el estado compartido de los repositorios en memoria.
type Store struct {
	mu        sync.Mutex
	Insumos   map[string]*entity.Insumo
	Recetas   map[string]*entity.Receta
	Menus     []*entity.Menu
	Movements []*entity.StockMovement
}

// NewStore construye un estado vacío.
func NewStore() *Store {
	return &Store{
		Insumos: make(map[string]*entity.Insumo),
		Recetas: make(map[string]*entity.Receta),
	}
}

// InsumoRepo adaptador en memoria de repository.InsumoRepository.
type InsumoRepo struct{ store *Store }

// NewInsumoRepository construye el adaptador sobre el store.
func NewInsumoRepository(store *Store) *InsumoRepo { return &InsumoRepo{store: store} }

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

func (r *InsumoRepo) GetByID(_ context.Context, id string) (*entity.Insumo, error) {
	insumo, ok := r.store.Insumos[id]
	if !ok {
		return nil, nil
	}
	copied := *insumo
	return &copied, nil
}

func (r *InsumoRepo) List(_ context.Context, limit, offset int) ([]*entity.Insumo, error) {
	all := make([]*entity.Insumo, 0, len(r.store.Insumos))
	for _, insumo := range r.store.Insumos {
		copied := *insumo
		all = append(all, &copied)
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit > 0 && limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (r *InsumoRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Insumo, error) {
	result := make(map[string]*entity.Insumo, len(ids))
	for _, id := range ids {
		if insumo, ok := r.store.Insumos[id]; ok {
			copied := *insumo
			result[id] = &copied
		}
	}
	return result, nil
}

func (r *InsumoRepo) GetForUpdate(ctx context.Context, id string) (*entity.Insumo, error) {
	// La serialización por insumo la da el mutex del TxRunner.
	return r.GetByID(ctx, id)
}

func (r *InsumoRepo) UpdateStock(_ context.Context, id string, stock, pendingReception decimal.Decimal) error {
	insumo, ok := r.store.Insumos[id]
	if !ok {
		return nil
	}
	insumo.StockQuantity = stock
	insumo.PendingReceptionQuantity = pendingReception
	insumo.UpdatedAt = time.Now()
	return nil
}

// RecetaRepo adaptador en memoria de repository.RecetaRepository.
type RecetaRepo struct{ store *Store }

// NewRecetaRepository construye el adaptador sobre el store.
func NewRecetaRepository(store *Store) *RecetaRepo { return &RecetaRepo{store: store} }

var _ repository.RecetaRepository = (*RecetaRepo)(nil)

func (r *RecetaRepo) GetByID(_ context.Context, id string) (*entity.Receta, error) {
	receta, ok := r.store.Recetas[id]
	if !ok {
		return nil, nil
	}
	return receta, nil
}

func (r *RecetaRepo) GetByIDs(_ context.Context, ids []string) (map[string]*entity.Receta, error) {
	result := make(map[string]*entity.Receta, len(ids))
	for _, id := range ids {
		if receta, ok := r.store.Recetas[id]; ok {
			result[id] = receta
		}
	}
	return result, nil
}

// MenuRepo adaptador en memoria de repository.MenuRepository.
type MenuRepo struct{ store *Store }

// NewMenuRepository construye el adaptador sobre el store.
func NewMenuRepository(store *Store) *MenuRepo { return &MenuRepo{store: store} }

var _ repository.MenuRepository = (*MenuRepo)(nil)

func (r *MenuRepo) ListByDateRange(_ context.Context, start, end time.Time) ([]*entity.Menu, error) {
	var out []*entity.Menu
	for _, menu := range r.store.Menus {
		if menu.MenuDate.Before(start) || menu.MenuDate.After(end) {
			continue
		}
		out = append(out, menu)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MenuDate.Before(out[j].MenuDate) })
	return out, nil
}

// MovementRepo adaptador en memoria de repository.StockMovementRepository.
type MovementRepo struct{ store *Store }

// NewStockMovementRepository construye el adaptador sobre el store.
func NewStockMovementRepository(store *Store) *MovementRepo { return &MovementRepo{store: store} }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	copied := *movement
	r.store.Movements = append(r.store.Movements, &copied)
	return nil
}

func (r *MovementRepo) ListByInsumo(_ context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.store.Movements {
		if m.InsumoID != insumoID {
			continue
		}
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		copied := *m
		out = append(out, &copied)
	}
	// Más reciente primero, como el adaptador de PostgreSQL.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// TxRunner ejecuta el callback bajo un mutex global y con semántica
// todo-o-nada: si fn falla se restaura el snapshot previo de insumos y
// movimientos, imitando el rollback de la transacción real.
type TxRunner struct{ store *Store }

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(store *Store) *TxRunner { return &TxRunner{store: store} }

// Run ejecuta fn con repos atados al store, restaurando el estado si falla.
func (r *TxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	insumoRepo repository.InsumoRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	snapshotInsumos := make(map[string]*entity.Insumo, len(r.store.Insumos))
	for id, insumo := range r.store.Insumos {
		copied := *insumo
		snapshotInsumos[id] = &copied
	}
	snapshotMovements := make([]*entity.StockMovement, len(r.store.Movements))
	copy(snapshotMovements, r.store.Movements)

	err := fn(NewStockMovementRepository(r.store), NewInsumoRepository(r.store))
	if err != nil {
		r.store.Insumos = snapshotInsumos
		r.store.Movements = snapshotMovements
		return err
	}
	return nil
}
