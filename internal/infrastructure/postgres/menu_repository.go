package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

var _ repository.MenuRepository = (*MenuRepo)(nil)

// MenuRepo implementación de MenuRepository sobre PostgreSQL (usable con pool o tx).
type MenuRepo struct {
	q Querier
}

// NewMenuRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMenuRepository(q Querier) *MenuRepo {
	return &MenuRepo{q: q}
}

// ListByDateRange devuelve los menús de [start, end] (inclusive) con sus
// servicios y asignaciones, en tres lecturas (menús, servicios, asignaciones)
// ensambladas en memoria.
func (r *MenuRepo) ListByDateRange(ctx context.Context, start, end time.Time) ([]*entity.Menu, error) {
	query := `
		SELECT id, menu_date, event_type, baseline_servings
		FROM menus
		WHERE menu_date >= $1 AND menu_date <= $2
		ORDER BY menu_date`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("list menus: %w", err)
	}
	defer rows.Close()

	var menus []*entity.Menu
	var menuIDs []string
	for rows.Next() {
		var m entity.Menu
		if err := rows.Scan(&m.ID, &m.MenuDate, &m.EventType, &m.BaselineServings); err != nil {
			return nil, fmt.Errorf("scan menu: %w", err)
		}
		menus = append(menus, &m)
		menuIDs = append(menuIDs, m.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return menus, nil
	}

	servicesByMenu, err := r.loadServices(ctx, menuIDs)
	if err != nil {
		return nil, err
	}
	assignments, err := r.loadAssignments(ctx, menuIDs)
	if err != nil {
		return nil, err
	}

	// Ensamblado en el orden de lectura (ORDER BY de cada consulta): el mismo
	// rango debe producir siempre los servicios en el mismo orden.
	for _, menu := range menus {
		for _, service := range servicesByMenu[menu.ID] {
			service.Recipes = assignments[service.ID]
			menu.Services = append(menu.Services, *service)
		}
	}
	return menus, nil
}

// loadServices devuelve los servicios agrupados por menú, conservando el
// orden de la consulta.
func (r *MenuRepo) loadServices(ctx context.Context, menuIDs []string) (map[string][]*entity.MenuService, error) {
	query := `
		SELECT id, menu_id, service
		FROM menu_services
		WHERE menu_id = ANY($1)
		ORDER BY menu_id, service`
	rows, err := r.q.Query(ctx, query, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("load menu services: %w", err)
	}
	defer rows.Close()

	byMenu := make(map[string][]*entity.MenuService)
	for rows.Next() {
		var id, menuID, service string
		if err := rows.Scan(&id, &menuID, &service); err != nil {
			return nil, fmt.Errorf("scan menu service: %w", err)
		}
		byMenu[menuID] = append(byMenu[menuID], &entity.MenuService{ID: id, Service: service})
	}
	return byMenu, rows.Err()
}

// loadAssignments devuelve las asignaciones de recetas agrupadas por servicio.
func (r *MenuRepo) loadAssignments(ctx context.Context, menuIDs []string) (map[string][]entity.MenuServiceRecipe, error) {
	query := `
		SELECT msr.id, msr.menu_service_id, msr.receta_id, msr.dish_category, msr.servings
		FROM menu_service_recipes msr
		JOIN menu_services ms ON ms.id = msr.menu_service_id
		WHERE ms.menu_id = ANY($1)
		ORDER BY msr.menu_service_id, msr.id`
	rows, err := r.q.Query(ctx, query, menuIDs)
	if err != nil {
		return nil, fmt.Errorf("load menu assignments: %w", err)
	}
	defer rows.Close()

	assignments := make(map[string][]entity.MenuServiceRecipe)
	for rows.Next() {
		var a entity.MenuServiceRecipe
		var serviceID string
		if err := rows.Scan(&a.ID, &serviceID, &a.RecetaID, &a.DishCategory, &a.Servings); err != nil {
			return nil, fmt.Errorf("scan menu assignment: %w", err)
		}
		assignments[serviceID] = append(assignments[serviceID], a)
	}
	return assignments, rows.Err()
}
