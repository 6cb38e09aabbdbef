package postgres_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/infrastructure/postgres"
)

// fakeRows implementa pgx.Rows sobre filas en memoria para probar el
// ensamblado del repositorio sin una base real.
type fakeRows struct {
	rows [][]any
	idx  int
}

func (r *fakeRows) Next() bool {
	r.idx++
	return r.idx <= len(r.rows)
}

func (r *fakeRows) Scan(dest ...any) error {
	row := r.rows[r.idx-1]
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = row[i].(string)
		case *int:
			*p = row[i].(int)
		case *time.Time:
			*p = row[i].(time.Time)
		case *decimal.Decimal:
			*p = row[i].(decimal.Decimal)
		}
	}
	return nil
}

func (r *fakeRows) Close()                                       {}
func (r *fakeRows) Err() error                                   { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *fakeRows) Values() ([]any, error)                       { return nil, nil }
func (r *fakeRows) RawValues() [][]byte                          { return nil }
func (r *fakeRows) Conn() *pgx.Conn                              { return nil }

// fakeQuerier responde cada consulta por la tabla que nombra, entregando las
// filas siempre en el mismo orden (como haría el ORDER BY real).
type fakeQuerier struct {
	menus       [][]any
	services    [][]any
	assignments [][]any
}

func (q *fakeQuerier) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	switch {
	case strings.Contains(sql, "FROM menu_service_recipes"):
		return &fakeRows{rows: q.assignments}, nil
	case strings.Contains(sql, "FROM menu_services"):
		return &fakeRows{rows: q.services}, nil
	default:
		return &fakeRows{rows: q.menus}, nil
	}
}

func (q *fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	panic("no usado en este test")
}

func (q *fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	panic("no usado en este test")
}

func TestListByDateRange_OrdenDeServiciosEstable(t *testing.T) {
	menuDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	q := &fakeQuerier{
		menus: [][]any{
			{"menu-1", menuDate, "servicio-regular", 0},
		},
		services: [][]any{
			{"svc-almuerzo", "menu-1", "almuerzo"},
			{"svc-cena", "menu-1", "cena"},
			{"svc-desayuno", "menu-1", "desayuno"},
			{"svc-refrigerio", "menu-1", "refrigerio"},
		},
		assignments: [][]any{
			{"asig-1", "svc-almuerzo", "receta-1", "fondo", decimal.NewFromInt(4)},
		},
	}
	repo := postgres.NewMenuRepository(q)
	want := []string{"almuerzo", "cena", "desayuno", "refrigerio"}

	// El mismo rango debe devolver los servicios en el orden de la consulta,
	// en cada llamada.
	for i := 0; i < 50; i++ {
		menus, err := repo.ListByDateRange(context.Background(), menuDate, menuDate)
		require.NoError(t, err)
		require.Len(t, menus, 1)
		require.Len(t, menus[0].Services, 4)

		got := make([]string, 0, 4)
		for _, svc := range menus[0].Services {
			got = append(got, svc.Service)
		}
		require.Equal(t, want, got,
			"el orden de los servicios debe ser estable entre llamadas")
	}

	menus, err := repo.ListByDateRange(context.Background(), menuDate, menuDate)
	require.NoError(t, err)
	require.Len(t, menus[0].Services[0].Recipes, 1)
	assert.Equal(t, "receta-1", menus[0].Services[0].Recipes[0].RecetaID)
	assert.Empty(t, menus[0].Services[1].Recipes)
}
