package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Servicios de comida de un menú.
const (
	ServiceDesayuno   = "desayuno"
	ServiceAlmuerzo   = "almuerzo"
	ServiceCena       = "cena"
	ServiceRefrigerio = "refrigerio"
)

// MenuServiceRecipe asigna una receta a un servicio del menú: qué plato,
// en qué categoría y cuántas porciones se van a preparar.
type MenuServiceRecipe struct {
	ID           string
	RecetaID     string
	DishCategory string
	Servings     decimal.Decimal // porciones planificadas
}

// MenuService agrupa las recetas asignadas a un servicio (desayuno, almuerzo, cena).
type MenuService struct {
	ID      string
	Service string
	Recipes []MenuServiceRecipe
}

// Menu es la planificación de un día (o evento): fecha, tipo de evento y
// recetas por servicio. La demanda de insumos de un menú es siempre derivada,
// nunca almacenada.
type Menu struct {
	ID               string
	MenuDate         time.Time
	EventType        string
	BaselineServings int // comensales de referencia para escalar cantidades (0 = sin escala)
	Services         []MenuService
}
