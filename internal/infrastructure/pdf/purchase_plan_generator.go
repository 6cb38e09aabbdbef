// Package pdf implementa la generación del plan de compras imprimible del
// dashboard (la lista de sugerencias de compra de un período).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Plan de compras + rango de fechas                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Insumo | Stock | Necesidad | Sugerido | Razón | $    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL ESTIMADO                                             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 96, Blue: 74}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// PurchasePlanGenerator genera el PDF del plan de compras usando Maroto v2.
type PurchasePlanGenerator struct{}

// NewPurchasePlanGenerator construye el generador.
func NewPurchasePlanGenerator() *PurchasePlanGenerator { return &PurchasePlanGenerator{} }

// Generate genera el PDF del plan de compras y devuelve sus bytes.
func (g *PurchasePlanGenerator) Generate(
	_ context.Context,
	start, end time.Time,
	plan *dto.PurchaseSuggestionsResponse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Plan de compras", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(start, end, plan.Total))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	for _, s := range plan.Suggestions {
		m.AddRows(suggestionRow(s))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(plan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(start, end time.Time, total int) core.Row {
	rango := fmt.Sprintf("Del %s al %s", start.Format("02/01/2006"), end.Format("02/01/2006"))
	return row.New(14).Add(
		col.New(8).Add(
			text.New("Plan de compras", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(rango, props.Text{Size: 9, Top: 8, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(fmt.Sprintf("%d insumo(s) a comprar", total), props.Text{
				Size: 9, Top: 4, Align: align.Right, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	header := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Align: align.Right}
	return row.New(6).Add(
		col.New(3).Add(text.New("Insumo", header)),
		col.New(1).Add(text.New("Stock", headerRight)),
		col.New(2).Add(text.New("Necesidad período", headerRight)),
		col.New(2).Add(text.New("Sugerido", headerRight)),
		col.New(2).Add(text.New("Razón", header)),
		col.New(2).Add(text.New("Costo est.", headerRight)),
	)
}

func suggestionRow(s dto.PurchaseSuggestionDTO) core.Row {
	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	return row.New(5).Add(
		col.New(3).Add(text.New(s.InsumoName, cell)),
		col.New(1).Add(text.New(s.CurrentStock.String(), cellRight)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%s %s", s.NeededForPeriodRounded.String(), s.PurchaseUnit), cellRight)),
		col.New(2).Add(text.New(
			fmt.Sprintf("%s %s", s.SuggestionRounded.String(), s.PurchaseUnit), cellRight)),
		col.New(2).Add(text.New(reasonLabel(s.Reason), cell)),
		col.New(2).Add(text.New("$ "+s.EstimatedCost.StringFixed(2), cellRight)),
	)
}

func totalRow(plan *dto.PurchaseSuggestionsResponse) core.Row {
	return row.New(8).Add(
		col.New(10).Add(text.New("TOTAL ESTIMADO", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 1,
		})),
		col.New(2).Add(text.New("$ "+plan.TotalEstimatedCost.StringFixed(2), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 1,
		})),
	)
}

func reasonLabel(reason string) string {
	switch reason {
	case dto.ReasonBoth:
		return "Menús y mínimo"
	case dto.ReasonMenuDemand:
		return "Demanda de menús"
	case dto.ReasonMinStockLevel:
		return "Bajo stock mínimo"
	case dto.ReasonZeroStockAlert:
		return "Stock en cero"
	default:
		return reason
	}
}
