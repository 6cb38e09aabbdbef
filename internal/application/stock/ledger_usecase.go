// Package stock implementa la ruta de escritura del inventario: el libro
// append-only de movimientos con actualización transaccional del saldo, y el
// descuento diario por preparación.
package stock

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/entity"
	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// MovementInput entrada para registrar un movimiento de stock.
// Quantity va firmada y su signo debe coincidir con la dirección del tipo:
// positiva para purchase-in/reception-in/adjustment-in, negativa para
// adjustment-out/consumption-out/daily-prep-out. Un signo cruzado es un bug
// del caller y se rechaza, no se normaliza.
type MovementInput struct {
	InsumoID     string
	MovementType string
	Quantity     decimal.Decimal
	Reference    string
	Notes        string
	MenuID       string
	RegisteredBy string
}

// LedgerUseCase registra movimientos de stock de forma transaccional: bloquea
// la fila del insumo (SELECT FOR UPDATE), calcula el saldo resultante, inserta
// el asiento y persiste el nuevo saldo en la misma transacción. Una escritura
// parcial (asiento sin saldo o saldo sin asiento) desincroniza el saldo vivo
// del saldo implícito del libro, y es el fallo que esta pieza existe para
// impedir.
type LedgerUseCase struct {
	txRunner   TxRunner
	movRepo    repository.StockMovementRepository // lecturas fuera de tx
	insumoRepo repository.InsumoRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(txRunner TxRunner, movRepo repository.StockMovementRepository, insumoRepo repository.InsumoRepository) *LedgerUseCase {
	return &LedgerUseCase{txRunner: txRunner, movRepo: movRepo, insumoRepo: insumoRepo}
}

// RegisterMovement valida y registra un movimiento, devolviendo el asiento
// con su saldo resultante. Errores: domain.ErrInvalidInput (tipo desconocido
// o cantidad cero), domain.ErrSignMismatch, domain.ErrNotFound (insumo),
// *InsufficientStockError cuando una salida dejaría el saldo negativo.
func (uc *LedgerUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*entity.StockMovement, error) {
	direction := entity.MovementDirection(input.MovementType)
	if direction == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	if input.Quantity.Sign() != direction {
		return nil, domain.ErrSignMismatch
	}

	var movement *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		insumoRepo repository.InsumoRepository,
	) error {
		var err error
		movement, err = appendEntry(ctx, movRepo, insumoRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return movement, nil
}

// appendEntry ejecuta el asiento dentro de una transacción ya abierta (los
// repos vienen atados a la tx). Lo comparte el descuento diario para que cada
// ítem del lote sea su propia unidad atómica.
func appendEntry(
	ctx context.Context,
	movRepo repository.StockMovementRepository,
	insumoRepo repository.InsumoRepository,
	input MovementInput,
	now time.Time,
) (*entity.StockMovement, error) {
	insumo, err := insumoRepo.GetForUpdate(ctx, input.InsumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.ErrNotFound
	}

	newBalance := insumo.StockQuantity.Add(input.Quantity)
	if input.Quantity.Sign() < 0 && newBalance.LessThan(decimal.Zero) {
		return nil, &InsufficientStockError{
			InsumoID:   insumo.ID,
			InsumoName: insumo.Name,
			Requested:  input.Quantity.Neg(),
			Available:  insumo.StockQuantity,
		}
	}

	// Una recepción baja lo pendiente de recibir, con piso en cero.
	pending := insumo.PendingReceptionQuantity
	if input.MovementType == entity.MovementReceptionIn {
		pending = decimal.Max(decimal.Zero, pending.Sub(input.Quantity))
	}

	movement := &entity.StockMovement{
		InsumoID:         insumo.ID,
		MovementType:     input.MovementType,
		QuantityChange:   input.Quantity,
		ResultingBalance: newBalance,
		Reference:        input.Reference,
		Notes:            input.Notes,
		MenuID:           input.MenuID,
		CreatedAt:        now,
		CreatedBy:        input.RegisteredBy,
	}
	if err := movRepo.Create(ctx, movement); err != nil {
		return nil, err
	}
	if err := insumoRepo.UpdateStock(ctx, insumo.ID, newBalance, pending); err != nil {
		return nil, err
	}
	return movement, nil
}

// History devuelve los asientos de un insumo, el más reciente primero.
func (uc *LedgerUseCase) History(ctx context.Context, insumoID string, from, to *time.Time, limit, offset int) ([]*entity.StockMovement, error) {
	insumo, err := uc.insumoRepo.GetByID(ctx, insumoID)
	if err != nil {
		return nil, err
	}
	if insumo == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByInsumo(ctx, insumoID, from, to, limit, offset)
}

// ReplayBalance repliega el libro en orden cronológico partiendo de un saldo
// inicial. La lógica de derivación de saldos siempre trata el libro como
// cronológico aunque la pantalla lo muestre invertido.
func ReplayBalance(movements []*entity.StockMovement, opening decimal.Decimal) decimal.Decimal {
	ordered := make([]*entity.StockMovement, len(movements))
	copy(ordered, movements)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	balance := opening
	for _, m := range ordered {
		balance = balance.Add(m.QuantityChange)
	}
	return balance
}
