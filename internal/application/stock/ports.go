package stock

import (
	"context"

	"github.com/erpdeliciusfood/erpdeliciusfood-sub001/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la garantía de atomicidad del libro de
// stock: el asiento y la actualización del saldo ocurren juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		insumoRepo repository.InsumoRepository,
	) error) error
}
