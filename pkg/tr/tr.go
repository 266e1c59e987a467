// Package tr делает границу транзакции явной: usecase открывает транзакцию
// через Manager, репозитории достают pgx.Tx из контекста через TxFromCtx.
package tr

import (
	"context"

	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
)

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value("tx")
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// Manager открывает и завершает транзакции PostgreSQL.
// Любая ошибка fn откатывает транзакцию целиком.
type Manager struct {
	db transaction.Transactional
}

func NewManager(db transaction.Transactional) *Manager {
	return &Manager{db: db}
}

// WithinTransaction выполняет fn внутри одной транзакции.
// Транзакция кладётся в контекст под ключом "tx", коммит происходит
// только если fn вернула nil.
func (m *Manager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	const op = "tr.Manager.WithinTransaction"

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.db)
	if err != nil {
		return e.Wrap(op, err)
	}

	defer func() {
		if tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()

	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	if err := fn(ctx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return e.Wrap(op, err)
	}

	return nil
}
