package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ProductRepo реализует репозиторий товаров поверх PostgreSQL.
type ProductRepo struct {
	pool *pgxpool.Pool
	conv converter.ProductConverter
}

func NewProductRepo(pool *pgxpool.Pool, conv converter.ProductConverter) *ProductRepo {
	return &ProductRepo{
		pool: pool,
		conv: conv,
	}
}

// Get читает товар по пулу без блокировки. Для котировки подытога
// перед открытием транзакции.
func (p *ProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT id, sku, name, import_price, sale_price, stock, category_id, created_at, updated_at
		FROM products
		WHERE id = $1
	`

	var model converter.ProductModel
	err := p.pool.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.SKU, &model.Name, &model.ImportPrice, &model.SalePrice,
			&model.Stock, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// GetForUpdate читает товар с блокировкой строки до конца транзакции.
// Закрывает гонку «прочитал остаток — списал остаток» между конкурентными
// изменениями одного товара.
func (p *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, sku, name, import_price, sale_price, stock, category_id, created_at, updated_at
		FROM products
		WHERE id = $1
		FOR UPDATE
	`

	var model converter.ProductModel
	err = tx.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.SKU, &model.Name, &model.ImportPrice, &model.SalePrice,
			&model.Stock, &model.CategoryID, &model.CreatedAt, &model.UpdatedAt,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return p.conv.ToEntity(&model), nil
}

// AdjustStock изменяет остаток на delta и возвращает новое значение.
// Запрос сам охраняет неотрицательность остатка: вызов без
// предварительной проверки не может увести сток в минус.
func (p *ProductRepo) AdjustStock(ctx context.Context, id int64, delta int64) (int64, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		UPDATE products
		SET stock = stock + $2, updated_at = NOW()
		WHERE id = $1 AND stock + $2 >= 0
		RETURNING stock
	`

	var stock int64
	err = tx.QueryRow(ctx, query, id, delta).Scan(&stock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, e.Wrap(whereami.WhereAmI(), e.ErrStockConstraint)
		}
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return stock, nil
}
