package pgdb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/tr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// OrderRepo реализует репозиторий заказов поверх PostgreSQL.
// Мутации идут через транзакцию из контекста, чтения — через пул.
type OrderRepo struct {
	pool     *pgxpool.Pool
	conv     converter.OrderConverter
	itemConv converter.OrderItemConverter
}

func NewOrderRepo(pool *pgxpool.Pool, conv converter.OrderConverter, itemConv converter.OrderItemConverter) *OrderRepo {
	return &OrderRepo{
		pool:     pool,
		conv:     conv,
		itemConv: itemConv,
	}
}

const orderColumns = `id, status, created_time, updated_at, final_price, discount_amount, promotion_id, customer_id, created_by_id`

// Insert сохраняет заказ и его позиции одной транзакцией.
func (o *OrderRepo) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		INSERT INTO orders (status, final_price, discount_amount, promotion_id, customer_id, created_by_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_time
	`

	if err := tx.QueryRow(ctx, query,
		model.Status,
		model.FinalPrice,
		model.DiscountAmount,
		model.PromotionID,
		model.CustomerID,
		model.CreatedByID,
	).Scan(&model.ID, &model.CreatedTime); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	inserted := o.conv.ToEntity(model)

	items, err := o.insertItems(ctx, tx, inserted.ID, order.Items)
	if err != nil {
		return nil, err
	}
	inserted.Items = items

	return inserted, nil
}

// GetByID возвращает заказ с позициями.
func (o *OrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1`, orderColumns)

	var model converter.OrderModel
	err := o.pool.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Status, &model.CreatedTime, &model.UpdatedAt, &model.FinalPrice,
			&model.DiscountAmount, &model.PromotionID, &model.CustomerID, &model.CreatedByID,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order := o.conv.ToEntity(&model)

	items, err := o.loadItems(ctx, o.pool, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// GetForUpdate читает заказ с позициями, блокируя строку заказа.
func (o *OrderRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`SELECT %s FROM orders WHERE id = $1 FOR UPDATE`, orderColumns)

	var model converter.OrderModel
	err = tx.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Status, &model.CreatedTime, &model.UpdatedAt, &model.FinalPrice,
			&model.DiscountAmount, &model.PromotionID, &model.CustomerID, &model.CreatedByID,
		)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.ErrNotFound
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	order := o.conv.ToEntity(&model)

	items, err := o.loadItems(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	order.Items = items

	return order, nil
}

// List возвращает страницу заказов и общее количество по фильтру.
func (o *OrderRepo) List(ctx context.Context, filter usecase.OrderFilter) ([]domain.Order, int64, error) {
	where, args := buildOrderFilter(filter)

	countQuery := `SELECT COUNT(*) FROM orders` + where

	var total int64
	if err := o.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	pageQuery := fmt.Sprintf(
		`SELECT %s FROM orders%s ORDER BY created_time DESC, id DESC LIMIT $%d OFFSET $%d`,
		orderColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, filter.Size, (filter.Page-1)*filter.Size)

	rows, err := o.pool.Query(ctx, pageQuery, args...)
	if err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var model converter.OrderModel
		if err := rows.Scan(
			&model.ID, &model.Status, &model.CreatedTime, &model.UpdatedAt, &model.FinalPrice,
			&model.DiscountAmount, &model.PromotionID, &model.CustomerID, &model.CreatedByID,
		); err != nil {
			return nil, 0, e.Wrap(whereami.WhereAmI(), err)
		}

		orders = append(orders, *o.conv.ToEntity(&model))
		ids = append(ids, model.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := o.attachItems(ctx, orders, ids); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

// UpdateHeader переписывает изменяемые поля шапки заказа.
func (o *OrderRepo) UpdateHeader(ctx context.Context, order *domain.Order) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := o.conv.ToModel(order)
	query := `
		UPDATE orders
		SET customer_id = $2, final_price = $3, discount_amount = $4, updated_at = NOW()
		WHERE id = $1
	`

	ct, err := tx.Exec(ctx, query, model.ID, model.CustomerID, model.FinalPrice, model.DiscountAmount)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if ct.RowsAffected() == 0 {
		return e.ErrNotFound
	}

	return nil
}

// ReplaceItems заменяет набор позиций заказа целиком: удаление и повторная вставка.
func (o *OrderRepo) ReplaceItems(ctx context.Context, orderID int64, items []domain.OrderLineItem) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id = $1`, orderID); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := o.insertItems(ctx, tx, orderID, items); err != nil {
		return err
	}

	return nil
}

func (o *OrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	query := `UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`

	ct, err := tx.Exec(ctx, query, orderID, string(status))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if ct.RowsAffected() == 0 {
		return e.ErrNotFound
	}

	return nil
}

// Delete удаляет заказ; позиции удаляются каскадом по внешнему ключу.
func (o *OrderRepo) Delete(ctx context.Context, orderID int64) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	ct, err := tx.Exec(ctx, `DELETE FROM orders WHERE id = $1`, orderID)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	if ct.RowsAffected() == 0 {
		return e.ErrNotFound
	}

	return nil
}

// querier покрывает pgxpool.Pool и pgx.Tx для читающих запросов.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (o *OrderRepo) insertItems(ctx context.Context, tx pgx.Tx, orderID int64, items []domain.OrderLineItem) ([]domain.OrderLineItem, error) {
	query := `
		INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_sale_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	inserted := make([]domain.OrderLineItem, 0, len(items))
	for _, item := range items {
		model := o.itemConv.ToModel(&item)
		model.OrderID = orderID

		if err := tx.QueryRow(ctx, query,
			model.OrderID,
			model.ProductID,
			model.ProductName,
			model.Quantity,
			model.UnitSalePrice,
			model.TotalPrice,
		).Scan(&model.ID); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		inserted = append(inserted, *o.itemConv.ToEntity(model))
	}

	return inserted, nil
}

func (o *OrderRepo) loadItems(ctx context.Context, q querier, orderID int64) ([]domain.OrderLineItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_sale_price, total_price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := q.Query(ctx, query, orderID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	return o.scanItems(rows)
}

// attachItems подгружает позиции для страницы заказов одним запросом.
func (o *OrderRepo) attachItems(ctx context.Context, orders []domain.Order, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	query := `
		SELECT id, order_id, product_id, product_name, quantity, unit_sale_price, total_price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id
	`

	rows, err := o.pool.Query(ctx, query, ids)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	items, err := o.scanItems(rows)
	if err != nil {
		return err
	}

	byOrder := make(map[int64][]domain.OrderLineItem, len(orders))
	for _, item := range items {
		byOrder[item.OrderID] = append(byOrder[item.OrderID], item)
	}
	for i := range orders {
		orders[i].Items = byOrder[orders[i].ID]
	}

	return nil
}

func (o *OrderRepo) scanItems(rows pgx.Rows) ([]domain.OrderLineItem, error) {
	items := make([]domain.OrderLineItem, 0)
	for rows.Next() {
		var model converter.OrderItemModel
		if err := rows.Scan(
			&model.ID, &model.OrderID, &model.ProductID, &model.ProductName,
			&model.Quantity, &model.UnitSalePrice, &model.TotalPrice,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		items = append(items, *o.itemConv.ToEntity(&model))
	}
	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return items, nil
}

// buildOrderFilter собирает WHERE-часть листинга заказов.
func buildOrderFilter(filter usecase.OrderFilter) (string, []any) {
	conditions := make([]string, 0, 4)
	args := make([]any, 0, 4)

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		conditions = append(conditions, fmt.Sprintf("created_time >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		conditions = append(conditions, fmt.Sprintf("created_time <= $%d", len(args)))
	}
	if filter.CreatedByID != nil {
		args = append(args, *filter.CreatedByID)
		conditions = append(conditions, fmt.Sprintf("created_by_id = $%d", len(args)))
	}

	if len(conditions) == 0 {
		return "", args
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}
