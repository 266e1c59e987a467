package pgdb

import (
	"context"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// ReportRepo — read-only выборки по оплаченным заказам.
// Все запросы идут по пулу: отчёты не участвуют в транзакциях заказов.
type ReportRepo struct {
	pool *pgxpool.Pool
}

func NewReportRepo(pool *pgxpool.Pool) *ReportRepo {
	return &ReportRepo{pool: pool}
}

// OrderRevenue — finalPrice оплаченных заказов за период.
func (r *ReportRepo) OrderRevenue(ctx context.Context, from, to time.Time) ([]usecase.RevenueRow, error) {
	query := `
		SELECT created_time, final_price
		FROM orders
		WHERE status = 'PAID' AND created_time >= $1 AND created_time <= $2
		ORDER BY created_time
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.RevenueRow, 0)
	for rows.Next() {
		var row usecase.RevenueRow
		if err := rows.Scan(&row.Date, &row.Amount); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// LineRevenue — totalPrice позиций оплаченных заказов по товарам категории.
func (r *ReportRepo) LineRevenue(ctx context.Context, from, to time.Time, categoryID int64) ([]usecase.RevenueRow, error) {
	query := `
		SELECT o.created_time, oi.total_price
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status = 'PAID'
		  AND o.created_time >= $1 AND o.created_time <= $2
		  AND p.category_id = $3
		ORDER BY o.created_time
	`

	rows, err := r.pool.Query(ctx, query, from, to, categoryID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.RevenueRow, 0)
	for rows.Next() {
		var row usecase.RevenueRow
		if err := rows.Scan(&row.Date, &row.Amount); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// CostSum — себестоимость: Σ quantity × importPrice по подходящим позициям.
func (r *ReportRepo) CostSum(ctx context.Context, from, to time.Time, categoryID *int64) (int64, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity * p.import_price), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status = 'PAID'
		  AND o.created_time >= $1 AND o.created_time <= $2
		  AND ($3::bigint IS NULL OR p.category_id = $3)
	`

	var cost int64
	if err := r.pool.QueryRow(ctx, query, from, to, categoryID).Scan(&cost); err != nil {
		return 0, e.Wrap(whereami.WhereAmI(), err)
	}

	return cost, nil
}

// ProductSales — продажи товаров внутри оплаченных заказов за период.
func (r *ReportRepo) ProductSales(ctx context.Context, from, to time.Time, categoryID *int64) ([]usecase.ProductSaleRow, error) {
	query := `
		SELECT oi.product_id, oi.product_name, oi.quantity, o.created_time
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status = 'PAID'
		  AND o.created_time >= $1 AND o.created_time <= $2
		  AND ($3::bigint IS NULL OR p.category_id = $3)
		ORDER BY o.created_time
	`

	rows, err := r.pool.Query(ctx, query, from, to, categoryID)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.ProductSaleRow, 0)
	for rows.Next() {
		var row usecase.ProductSaleRow
		if err := rows.Scan(&row.ProductID, &row.ProductName, &row.Quantity, &row.OrderDate); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}

// SalesKPI — агрегаты по продавцам за период [from, to).
func (r *ReportRepo) SalesKPI(ctx context.Context, from, to time.Time) ([]usecase.KPIRow, error) {
	query := `
		SELECT o.created_by_id, COALESCE(u.name, ''), COUNT(*), COALESCE(SUM(o.final_price), 0)
		FROM orders o
		LEFT JOIN users u ON u.id = o.created_by_id
		WHERE o.status = 'PAID' AND o.created_time >= $1 AND o.created_time < $2
		GROUP BY o.created_by_id, u.name
		ORDER BY SUM(o.final_price) DESC
	`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	result := make([]usecase.KPIRow, 0)
	for rows.Next() {
		var row usecase.KPIRow
		if err := rows.Scan(&row.UserID, &row.UserName, &row.OrderCount, &row.Revenue); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		result = append(result, row)
	}

	return result, rows.Err()
}
