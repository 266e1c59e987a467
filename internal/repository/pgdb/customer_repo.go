package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// CustomerRepo — справочник покупателей.
type CustomerRepo struct {
	pool *pgxpool.Pool
}

func NewCustomerRepo(pool *pgxpool.Pool) *CustomerRepo {
	return &CustomerRepo{pool: pool}
}

func (r *CustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	query := `SELECT id, name, phone FROM customers WHERE id = $1`

	var customer domain.Customer
	err := r.pool.QueryRow(ctx, query, id).Scan(&customer.ID, &customer.Name, &customer.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &customer, nil
}
