package pgdb

import (
	"context"
	"errors"

	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// UserRepo — справочник сотрудников.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

func (r *UserRepo) GetRef(ctx context.Context, id int64) (*usecase.UserRef, error) {
	query := `SELECT id, name, role FROM users WHERE id = $1`

	var ref usecase.UserRef
	err := r.pool.QueryRow(ctx, query, id).Scan(&ref.ID, &ref.Name, &ref.Role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &ref, nil
}
