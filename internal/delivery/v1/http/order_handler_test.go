package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type stubOrderUC struct {
	usecase.OrderUC
	listFn func(ctx context.Context, req *usecase.ListOrdersReq) (*usecase.ListOrdersRes, error)
}

func (s *stubOrderUC) List(ctx context.Context, req *usecase.ListOrdersReq) (*usecase.ListOrdersRes, error) {
	return s.listFn(ctx, req)
}

func TestListOrders_DateParamNames(t *testing.T) {
	for _, tc := range []struct {
		name  string
		query string
	}{
		{"canonical names", "fromDate=2026-06-01&toDate=2026-06-02"},
		{"short names", "from=2026-06-01&to=2026-06-02"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got *usecase.ListOrdersReq
			uc := &stubOrderUC{listFn: func(ctx context.Context, req *usecase.ListOrdersReq) (*usecase.ListOrdersRes, error) {
				got = req
				return &usecase.ListOrdersRes{Page: req.Page, Size: req.Size}, nil
			}}
			h := NewOrderHandler(uc, nopLogger{})

			r := httptest.NewRequest("GET", "/api/v1/orders?"+tc.query, nil)
			ctx := context.WithValue(r.Context(), callerCtxKey, domain.Caller{ID: 1, Role: domain.RoleAdmin})
			w := httptest.NewRecorder()

			h.listOrders(w, r.WithContext(ctx))

			require.Equal(t, 200, w.Code)
			require.NotNil(t, got)
			require.NotNil(t, got.From)
			require.NotNil(t, got.To)
			assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), *got.From)
			assert.Equal(t, endOfDay(time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)), *got.To)
		})
	}
}
