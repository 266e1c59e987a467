package http

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
)

type stubReportUC struct {
	usecase.ReportUC
	revenueFn func(ctx context.Context, req *usecase.RevenueReportReq) (*usecase.RevenueReportRes, error)
}

func (s *stubReportUC) Revenue(ctx context.Context, req *usecase.RevenueReportReq) (*usecase.RevenueReportRes, error) {
	return s.revenueFn(ctx, req)
}

func TestRevenue_RangeParamNames(t *testing.T) {
	for _, tc := range []struct {
		name  string
		query string
	}{
		{"canonical names", "startDate=2026-06-01&endDate=2026-06-30&type=month&categoryId=7"},
		{"short names", "from=2026-06-01&to=2026-06-30&granularity=month&category_id=7"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			var got *usecase.RevenueReportReq
			uc := &stubReportUC{revenueFn: func(ctx context.Context, req *usecase.RevenueReportReq) (*usecase.RevenueReportRes, error) {
				got = req
				return &usecase.RevenueReportRes{}, nil
			}}
			h := NewReportHandler(uc, nopLogger{})

			r := httptest.NewRequest("GET", "/api/v1/reports/revenue?"+tc.query, nil)
			w := httptest.NewRecorder()

			h.revenue(w, r)

			require.Equal(t, 200, w.Code)
			require.NotNil(t, got)
			assert.Equal(t, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), got.From)
			assert.Equal(t, endOfDay(time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)), got.To)
			assert.Equal(t, usecase.GranularityMonth, got.Granularity)
			require.NotNil(t, got.CategoryID)
			assert.Equal(t, int64(7), *got.CategoryID)
		})
	}
}
