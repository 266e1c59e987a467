package usecase

import (
	"context"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
)

type OrderUC interface {
	Create(ctx context.Context, req *CreateOrderReq) (*domain.Order, error)
	Update(ctx context.Context, req *UpdateOrderReq) (*domain.Order, error)
	UpdateStatus(ctx context.Context, req *UpdateStatusReq) error
	Delete(ctx context.Context, req *DeleteOrderReq) error
	GetByID(ctx context.Context, req *GetOrderReq) (*OrderDetails, error)
	List(ctx context.Context, req *ListOrdersReq) (*ListOrdersRes, error)
}

type ReportUC interface {
	Revenue(ctx context.Context, req *RevenueReportReq) (*RevenueReportRes, error)
	Profit(ctx context.Context, req *ProfitReportReq) (*ProfitReportRes, error)
	TopProductsTimeSeries(ctx context.Context, req *TimeSeriesReq) (*TimeSeriesRes, error)
	SalesKPI(ctx context.Context, req *KPIReq) (*KPIRes, error)
}
