package usecase

import (
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
)

// ORDER USECASE

// OrderItemReq — запрошенная позиция заказа.
type OrderItemReq struct {
	ProductID int64
	Quantity  int64
}

// CreateOrderReq — запрос на создание заказа.
type CreateOrderReq struct {
	CustomerID *int64
	PromoCode  string
	Items      []OrderItemReq
	Caller     domain.Caller
}

// UpdateOrderReq — запрос на изменение заказа.
// Items == nil означает «позиции не трогать».
type UpdateOrderReq struct {
	OrderID    int64
	CustomerID *int64
	Items      []OrderItemReq
	Caller     domain.Caller
}

type UpdateStatusReq struct {
	OrderID int64
	Status  string
	Caller  domain.Caller
}

type DeleteOrderReq struct {
	OrderID int64
	Caller  domain.Caller
}

type GetOrderReq struct {
	OrderID int64
	Caller  domain.Caller
}

type ListOrdersReq struct {
	Page   int
	Size   int
	Status string
	From   *time.Time
	To     *time.Time
	Caller domain.Caller
}

type ListOrdersRes struct {
	Orders []domain.Order
	Total  int64
	Page   int
	Size   int
}

// OrderDetails — заказ с подтянутыми справочными ссылками.
type OrderDetails struct {
	Order     domain.Order
	Customer  *domain.Customer
	CreatedBy *UserRef
}

// REPORT USECASE

type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// KnownGranularity сообщает, является ли значение распознанной гранулярностью.
func KnownGranularity(g Granularity) bool {
	return g == GranularityDay || g == GranularityMonth || g == GranularityYear
}

type RevenueReportReq struct {
	From        time.Time
	To          time.Time
	Granularity Granularity
	CategoryID  *int64
}

type RevenueBucket struct {
	Label   string
	Revenue int64
}

type RevenueReportRes struct {
	Buckets []RevenueBucket
	Total   int64
}

type ProfitReportReq struct {
	From       time.Time
	To         time.Time
	CategoryID *int64
}

type ProfitReportRes struct {
	Revenue int64
	Cost    int64
	Profit  int64
	Margin  float64 // профит в процентах от выручки, 0 при нулевой выручке
}

type TimeSeriesReq struct {
	From       time.Time
	To         time.Time
	CategoryID *int64
}

type TopProduct struct {
	ProductID     int64
	Name          string
	TotalQuantity int64
}

// TimeSeriesRes — топ-5 товаров и их продажи по корзинам дат.
// Series выровнен с Products и Labels: Series[i][j] — количество
// i-го товара в j-й корзине.
type TimeSeriesRes struct {
	Products []TopProduct
	Labels   []string
	Series   [][]int64
}

type KPIReq struct {
	Year  int
	Month *int
}

type SalespersonKPI struct {
	UserID     int64
	UserName   string
	OrderCount int64
	Revenue    int64
	Commission int64
}

type KPIRes struct {
	Rows []SalespersonKPI
}

// MAPPERS

func NewCreateOrderReq(customerID *int64, promoCode string, items []OrderItemReq, caller domain.Caller) *CreateOrderReq {
	return &CreateOrderReq{
		CustomerID: customerID,
		PromoCode:  promoCode,
		Items:      items,
		Caller:     caller,
	}
}

func NewUpdateOrderReq(orderID int64, customerID *int64, items []OrderItemReq, caller domain.Caller) *UpdateOrderReq {
	return &UpdateOrderReq{
		OrderID:    orderID,
		CustomerID: customerID,
		Items:      items,
		Caller:     caller,
	}
}

func NewListOrdersRes(orders []domain.Order, total int64, page, size int) *ListOrdersRes {
	return &ListOrdersRes{
		Orders: orders,
		Total:  total,
		Page:   page,
		Size:   size,
	}
}
