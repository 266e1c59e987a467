package usecase

import (
	"context"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
)

// ProductRepository — остатки и цены товаров.
// GetForUpdate блокирует строку товара до конца текущей транзакции.
type ProductRepository interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Product, error)
	AdjustStock(ctx context.Context, id int64, delta int64) (int64, error)
}

type OrderRepository interface {
	Insert(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id int64) (*domain.Order, error)
	GetForUpdate(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error)
	UpdateHeader(ctx context.Context, order *domain.Order) error
	ReplaceItems(ctx context.Context, orderID int64, items []domain.OrderLineItem) error
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
	Delete(ctx context.Context, orderID int64) error
}

type CustomerRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
}

type UserRepository interface {
	GetRef(ctx context.Context, id int64) (*UserRef, error)
}

// ReportRepository — read-only выборки по оплаченным заказам.
type ReportRepository interface {
	OrderRevenue(ctx context.Context, from, to time.Time) ([]RevenueRow, error)
	LineRevenue(ctx context.Context, from, to time.Time, categoryID int64) ([]RevenueRow, error)
	CostSum(ctx context.Context, from, to time.Time, categoryID *int64) (int64, error)
	ProductSales(ctx context.Context, from, to time.Time, categoryID *int64) ([]ProductSaleRow, error)
	SalesKPI(ctx context.Context, from, to time.Time) ([]KPIRow, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
}

type ReportCacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
}

// OrderFilter — фильтр листинга заказов.
// CreatedByID подставляется политикой доступа для роли SALE,
// чтобы пагинация считала итог по видимым заказам.
type OrderFilter struct {
	Status      *domain.OrderStatus
	From        *time.Time
	To          *time.Time
	CreatedByID *int64
	Page        int
	Size        int
}

// RevenueRow — дата и сумма выручки одной строки выборки.
type RevenueRow struct {
	Date   time.Time
	Amount int64
}

// ProductSaleRow — продажа товара внутри оплаченного заказа.
type ProductSaleRow struct {
	ProductID   int64
	ProductName string
	Quantity    int64
	OrderDate   time.Time
}

// KPIRow — агрегат по продавцу.
type KPIRow struct {
	UserID     int64
	UserName   string
	OrderCount int64
	Revenue    int64
}

// UserRef — справочная ссылка на пользователя.
type UserRef struct {
	ID   int64
	Name string
	Role domain.Role
}
