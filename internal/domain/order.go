package domain

import "time"

// OrderStatus — статус заказа.
type OrderStatus string

const (
	StatusDraft     OrderStatus = "DRAFT"
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

// KnownStatus сообщает, является ли значение распознанным статусом.
func KnownStatus(s OrderStatus) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

// PAID и CANCELLED — терминальные состояния: из них переходов нет.
var validNext = map[OrderStatus]map[OrderStatus]bool{
	StatusDraft:     {StatusPending: true},
	StatusPending:   {StatusPaid: true, StatusCancelled: true},
	StatusPaid:      {},
	StatusCancelled: {},
}

// CanTransition проверяет допустимость перехода между статусами.
func CanTransition(from, to OrderStatus) bool {
	return validNext[from][to]
}

// Order описывает заказ и его позиции.
// Инвариант после каждой успешной мутации:
// FinalPrice == Σ Items.TotalPrice − DiscountAmount.
type Order struct {
	ID             int64
	Status         OrderStatus
	CreatedTime    time.Time
	UpdatedAt      *time.Time
	FinalPrice     int64 // в копейках
	DiscountAmount int64 // в копейках
	PromotionID    *int64
	CustomerID     *int64
	CreatedByID    int64
	Items          []OrderLineItem
}

// OrderLineItem — одна позиция заказа.
// UnitSalePrice фиксируется в момент записи и далее не меняется.
type OrderLineItem struct {
	ID            int64
	OrderID       int64
	ProductID     int64
	ProductName   string
	Quantity      int64
	UnitSalePrice int64 // в копейках
	TotalPrice    int64 // Quantity × UnitSalePrice, в копейках
}

// ItemsTotal возвращает сумму позиций заказа.
func (o *Order) ItemsTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.TotalPrice
	}
	return total
}

func NewOrderLineItem(productID int64, productName string, quantity, unitSalePrice int64) OrderLineItem {
	return OrderLineItem{
		ProductID:     productID,
		ProductName:   productName,
		Quantity:      quantity,
		UnitSalePrice: unitSalePrice,
		TotalPrice:    quantity * unitSalePrice,
	}
}
