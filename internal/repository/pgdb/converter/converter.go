//go:generate goverter gen github.com/DRSN-tech/retail-backoffice/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
}

// OrderConverter преобразует сущности Order между domain и моделью PostgreSQL.
// Позиции заказа конвертируются отдельно через OrderItemConverter.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOrderStatus
// goverter:ignore Items
type OrderConverter interface {
	ToModel(entity *domain.Order) *OrderModel
	ToEntity(model *OrderModel) *domain.Order
}

// OrderItemConverter преобразует позиции заказа между domain и моделью PostgreSQL.
// goverter:converter
type OrderItemConverter interface {
	ToModel(entity *domain.OrderLineItem) *OrderItemModel
	ToEntity(model *OrderItemModel) *domain.OrderLineItem
	ToArrEntity(models []*OrderItemModel) []*domain.OrderLineItem
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOrderStatus(s domain.OrderStatus) string {
	return string(s)
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}
