package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/google/uuid"
)

type OutboxStatus string

const (
	Pending    OutboxStatus = "PENDING"
	Processing OutboxStatus = "PROCESSING"
	Processed  OutboxStatus = "PROCESSED"
)

type OutboxEventType string

const (
	OrderCreated       OutboxEventType = "order.created"
	OrderUpdated       OutboxEventType = "order.updated"
	OrderStatusChanged OutboxEventType = "order.status_changed"
	OrderDeleted       OutboxEventType = "order.deleted"
)

// OutboxEvent — событие изменения заказа, записываемое в той же транзакции,
// что и само изменение, и публикуемое воркером в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     string
	EventType   OutboxEventType
	OrderID     int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// OrderEventPayload — JSON-тело события для консьюмеров.
type OrderEventPayload struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OrderID    int64     `json:"order_id"`
	Status     string    `json:"status"`
	FinalPrice int64     `json:"final_price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewOrderOutboxEvent собирает событие по текущему состоянию заказа.
func NewOrderOutboxEvent(eventType OutboxEventType, order *domain.Order) (*OutboxEvent, error) {
	eventID := uuid.NewString()

	payload, err := json.Marshal(OrderEventPayload{
		EventID:    eventID,
		EventType:  string(eventType),
		OrderID:    order.ID,
		Status:     string(order.Status),
		FinalPrice: order.FinalPrice,
		OccurredAt: time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		OrderID:   order.ID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now().UTC(),
	}, nil
}
