package usecase

import "context"

// TxManager задаёт границу атомарности операции сервисного слоя.
// Репозитории внутри fn достают транзакцию из контекста.
type TxManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PromotionService — внешний сервис промоакций: по коду и подытогу заказа
// возвращает размер скидки. CRUD промоакций живёт вне этого сервиса.
type PromotionService interface {
	Validate(ctx context.Context, code string, subtotal int64) (*PromotionGrant, error)
}

// PromotionGrant — результат проверки промокода.
type PromotionGrant struct {
	PromotionID int64
	Discount    int64 // в копейках
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

type WriteRawMessageReq struct {
	OrderID int64
	Payload []byte
}

func NewWriteRawMessageReq(orderID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		OrderID: orderID,
		Payload: payload,
	}
}
