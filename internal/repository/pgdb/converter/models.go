package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	SKU         string     `db:"sku"`
	Name        string     `db:"name"`
	ImportPrice int64      `db:"import_price"`
	SalePrice   int64      `db:"sale_price"`
	Stock       int64      `db:"stock"`
	CategoryID  int64      `db:"category_id"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// OrderModel представляет запись таблицы orders в PostgreSQL.
type OrderModel struct {
	ID             int64      `db:"id"`
	Status         string     `db:"status"`
	CreatedTime    time.Time  `db:"created_time"`
	UpdatedAt      *time.Time `db:"updated_at"`
	FinalPrice     int64      `db:"final_price"`
	DiscountAmount int64      `db:"discount_amount"`
	PromotionID    *int64     `db:"promotion_id"`
	CustomerID     *int64     `db:"customer_id"`
	CreatedByID    int64      `db:"created_by_id"`
}

// OrderItemModel представляет запись таблицы order_items в PostgreSQL.
type OrderItemModel struct {
	ID            int64  `db:"id"`
	OrderID       int64  `db:"order_id"`
	ProductID     int64  `db:"product_id"`
	ProductName   string `db:"product_name"`
	Quantity      int64  `db:"quantity"`
	UnitSalePrice int64  `db:"unit_sale_price"`
	TotalPrice    int64  `db:"total_price"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	OrderID     int64      `db:"order_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
