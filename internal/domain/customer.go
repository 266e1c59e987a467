package domain

// Customer — справочная ссылка на покупателя; CRUD живёт в другом сервисе.
type Customer struct {
	ID    int64
	Name  string
	Phone string
}
