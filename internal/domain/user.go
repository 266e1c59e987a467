package domain

// Role — роль пользователя бэк-офиса.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleSale  Role = "SALE"
)

// KnownRole сообщает, является ли значение распознанной ролью.
func KnownRole(r Role) bool {
	return r == RoleAdmin || r == RoleSale
}

// Caller — идентичность вызывающего, прикреплённая identity-middleware.
type Caller struct {
	ID   int64
	Role Role
}

// CanTouchOrder решает, вправе ли вызывающий читать или менять заказ.
// SALE видит только собственные заказы, ADMIN — все.
func (c Caller) CanTouchOrder(ownerID int64) bool {
	return c.Role == RoleAdmin || c.ID == ownerID
}
