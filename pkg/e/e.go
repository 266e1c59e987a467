package e

import "fmt"

var (
	// Внутренние ошибки с транзакциями
	ErrTransactionNotFound = fmt.Errorf("transaction not found")

	// Общие ошибки слоя хранения; сервисный слой переводит их в доменные
	ErrNotFound             = fmt.Errorf("record not found")
	ErrDuplicate            = fmt.Errorf("record already exists")
	ErrStockConstraint      = fmt.Errorf("stock constraint violated")
	ErrIncorrectEnvVariable = fmt.Errorf("incorrect environment variable")

	// 404 Not Found
	ErrOrderNotFound   = fmt.Errorf("order not found")
	ErrProductNotFound = fmt.Errorf("product not found")

	// 403 Forbidden
	ErrForbidden       = fmt.Errorf("access denied")
	ErrMissingIdentity = fmt.Errorf("caller identity is missing")

	// 400 Bad Request
	ErrOutOfStock             = fmt.Errorf("not enough stock")
	ErrAlreadyPaid            = fmt.Errorf("paid order can not be modified")
	ErrOrderCancelled         = fmt.Errorf("cancelled order can not be modified")
	ErrInvalidStatus          = fmt.Errorf("unknown order status")
	ErrInvalidTransition      = fmt.Errorf("illegal status transition")
	ErrNoItems                = fmt.Errorf("order must contain at least one item")
	ErrQuantityMustBePositive = fmt.Errorf("quantity must be positive")
	ErrInvalidDateRange       = fmt.Errorf("invalid date range")
	ErrInvalidGranularity     = fmt.Errorf("granularity must be day, month or year")
	ErrInvalidID              = fmt.Errorf("invalid identifier")
	ErrInvalidPrice           = fmt.Errorf("invalid price")
	ErrInvalidRole            = fmt.Errorf("unknown role")

	// 500 Internal Server Error
	ErrInternalServerError = fmt.Errorf("internal server error")
)

// Wrap оборачивает ошибку
func Wrap(msg string, err error) error {
	return fmt.Errorf("%s: %w", msg, err)
}
