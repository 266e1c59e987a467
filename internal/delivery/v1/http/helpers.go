package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/shopspring/decimal"
)

type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewErrorResponse(code int, message string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
	}
}

func ToHTTPResponse(err error) (int, string) {
	switch {
	case errors.Is(err, e.ErrOrderNotFound):
		return http.StatusNotFound, e.ErrOrderNotFound.Error()
	case errors.Is(err, e.ErrProductNotFound):
		return http.StatusNotFound, sentinelMessage(err, e.ErrProductNotFound)
	case errors.Is(err, e.ErrForbidden):
		return http.StatusForbidden, e.ErrForbidden.Error()
	case errors.Is(err, e.ErrMissingIdentity):
		return http.StatusForbidden, e.ErrMissingIdentity.Error()
	case errors.Is(err, e.ErrOutOfStock):
		return http.StatusBadRequest, sentinelMessage(err, e.ErrOutOfStock)
	case errors.Is(err, e.ErrAlreadyPaid):
		return http.StatusBadRequest, e.ErrAlreadyPaid.Error()
	case errors.Is(err, e.ErrOrderCancelled):
		return http.StatusBadRequest, e.ErrOrderCancelled.Error()
	case errors.Is(err, e.ErrInvalidStatus):
		return http.StatusBadRequest, e.ErrInvalidStatus.Error()
	case errors.Is(err, e.ErrInvalidTransition):
		return http.StatusBadRequest, sentinelMessage(err, e.ErrInvalidTransition)
	case errors.Is(err, e.ErrNoItems):
		return http.StatusBadRequest, e.ErrNoItems.Error()
	case errors.Is(err, e.ErrQuantityMustBePositive):
		return http.StatusBadRequest, e.ErrQuantityMustBePositive.Error()
	case errors.Is(err, e.ErrInvalidDateRange):
		return http.StatusBadRequest, e.ErrInvalidDateRange.Error()
	case errors.Is(err, e.ErrInvalidGranularity):
		return http.StatusBadRequest, e.ErrInvalidGranularity.Error()
	case errors.Is(err, e.ErrInvalidID):
		return http.StatusBadRequest, e.ErrInvalidID.Error()
	case errors.Is(err, e.ErrInvalidRole):
		return http.StatusBadRequest, e.ErrInvalidRole.Error()
	case errors.Is(err, e.ErrInvalidPrice):
		return http.StatusBadRequest, e.ErrInvalidPrice.Error()
	default:
		return http.StatusInternalServerError, e.ErrInternalServerError.Error()
	}
}

// sentinelMessage достаёт самое внутреннее сообщение, ещё содержащее
// sentinel: оно несёт деталь (имя товара, пару статусов) без
// технических префиксов обёрток.
func sentinelMessage(err, sentinel error) string {
	cur := err
	for {
		next := errors.Unwrap(cur)
		if next == nil || next == sentinel || !errors.Is(next, sentinel) {
			break
		}
		cur = next
	}

	return cur.Error()
}

func WriteError(w http.ResponseWriter, err error) {
	code, msg := ToHTTPResponse(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(NewErrorResponse(code, msg))
}

func WriteSuccess(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// formatCents переводит сумму в копейках в строку вида "599.99".
func formatCents(cents int64) string {
	return decimal.NewFromInt(cents).Div(decimal.NewFromInt(100)).StringFixed(2)
}

// parseIDParam разбирает положительный числовой идентификатор из URL.
func parseIDParam(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, e.ErrInvalidID
	}

	return id, nil
}

// queryParam возвращает первое непустое значение среди имён параметра.
// Граница принимает и канонические, и короткие имена.
func queryParam(q url.Values, names ...string) string {
	for _, name := range names {
		if v := q.Get(name); v != "" {
			return v
		}
	}

	return ""
}

// parseDateQuery разбирает дату формата YYYY-MM-DD. Пустая строка — nil.
func parseDateQuery(raw string) (*time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, e.ErrInvalidDateRange
	}

	return &t, nil
}

// endOfDay сдвигает дату к последнему моменту суток, делая верхнюю
// границу диапазона включительной.
func endOfDay(t time.Time) time.Time {
	return t.Add(24*time.Hour - time.Nanosecond)
}

// parseIntQuery разбирает целочисленный query-параметр, возвращая def для пустого.
func parseIntQuery(raw string, def int) (int, error) {
	if strings.TrimSpace(raw) == "" {
		return def, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.ErrInvalidID
	}

	return v, nil
}

// parseOptionalInt64Query разбирает необязательный числовой query-параметр.
func parseOptionalInt64Query(raw string) (*int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, e.ErrInvalidID
	}

	return &v, nil
}
