package http

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTTPResponse(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"order not found", e.Wrap("op", e.ErrOrderNotFound), http.StatusNotFound, "order not found"},
		{"forbidden", e.Wrap("op", e.ErrForbidden), http.StatusForbidden, "access denied"},
		{"missing identity", e.ErrMissingIdentity, http.StatusForbidden, "caller identity is missing"},
		{"already paid", e.Wrap("op", e.ErrAlreadyPaid), http.StatusBadRequest, "paid order can not be modified"},
		{"no items", e.ErrNoItems, http.StatusBadRequest, "order must contain at least one item"},
		{"unknown error", fmt.Errorf("pool exhausted"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			code, msg := ToHTTPResponse(tc.err)
			assert.Equal(t, tc.wantCode, code)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}
}

// Деталь (имя товара, пара статусов) доезжает до клиента без
// технических префиксов внешних обёрток.
func TestToHTTPResponse_DetailMessages(t *testing.T) {
	outOfStock := e.Wrap("usecase.Create", fmt.Errorf("%w: %s", e.ErrOutOfStock, "ProductX"))
	code, msg := ToHTTPResponse(outOfStock)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "not enough stock: ProductX", msg)

	transition := e.Wrap("usecase.UpdateStatus", fmt.Errorf("%w: %s -> %s", e.ErrInvalidTransition, "PAID", "PENDING"))
	code, msg = ToHTTPResponse(transition)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "illegal status transition: PAID -> PENDING", msg)
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "599.99", formatCents(59999))
	assert.Equal(t, "0.05", formatCents(5))
	assert.Equal(t, "0.00", formatCents(0))
	assert.Equal(t, "-12.50", formatCents(-1250))
}

func TestParseIDParam(t *testing.T) {
	id, err := parseIDParam("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	for _, raw := range []string{"", "abc", "0", "-5"} {
		_, err := parseIDParam(raw)
		assert.ErrorIs(t, err, e.ErrInvalidID, "raw=%q", raw)
	}
}

func TestParseDateQuery(t *testing.T) {
	parsed, err := parseDateQuery("2026-03-05")
	require.NoError(t, err)
	require.NotNil(t, parsed)
	assert.Equal(t, time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC), *parsed)

	empty, err := parseDateQuery("  ")
	require.NoError(t, err)
	assert.Nil(t, empty)

	_, err = parseDateQuery("05.03.2026")
	assert.ErrorIs(t, err, e.ErrInvalidDateRange)
}

func TestEndOfDay(t *testing.T) {
	day := time.Date(2026, time.March, 5, 0, 0, 0, 0, time.UTC)
	end := endOfDay(day)

	assert.True(t, end.After(day.Add(23*time.Hour+59*time.Minute)))
	assert.True(t, end.Before(day.AddDate(0, 0, 1)))
}

func TestParseIntQuery(t *testing.T) {
	v, err := parseIntQuery("", 20)
	require.NoError(t, err)
	assert.Equal(t, 20, v)

	v, err = parseIntQuery("3", 20)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = parseIntQuery("three", 20)
	assert.ErrorIs(t, err, e.ErrInvalidID)
}

func TestParseOptionalInt64Query(t *testing.T) {
	v, err := parseOptionalInt64Query("7")
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, int64(7), *v)

	v, err = parseOptionalInt64Query("")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = parseOptionalInt64Query("-1")
	assert.ErrorIs(t, err, e.ErrInvalidID)
}
