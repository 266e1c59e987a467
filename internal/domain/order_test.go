package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownStatus(t *testing.T) {
	assert.True(t, KnownStatus(StatusDraft))
	assert.True(t, KnownStatus(StatusPending))
	assert.True(t, KnownStatus(StatusPaid))
	assert.True(t, KnownStatus(StatusCancelled))

	assert.False(t, KnownStatus(OrderStatus("SHIPPED")))
	assert.False(t, KnownStatus(OrderStatus("paid")))
	assert.False(t, KnownStatus(OrderStatus("")))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		name    string
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{"draft to pending", StatusDraft, StatusPending, true},
		{"pending to paid", StatusPending, StatusPaid, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"draft to paid skips pending", StatusDraft, StatusPaid, false},
		{"paid is terminal", StatusPaid, StatusPending, false},
		{"paid to cancelled", StatusPaid, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"pending to draft", StatusPending, StatusDraft, false},
		{"no self loop", StatusPending, StatusPending, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.allowed, CanTransition(tc.from, tc.to))
		})
	}
}

func TestOrderItemsTotal(t *testing.T) {
	order := Order{
		Items: []OrderLineItem{
			NewOrderLineItem(1, "A", 2, 100),
			NewOrderLineItem(2, "B", 3, 250),
		},
	}

	assert.Equal(t, int64(2*100+3*250), order.ItemsTotal())
}

func TestNewOrderLineItem(t *testing.T) {
	item := NewOrderLineItem(7, "Widget", 4, 199)

	assert.Equal(t, int64(7), item.ProductID)
	assert.Equal(t, "Widget", item.ProductName)
	assert.Equal(t, int64(4), item.Quantity)
	assert.Equal(t, int64(199), item.UnitSalePrice)
	assert.Equal(t, int64(796), item.TotalPrice)
}

func TestCallerCanTouchOrder(t *testing.T) {
	admin := Caller{ID: 1, Role: RoleAdmin}
	sale := Caller{ID: 2, Role: RoleSale}

	assert.True(t, admin.CanTouchOrder(99))
	assert.True(t, sale.CanTouchOrder(2))
	assert.False(t, sale.CanTouchOrder(3))
}
