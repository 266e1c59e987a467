package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

// fakeStore имитирует базу: одна структура держит товары, заказы и outbox,
// чтобы fakeTxManager мог откатывать их все разом.
type fakeStore struct {
	products    map[int64]*domain.Product
	orders      map[int64]*domain.Order
	outbox      []*OutboxEvent
	nextOrderID int64
}

func newFakeStore(products ...*domain.Product) *fakeStore {
	s := &fakeStore{
		products:    make(map[int64]*domain.Product),
		orders:      make(map[int64]*domain.Order),
		nextOrderID: 1,
	}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

type storeSnapshot struct {
	products    map[int64]*domain.Product
	orders      map[int64]*domain.Order
	outboxLen   int
	nextOrderID int64
}

func (s *fakeStore) snapshot() storeSnapshot {
	snap := storeSnapshot{
		products:    make(map[int64]*domain.Product, len(s.products)),
		orders:      make(map[int64]*domain.Order, len(s.orders)),
		outboxLen:   len(s.outbox),
		nextOrderID: s.nextOrderID,
	}
	for id, p := range s.products {
		cp := *p
		snap.products[id] = &cp
	}
	for id, o := range s.orders {
		snap.orders[id] = copyOrder(o)
	}
	return snap
}

func (s *fakeStore) restore(snap storeSnapshot) {
	s.products = snap.products
	s.orders = snap.orders
	s.outbox = s.outbox[:snap.outboxLen]
	s.nextOrderID = snap.nextOrderID
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = make([]domain.OrderLineItem, len(o.Items))
	copy(cp.Items, o.Items)
	return &cp
}

// fakeTxManager эмулирует атомарность транзакции снимком состояния.
type fakeTxManager struct {
	store *fakeStore
	inTx  bool
}

func (m *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snap := m.store.snapshot()
	m.inTx = true
	err := fn(ctx)
	m.inTx = false
	if err != nil {
		m.store.restore(snap)
		return err
	}
	return nil
}

type fakeProductRepo struct {
	store *fakeStore
}

func (r *fakeProductRepo) Get(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := r.store.products[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) AdjustStock(ctx context.Context, id int64, delta int64) (int64, error) {
	p, ok := r.store.products[id]
	if !ok {
		return 0, e.ErrNotFound
	}
	if p.Stock+delta < 0 {
		return 0, e.ErrStockConstraint
	}
	p.Stock += delta
	return p.Stock, nil
}

type fakeOrderRepo struct {
	store *fakeStore
}

func (r *fakeOrderRepo) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	cp := copyOrder(order)
	cp.ID = r.store.nextOrderID
	r.store.nextOrderID++
	cp.CreatedTime = time.Now().UTC()
	for i := range cp.Items {
		cp.Items[i].OrderID = cp.ID
	}
	r.store.orders[cp.ID] = cp
	return copyOrder(cp), nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	o, ok := r.store.orders[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return copyOrder(o), nil
}

func (r *fakeOrderRepo) GetForUpdate(ctx context.Context, id int64) (*domain.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeOrderRepo) List(ctx context.Context, filter OrderFilter) ([]domain.Order, int64, error) {
	matched := make([]domain.Order, 0)
	for _, o := range r.store.orders {
		if filter.Status != nil && o.Status != *filter.Status {
			continue
		}
		if filter.CreatedByID != nil && o.CreatedByID != *filter.CreatedByID {
			continue
		}
		if filter.From != nil && o.CreatedTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && o.CreatedTime.After(*filter.To) {
			continue
		}
		matched = append(matched, *copyOrder(o))
	}

	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	offset := (filter.Page - 1) * filter.Size
	if offset >= len(matched) {
		return []domain.Order{}, total, nil
	}
	end := offset + filter.Size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeOrderRepo) UpdateHeader(ctx context.Context, order *domain.Order) error {
	stored, ok := r.store.orders[order.ID]
	if !ok {
		return e.ErrNotFound
	}
	stored.CustomerID = order.CustomerID
	stored.FinalPrice = order.FinalPrice
	stored.DiscountAmount = order.DiscountAmount
	stored.PromotionID = order.PromotionID
	return nil
}

func (r *fakeOrderRepo) ReplaceItems(ctx context.Context, orderID int64, items []domain.OrderLineItem) error {
	stored, ok := r.store.orders[orderID]
	if !ok {
		return e.ErrNotFound
	}
	stored.Items = make([]domain.OrderLineItem, len(items))
	copy(stored.Items, items)
	for i := range stored.Items {
		stored.Items[i].OrderID = orderID
	}
	return nil
}

func (r *fakeOrderRepo) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	stored, ok := r.store.orders[orderID]
	if !ok {
		return e.ErrNotFound
	}
	stored.Status = status
	return nil
}

func (r *fakeOrderRepo) Delete(ctx context.Context, orderID int64) error {
	if _, ok := r.store.orders[orderID]; !ok {
		return e.ErrNotFound
	}
	delete(r.store.orders, orderID)
	return nil
}

type fakeCustomerRepo struct {
	customers map[int64]*domain.Customer
}

func (r *fakeCustomerRepo) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return c, nil
}

type fakeUserRepo struct {
	users map[int64]*UserRef
}

func (r *fakeUserRepo) GetRef(ctx context.Context, id int64) (*UserRef, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, e.ErrNotFound
	}
	return u, nil
}

type fakeOutboxRepo struct {
	store *fakeStore
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error) {
	event.ID = int64(len(r.store.outbox) + 1)
	r.store.outbox = append(r.store.outbox, event)
	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error) {
	return nil, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	return nil
}

type fakePromo struct {
	fn func(code string, subtotal int64) (*PromotionGrant, error)
}

func (p *fakePromo) Validate(ctx context.Context, code string, subtotal int64) (*PromotionGrant, error) {
	if p.fn == nil {
		return nil, fmt.Errorf("unexpected promotion call: %s", code)
	}
	return p.fn(code, subtotal)
}

type fixture struct {
	store     *fakeStore
	promo     *fakePromo
	customers *fakeCustomerRepo
	users     *fakeUserRepo
	tx        *fakeTxManager
	uc        *OrderUseCase
}

func newFixture(products ...*domain.Product) *fixture {
	store := newFakeStore(products...)
	promo := &fakePromo{}
	customers := &fakeCustomerRepo{customers: make(map[int64]*domain.Customer)}
	users := &fakeUserRepo{users: make(map[int64]*UserRef)}
	tx := &fakeTxManager{store: store}

	uc := NewOrderUC(
		&fakeOrderRepo{store: store},
		&fakeProductRepo{store: store},
		customers,
		users,
		&fakeOutboxRepo{store: store},
		promo,
		tx,
		nopLogger{},
	)

	return &fixture{store: store, promo: promo, customers: customers, users: users, tx: tx, uc: uc}
}

func product(id int64, name string, salePrice, stock int64) *domain.Product {
	return &domain.Product{
		ID:          id,
		SKU:         fmt.Sprintf("SKU-%d", id),
		Name:        name,
		ImportPrice: salePrice / 2,
		SalePrice:   salePrice,
		Stock:       stock,
		CategoryID:  1,
	}
}

var (
	saleCaller  = domain.Caller{ID: 1, Role: domain.RoleSale}
	otherSale   = domain.Caller{ID: 2, Role: domain.RoleSale}
	adminCaller = domain.Caller{ID: 9, Role: domain.RoleAdmin}
)

func TestOrderLifecycle_CreateUpdateDelete(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, domain.StatusPending, created.Status)
	assert.Equal(t, int64(200), created.FinalPrice)
	assert.Equal(t, int64(8), f.store.products[1].Stock)
	require.Len(t, created.Items, 1)
	assert.Equal(t, int64(100), created.Items[0].UnitSalePrice)

	updated, err := f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 5}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, int64(500), updated.FinalPrice)
	assert.Equal(t, int64(5), f.store.products[1].Stock)

	require.NoError(t, f.uc.Delete(ctx, &DeleteOrderReq{OrderID: created.ID, Caller: saleCaller}))
	assert.Equal(t, int64(10), f.store.products[1].Stock)
	assert.Empty(t, f.store.orders)

	require.Len(t, f.store.outbox, 3)
	assert.Equal(t, OrderCreated, f.store.outbox[0].EventType)
	assert.Equal(t, OrderUpdated, f.store.outbox[1].EventType)
	assert.Equal(t, OrderDeleted, f.store.outbox[2].EventType)
}

func TestCreateOrder_ExactStockBoundary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 5))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 5}}, saleCaller))
	require.NoError(t, err)
	assert.Equal(t, int64(0), f.store.products[1].Stock)
	assert.Equal(t, int64(500), created.FinalPrice)

	_, err = f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 1}}, saleCaller))
	require.ErrorIs(t, err, e.ErrOutOfStock)
	assert.Contains(t, err.Error(), "ProductX")
	assert.Equal(t, int64(0), f.store.products[1].Stock)
}

func TestCreateOrder_StockPlusOneFails(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 5))

	_, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 6}}, saleCaller))
	require.ErrorIs(t, err, e.ErrOutOfStock)

	assert.Equal(t, int64(5), f.store.products[1].Stock)
	assert.Empty(t, f.store.orders)
	assert.Empty(t, f.store.outbox)
}

func TestCreateOrder_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 5))

	_, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", nil, saleCaller))
	assert.ErrorIs(t, err, e.ErrNoItems)

	_, err = f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 0}}, saleCaller))
	assert.ErrorIs(t, err, e.ErrQuantityMustBePositive)

	_, err = f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 77, Quantity: 1}}, saleCaller))
	assert.ErrorIs(t, err, e.ErrProductNotFound)
}

func TestCreateOrder_PromoDiscount(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))
	f.promo.fn = func(code string, subtotal int64) (*PromotionGrant, error) {
		assert.Equal(t, "SPRING", code)
		assert.Equal(t, int64(300), subtotal)
		return &PromotionGrant{PromotionID: 42, Discount: 50}, nil
	}

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "SPRING", []OrderItemReq{{ProductID: 1, Quantity: 3}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, int64(250), created.FinalPrice)
	assert.Equal(t, int64(50), created.DiscountAmount)
	require.NotNil(t, created.PromotionID)
	assert.Equal(t, int64(42), *created.PromotionID)
}

func TestCreateOrder_PromoFailureLeavesStockUntouched(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))
	f.promo.fn = func(code string, subtotal int64) (*PromotionGrant, error) {
		return nil, errors.New("promotion code rejected")
	}

	_, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "BAD", []OrderItemReq{{ProductID: 1, Quantity: 3}}, saleCaller))
	require.Error(t, err)

	assert.Equal(t, int64(10), f.store.products[1].Stock)
	assert.Empty(t, f.store.orders)
}

func TestCreateOrder_PromoValidatedOutsideTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))
	f.promo.fn = func(code string, subtotal int64) (*PromotionGrant, error) {
		// Внешний вызов не должен выполняться под блокировками строк.
		assert.False(t, f.tx.inTx)
		return &PromotionGrant{PromotionID: 42, Discount: 50}, nil
	}

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "SPRING", []OrderItemReq{{ProductID: 1, Quantity: 3}}, saleCaller))
	require.NoError(t, err)
	assert.Equal(t, int64(250), created.FinalPrice)
}

func TestCreateOrder_OversizedDiscountClampedToSubtotal(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))
	f.promo.fn = func(code string, subtotal int64) (*PromotionGrant, error) {
		return &PromotionGrant{PromotionID: 42, Discount: 100_000}, nil
	}

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "MEGA", []OrderItemReq{{ProductID: 1, Quantity: 3}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, int64(0), created.FinalPrice)
	assert.Equal(t, int64(300), created.DiscountAmount)
}

func TestUpdateOrder_NoopIsIdempotent(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 4}}, saleCaller))
	require.NoError(t, err)
	require.Equal(t, int64(6), f.store.products[1].Stock)

	updated, err := f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 4}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, int64(6), f.store.products[1].Stock)
	assert.Equal(t, int64(400), updated.FinalPrice)
}

func TestUpdateOrder_AtomicRollbackOnPartialFailure(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "First", 100, 10), product(2, "Second", 200, 1))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{
		{ProductID: 1, Quantity: 1},
		{ProductID: 2, Quantity: 1},
	}, saleCaller))
	require.NoError(t, err)
	require.Equal(t, int64(9), f.store.products[1].Stock)
	require.Equal(t, int64(0), f.store.products[2].Stock)

	// Первая дельта прошла бы, вторая переспрашивает больше остатка.
	_, err = f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{
		{ProductID: 1, Quantity: 5},
		{ProductID: 2, Quantity: 3},
	}, saleCaller))
	require.ErrorIs(t, err, e.ErrOutOfStock)
	assert.Contains(t, err.Error(), "Second")

	assert.Equal(t, int64(9), f.store.products[1].Stock)
	assert.Equal(t, int64(0), f.store.products[2].Stock)

	stored := f.store.orders[created.ID]
	require.Len(t, stored.Items, 2)
	assert.Equal(t, int64(1), stored.Items[0].Quantity)
	assert.Equal(t, int64(1), stored.Items[1].Quantity)
}

func TestUpdateOrder_RefreshesUnitPrice(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)
	require.Equal(t, int64(200), created.FinalPrice)

	f.store.products[1].SalePrice = 150

	updated, err := f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, int64(300), updated.FinalPrice)
	assert.Equal(t, int64(150), updated.Items[0].UnitSalePrice)
	assert.Equal(t, int64(8), f.store.products[1].Stock)
}

func TestUpdateOrder_AccessAndStateChecks(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 3}}, otherSale))
	assert.ErrorIs(t, err, e.ErrForbidden)
	assert.Equal(t, int64(8), f.store.products[1].Stock)

	_, err = f.uc.Update(ctx, NewUpdateOrderReq(999, nil, nil, saleCaller))
	assert.ErrorIs(t, err, e.ErrOrderNotFound)

	f.store.orders[created.ID].Status = domain.StatusPaid
	_, err = f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 3}}, saleCaller))
	assert.ErrorIs(t, err, e.ErrAlreadyPaid)
}

func TestUpdateOrder_CancelledOrderIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)
	require.Equal(t, int64(8), f.store.products[1].Stock)

	require.NoError(t, f.uc.UpdateStatus(ctx, &UpdateStatusReq{OrderID: created.ID, Status: "CANCELLED", Caller: saleCaller}))

	_, err = f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 5}}, saleCaller))
	require.ErrorIs(t, err, e.ErrOrderCancelled)

	assert.Equal(t, int64(8), f.store.products[1].Stock)
	assert.Equal(t, int64(2), f.store.orders[created.ID].Items[0].Quantity)
}

func TestUpdateOrder_RetainedDiscountClamped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))
	f.promo.fn = func(code string, subtotal int64) (*PromotionGrant, error) {
		return &PromotionGrant{PromotionID: 42, Discount: 250}, nil
	}

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "SPRING", []OrderItemReq{{ProductID: 1, Quantity: 3}}, saleCaller))
	require.NoError(t, err)
	require.Equal(t, int64(50), created.FinalPrice)

	// Состав ужался, скидка больше новой суммы позиций.
	updated, err := f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{{ProductID: 1, Quantity: 1}}, saleCaller))
	require.NoError(t, err)

	assert.Equal(t, int64(0), updated.FinalPrice)
	assert.Equal(t, int64(100), updated.DiscountAmount)
}

func TestUpdateStatus_Transitions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)

	err = f.uc.UpdateStatus(ctx, &UpdateStatusReq{OrderID: created.ID, Status: "SHIPPED", Caller: saleCaller})
	assert.ErrorIs(t, err, e.ErrInvalidStatus)

	require.NoError(t, f.uc.UpdateStatus(ctx, &UpdateStatusReq{OrderID: created.ID, Status: "PAID", Caller: saleCaller}))
	assert.Equal(t, domain.StatusPaid, f.store.orders[created.ID].Status)

	err = f.uc.UpdateStatus(ctx, &UpdateStatusReq{OrderID: created.ID, Status: "PENDING", Caller: saleCaller})
	require.ErrorIs(t, err, e.ErrInvalidTransition)
	assert.Contains(t, err.Error(), "PAID -> PENDING")

	events := f.store.outbox
	assert.Equal(t, OrderStatusChanged, events[len(events)-1].EventType)
}

func TestUpdateStatus_CancelDoesNotRestoreStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 4}}, saleCaller))
	require.NoError(t, err)
	require.Equal(t, int64(6), f.store.products[1].Stock)

	require.NoError(t, f.uc.UpdateStatus(ctx, &UpdateStatusReq{OrderID: created.ID, Status: "CANCELLED", Caller: saleCaller}))

	assert.Equal(t, domain.StatusCancelled, f.store.orders[created.ID].Status)
	assert.Equal(t, int64(6), f.store.products[1].Stock)
}

func TestDeleteOrder_Forbidden(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 2}}, saleCaller))
	require.NoError(t, err)

	err = f.uc.Delete(ctx, &DeleteOrderReq{OrderID: created.ID, Caller: otherSale})
	assert.ErrorIs(t, err, e.ErrForbidden)
	assert.Len(t, f.store.orders, 1)
	assert.Equal(t, int64(8), f.store.products[1].Stock)

	require.NoError(t, f.uc.Delete(ctx, &DeleteOrderReq{OrderID: created.ID, Caller: adminCaller}))
	assert.Equal(t, int64(10), f.store.products[1].Stock)
}

func TestGetByID_EnrichesReferences(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))
	f.customers.customers[5] = &domain.Customer{ID: 5, Name: "Acme"}
	f.users.users[1] = &UserRef{ID: 1, Name: "Ivanov", Role: domain.RoleSale}

	customerID := int64(5)
	created, err := f.uc.Create(ctx, NewCreateOrderReq(&customerID, "", []OrderItemReq{{ProductID: 1, Quantity: 1}}, saleCaller))
	require.NoError(t, err)

	details, err := f.uc.GetByID(ctx, &GetOrderReq{OrderID: created.ID, Caller: saleCaller})
	require.NoError(t, err)

	require.NotNil(t, details.Customer)
	assert.Equal(t, "Acme", details.Customer.Name)
	require.NotNil(t, details.CreatedBy)
	assert.Equal(t, "Ivanov", details.CreatedBy.Name)

	_, err = f.uc.GetByID(ctx, &GetOrderReq{OrderID: created.ID, Caller: otherSale})
	assert.ErrorIs(t, err, e.ErrForbidden)

	_, err = f.uc.GetByID(ctx, &GetOrderReq{OrderID: 404, Caller: saleCaller})
	assert.ErrorIs(t, err, e.ErrOrderNotFound)
}

func TestListOrders_RoleVisibilityAndPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 100))

	for i := 0; i < 3; i++ {
		_, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 1}}, saleCaller))
		require.NoError(t, err)
	}
	_, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{{ProductID: 1, Quantity: 1}}, otherSale))
	require.NoError(t, err)

	res, err := f.uc.List(ctx, &ListOrdersReq{Caller: saleCaller})
	require.NoError(t, err)
	assert.Equal(t, int64(3), res.Total)
	for _, o := range res.Orders {
		assert.Equal(t, saleCaller.ID, o.CreatedByID)
	}
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 20, res.Size)

	res, err = f.uc.List(ctx, &ListOrdersReq{Caller: adminCaller})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)

	res, err = f.uc.List(ctx, &ListOrdersReq{Caller: adminCaller, Size: 1000})
	require.NoError(t, err)
	assert.Equal(t, 100, res.Size)

	_, err = f.uc.List(ctx, &ListOrdersReq{Caller: adminCaller, Status: "SHIPPED"})
	assert.ErrorIs(t, err, e.ErrInvalidStatus)

	pending := string(domain.StatusPending)
	res, err = f.uc.List(ctx, &ListOrdersReq{Caller: adminCaller, Status: pending, Page: 2, Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(4), res.Total)
	assert.Len(t, res.Orders, 1)
}

func TestStockConservation_AcrossSequence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "A", 100, 20), product(2, "B", 200, 30))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 7},
	}, saleCaller))
	require.NoError(t, err)

	_, err = f.uc.Update(ctx, NewUpdateOrderReq(created.ID, nil, []OrderItemReq{
		{ProductID: 1, Quantity: 6},
		{ProductID: 2, Quantity: 2},
	}, saleCaller))
	require.NoError(t, err)

	// Склад + резерв в заказе — величина постоянная.
	stored := f.store.orders[created.ID]
	reserved := map[int64]int64{}
	for _, item := range stored.Items {
		reserved[item.ProductID] = item.Quantity
	}
	assert.Equal(t, int64(20), f.store.products[1].Stock+reserved[1])
	assert.Equal(t, int64(30), f.store.products[2].Stock+reserved[2])

	require.NoError(t, f.uc.Delete(ctx, &DeleteOrderReq{OrderID: created.ID, Caller: saleCaller}))
	assert.Equal(t, int64(20), f.store.products[1].Stock)
	assert.Equal(t, int64(30), f.store.products[2].Stock)
}

func TestCreateOrder_DuplicateItemLinesAreSummed(t *testing.T) {
	ctx := context.Background()
	f := newFixture(product(1, "ProductX", 100, 10))

	created, err := f.uc.Create(ctx, NewCreateOrderReq(nil, "", []OrderItemReq{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 3},
	}, saleCaller))
	require.NoError(t, err)

	require.Len(t, created.Items, 1)
	assert.Equal(t, int64(5), created.Items[0].Quantity)
	assert.Equal(t, int64(500), created.FinalPrice)
	assert.Equal(t, int64(5), f.store.products[1].Stock)
}
