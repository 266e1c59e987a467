package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
)

// OrderUseCase реализует жизненный цикл заказа и сверку остатков.
// Каждая мутация выполняется в одной транзакции: заказ, позиции и
// остатки товаров либо меняются вместе, либо не меняются вовсе.
type OrderUseCase struct {
	orderRepo    OrderRepository
	productRepo  ProductRepository
	customerRepo CustomerRepository
	userRepo     UserRepository
	outboxRepo   OutboxRepository
	promo        PromotionService
	txm          TxManager
	logger       logger.Logger
}

func NewOrderUC(
	orderRepo OrderRepository,
	productRepo ProductRepository,
	customerRepo CustomerRepository,
	userRepo UserRepository,
	outboxRepo OutboxRepository,
	promo PromotionService,
	txm TxManager,
	logger logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		userRepo:     userRepo,
		outboxRepo:   outboxRepo,
		promo:        promo,
		txm:          txm,
		logger:       logger,
	}
}

// Create создаёт заказ в статусе PENDING, списывая остатки по каждой позиции.
// Нехватка остатка по любой позиции отменяет операцию целиком.
// Промокод проверяется до открытия транзакции, по подытогу из обычного
// чтения цен: внешний HTTP-вызов не держит блокировки строк товаров.
func (u *OrderUseCase) Create(ctx context.Context, req *CreateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.Create"

	if err := validateItems(req.Items); err != nil {
		return nil, e.Wrap(op, err)
	}

	var grant *PromotionGrant
	if req.PromoCode != "" {
		subtotal, err := u.quoteSubtotal(ctx, req.Items)
		if err != nil {
			return nil, e.Wrap(op, err)
		}

		grant, err = u.promo.Validate(ctx, req.PromoCode, subtotal)
		if err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	var created *domain.Order
	err := u.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		items, err := u.reconcileStock(ctx, nil, req.Items)
		if err != nil {
			return err
		}

		order := &domain.Order{
			Status:      domain.StatusPending,
			CustomerID:  req.CustomerID,
			CreatedByID: req.Caller.ID,
			Items:       items,
		}

		subtotal := order.ItemsTotal()
		if grant != nil {
			promotionID := grant.PromotionID
			order.PromotionID = &promotionID
			// Скидка не может превышать подытог: итог не уходит в минус.
			order.DiscountAmount = grant.Discount
			if order.DiscountAmount > subtotal {
				order.DiscountAmount = subtotal
			}
		}
		order.FinalPrice = subtotal - order.DiscountAmount

		created, err = u.orderRepo.Insert(ctx, order)
		if err != nil {
			return err
		}

		return u.appendOutbox(ctx, OrderCreated, created)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return created, nil
}

// Update меняет покупателя и/или состав заказа.
// Если переданы позиции, алгоритм сверки пересчитывает остатки по дельтам
// и заменяет набор позиций целиком; цены позиций фиксируются заново.
func (u *OrderUseCase) Update(ctx context.Context, req *UpdateOrderReq) (*domain.Order, error) {
	const op = "OrderUseCase.Update"

	if req.Items != nil {
		if err := validateItems(req.Items); err != nil {
			return nil, e.Wrap(op, err)
		}
	}

	var updated *domain.Order
	err := u.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.getOwnedForUpdate(ctx, req.OrderID, req.Caller)
		if err != nil {
			return err
		}

		// Терминальные статусы: состав и цены заказа больше не меняются.
		switch order.Status {
		case domain.StatusPaid:
			return e.ErrAlreadyPaid
		case domain.StatusCancelled:
			return e.ErrOrderCancelled
		}

		if req.CustomerID != nil {
			order.CustomerID = req.CustomerID
		}

		if req.Items != nil {
			items, err := u.reconcileStock(ctx, order.Items, req.Items)
			if err != nil {
				return err
			}

			if err := u.orderRepo.ReplaceItems(ctx, order.ID, items); err != nil {
				return err
			}

			order.Items = items
			total := order.ItemsTotal()
			if order.DiscountAmount > total {
				order.DiscountAmount = total
			}
			order.FinalPrice = total - order.DiscountAmount
		}

		if err := u.orderRepo.UpdateHeader(ctx, order); err != nil {
			return err
		}

		updated = order
		return u.appendOutbox(ctx, OrderUpdated, order)
	})
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return updated, nil
}

// UpdateStatus переводит заказ в новый статус по рёбрам машины состояний.
// Остатки не трогаются: отмена заказа не возвращает товар на склад,
// возврат делает только Delete.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, req *UpdateStatusReq) error {
	const op = "OrderUseCase.UpdateStatus"

	newStatus := domain.OrderStatus(req.Status)
	if !domain.KnownStatus(newStatus) {
		return e.Wrap(op, fmt.Errorf("%w: %q", e.ErrInvalidStatus, req.Status))
	}

	err := u.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.getOwnedForUpdate(ctx, req.OrderID, req.Caller)
		if err != nil {
			return err
		}

		if !domain.CanTransition(order.Status, newStatus) {
			return fmt.Errorf("%w: %s -> %s", e.ErrInvalidTransition, order.Status, newStatus)
		}

		if err := u.orderRepo.UpdateStatus(ctx, order.ID, newStatus); err != nil {
			return err
		}

		order.Status = newStatus
		return u.appendOutbox(ctx, OrderStatusChanged, order)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// Delete возвращает остатки по всем позициям и удаляет заказ с позициями.
func (u *OrderUseCase) Delete(ctx context.Context, req *DeleteOrderReq) error {
	const op = "OrderUseCase.Delete"

	err := u.txm.WithinTransaction(ctx, func(ctx context.Context) error {
		order, err := u.getOwnedForUpdate(ctx, req.OrderID, req.Caller)
		if err != nil {
			return err
		}

		if err := u.restoreStock(ctx, order.Items); err != nil {
			return err
		}

		if err := u.orderRepo.Delete(ctx, order.ID); err != nil {
			return err
		}

		return u.appendOutbox(ctx, OrderDeleted, order)
	})
	if err != nil {
		return e.Wrap(op, err)
	}

	return nil
}

// GetByID возвращает заказ с позициями, покупателем и создателем.
func (u *OrderUseCase) GetByID(ctx context.Context, req *GetOrderReq) (*OrderDetails, error) {
	const op = "OrderUseCase.GetByID"

	order, err := u.orderRepo.GetByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.Wrap(op, e.ErrOrderNotFound)
		}
		return nil, e.Wrap(op, err)
	}

	if !req.Caller.CanTouchOrder(order.CreatedByID) {
		return nil, e.Wrap(op, e.ErrForbidden)
	}

	details := &OrderDetails{Order: *order}

	if order.CustomerID != nil {
		customer, err := u.customerRepo.GetByID(ctx, *order.CustomerID)
		if err != nil {
			u.logger.Warnf("Failed to load customer %d for order %d: %v", *order.CustomerID, order.ID, err)
		} else {
			details.Customer = customer
		}
	}

	creator, err := u.userRepo.GetRef(ctx, order.CreatedByID)
	if err != nil {
		u.logger.Warnf("Failed to load creator %d for order %d: %v", order.CreatedByID, order.ID, err)
	} else {
		details.CreatedBy = creator
	}

	return details, nil
}

// List возвращает страницу заказов с учётом фильтров и роли вызывающего.
func (u *OrderUseCase) List(ctx context.Context, req *ListOrdersReq) (*ListOrdersRes, error) {
	const (
		op          = "OrderUseCase.List"
		defaultSize = 20
		maxSize     = 100
	)

	filter := OrderFilter{
		From: req.From,
		To:   req.To,
		Page: req.Page,
		Size: req.Size,
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Size < 1 {
		filter.Size = defaultSize
	}
	if filter.Size > maxSize {
		filter.Size = maxSize
	}

	if req.Status != "" {
		status := domain.OrderStatus(req.Status)
		if !domain.KnownStatus(status) {
			return nil, e.Wrap(op, fmt.Errorf("%w: %q", e.ErrInvalidStatus, req.Status))
		}
		filter.Status = &status
	}

	// SALE видит только свои заказы: фильтр уходит в запрос,
	// чтобы пагинация считала итог по видимому подмножеству.
	if req.Caller.Role == domain.RoleSale {
		callerID := req.Caller.ID
		filter.CreatedByID = &callerID
	}

	orders, total, err := u.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	return NewListOrdersRes(orders, total, filter.Page, filter.Size), nil
}

// reconcileStock — алгоритм сверки остатков: для каждого товара из старого
// и нового набора позиций считается delta = newQty − oldQty; положительная
// дельта списывается (с проверкой остатка), отрицательная возвращается.
// Строки товаров блокируются в порядке возрастания id, чтобы два
// конкурирующих изменения не взаимоблокировались.
func (u *OrderUseCase) reconcileStock(ctx context.Context, oldItems []domain.OrderLineItem, newItems []OrderItemReq) ([]domain.OrderLineItem, error) {
	oldQty := make(map[int64]int64, len(oldItems))
	for _, item := range oldItems {
		oldQty[item.ProductID] += item.Quantity
	}

	newQty := make(map[int64]int64, len(newItems))
	requestOrder := make([]int64, 0, len(newItems))
	for _, item := range newItems {
		if _, ok := newQty[item.ProductID]; !ok {
			requestOrder = append(requestOrder, item.ProductID)
		}
		newQty[item.ProductID] += item.Quantity
	}

	ids := unionIDs(oldQty, newQty)

	products := make(map[int64]*domain.Product, len(ids))
	for _, id := range ids {
		delta := newQty[id] - oldQty[id]

		product, err := u.productRepo.GetForUpdate(ctx, id)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return nil, fmt.Errorf("%w: id %d", e.ErrProductNotFound, id)
			}
			return nil, err
		}

		if delta > 0 && product.Stock < delta {
			return nil, fmt.Errorf("%w: %s", e.ErrOutOfStock, product.Name)
		}

		if delta != 0 {
			if _, err := u.productRepo.AdjustStock(ctx, id, -delta); err != nil {
				return nil, err
			}
		}

		products[id] = product
	}

	// Цена позиции фиксируется заново из текущей salePrice,
	// в том числе при нулевой дельте.
	items := make([]domain.OrderLineItem, 0, len(requestOrder))
	for _, id := range requestOrder {
		product := products[id]
		items = append(items, domain.NewOrderLineItem(product.ID, product.Name, newQty[id], product.SalePrice))
	}

	return items, nil
}

// quoteSubtotal считает подытог заказа по текущим ценам обычным чтением,
// без блокировок. Итоговые цены позиций фиксируются позже, под блокировкой
// в reconcileStock; дрейф цены между чтениями меняет только базу скидки.
func (u *OrderUseCase) quoteSubtotal(ctx context.Context, items []OrderItemReq) (int64, error) {
	var subtotal int64
	for _, item := range items {
		product, err := u.productRepo.Get(ctx, item.ProductID)
		if err != nil {
			if errors.Is(err, e.ErrNotFound) {
				return 0, fmt.Errorf("%w: id %d", e.ErrProductNotFound, item.ProductID)
			}
			return 0, err
		}
		subtotal += product.SalePrice * item.Quantity
	}

	return subtotal, nil
}

// restoreStock возвращает остатки по позициям заказа.
func (u *OrderUseCase) restoreStock(ctx context.Context, items []domain.OrderLineItem) error {
	qty := make(map[int64]int64, len(items))
	for _, item := range items {
		qty[item.ProductID] += item.Quantity
	}

	ids := make([]int64, 0, len(qty))
	for id := range qty {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		if _, err := u.productRepo.GetForUpdate(ctx, id); err != nil {
			return err
		}
		if _, err := u.productRepo.AdjustStock(ctx, id, qty[id]); err != nil {
			return err
		}
	}

	return nil
}

// getOwnedForUpdate блокирует заказ и проверяет права вызывающего.
func (u *OrderUseCase) getOwnedForUpdate(ctx context.Context, orderID int64, caller domain.Caller) (*domain.Order, error) {
	order, err := u.orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, e.ErrOrderNotFound
		}
		return nil, err
	}

	if !caller.CanTouchOrder(order.CreatedByID) {
		return nil, e.ErrForbidden
	}

	return order, nil
}

// appendOutbox пишет событие заказа в outbox той же транзакцией.
func (u *OrderUseCase) appendOutbox(ctx context.Context, eventType OutboxEventType, order *domain.Order) error {
	event, err := NewOrderOutboxEvent(eventType, order)
	if err != nil {
		return err
	}

	_, err = u.outboxRepo.Create(ctx, event)
	return err
}

func validateItems(items []OrderItemReq) error {
	if len(items) == 0 {
		return e.ErrNoItems
	}

	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: product %d", e.ErrQuantityMustBePositive, item.ProductID)
		}
	}

	return nil
}

func unionIDs(oldQty, newQty map[int64]int64) []int64 {
	seen := make(map[int64]bool, len(oldQty)+len(newQty))
	ids := make([]int64, 0, len(oldQty)+len(newQty))

	for id := range oldQty {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for id := range newQty {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
