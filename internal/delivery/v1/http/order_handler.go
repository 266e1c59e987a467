package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/domain"
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUC
	logger       logger.Logger
}

func NewOrderHandler(orderUsecase usecase.OrderUC, logger logger.Logger) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase, logger: logger}
}

type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

type CreateOrderRequest struct {
	CustomerID *int64             `json:"customer_id,omitempty"`
	PromoCode  string             `json:"promo_code,omitempty"`
	Items      []OrderItemRequest `json:"items"`
}

type UpdateOrderRequest struct {
	CustomerID *int64             `json:"customer_id,omitempty"`
	Items      []OrderItemRequest `json:"items,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type OrderItemResponse struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	Quantity      int64  `json:"quantity"`
	UnitSalePrice string `json:"unit_sale_price"`
	TotalPrice    string `json:"total_price"`
}

type OrderResponse struct {
	ID             int64               `json:"id"`
	Status         string              `json:"status"`
	CreatedTime    time.Time           `json:"created_time"`
	FinalPrice     string              `json:"final_price"`
	DiscountAmount string              `json:"discount_amount"`
	PromotionID    *int64              `json:"promotion_id,omitempty"`
	CustomerID     *int64              `json:"customer_id,omitempty"`
	CustomerName   string              `json:"customer_name,omitempty"`
	CreatedByID    int64               `json:"created_by_id"`
	CreatedByName  string              `json:"created_by_name,omitempty"`
	Items          []OrderItemResponse `json:"items"`
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
	Page   int             `json:"page"`
	Size   int             `json:"size"`
}

// createOrder
//
//	@Summary		Создание заказа
//	@Description	Создаёт заказ в статусе PENDING, списывая остатки по позициям
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateOrderRequest	true	"Позиции заказа"
//	@Success		201		{object}	OrderResponse		"Созданный заказ"
//	@Failure		400		{object}	ErrorResponse		"Ошибка валидации или нехватка остатков"
//	@Router			/orders [post]
func (h *OrderHandler) createOrder(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d create order: bad body: %s", http.StatusBadRequest, err.Error())
		WriteError(w, e.ErrNoItems)
		return
	}

	order, err := h.orderUsecase.Create(r.Context(),
		usecase.NewCreateOrderReq(req.CustomerID, req.PromoCode, toItemReqs(req.Items), caller))
	if err != nil {
		h.logger.Warnf("create order: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusCreated, toOrderResponse(order, nil, nil))
}

// updateOrder
//
//	@Summary		Изменение заказа
//	@Description	Меняет покупателя и состав заказа с пересчётом остатков
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID заказа"
//	@Param			request	body		UpdateOrderRequest	true	"Изменения"
//	@Success		200		{object}	OrderResponse		"Обновлённый заказ"
//	@Failure		400		{object}	ErrorResponse		"Заказ уже оплачен или нехватка остатков"
//	@Failure		403		{object}	ErrorResponse		"Чужой заказ"
//	@Failure		404		{object}	ErrorResponse		"Заказ не найден"
//	@Router			/orders/{id} [put]
func (h *OrderHandler) updateOrder(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d update order %d: bad body: %s", http.StatusBadRequest, id, err.Error())
		WriteError(w, e.ErrInvalidID)
		return
	}

	order, err := h.orderUsecase.Update(r.Context(),
		usecase.NewUpdateOrderReq(id, req.CustomerID, toItemReqs(req.Items), caller))
	if err != nil {
		h.logger.Warnf("update order %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(order, nil, nil))
}

// updateStatus
//
//	@Summary		Смена статуса заказа
//	@Description	Переводит заказ по разрешённому ребру жизненного цикла
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int					true	"ID заказа"
//	@Param			request	body		UpdateStatusRequest	true	"Новый статус"
//	@Success		200		{object}	map[string]interface{}	"Принятый переход"
//	@Failure		400		{object}	ErrorResponse		"Неизвестный статус или запрещённый переход"
//	@Failure		403		{object}	ErrorResponse		"Чужой заказ"
//	@Failure		404		{object}	ErrorResponse		"Заказ не найден"
//	@Router			/orders/{id}/status [put]
func (h *OrderHandler) updateStatus(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warnf("%d update status %d: bad body: %s", http.StatusBadRequest, id, err.Error())
		WriteError(w, e.ErrInvalidStatus)
		return
	}

	err = h.orderUsecase.UpdateStatus(r.Context(), &usecase.UpdateStatusReq{
		OrderID: id,
		Status:  req.Status,
		Caller:  caller,
	})
	if err != nil {
		h.logger.Warnf("update status %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"id":     id,
		"status": req.Status,
	})
}

// deleteOrder
//
//	@Summary		Удаление заказа
//	@Description	Удаляет заказ, возвращая остатки по его позициям на склад
//	@Tags			orders
//	@Produce		json
//	@Param			id	path	int	true	"ID заказа"
//	@Success		204	"Заказ удалён"
//	@Failure		403	{object}	ErrorResponse	"Чужой заказ"
//	@Failure		404	{object}	ErrorResponse	"Заказ не найден"
//	@Router			/orders/{id} [delete]
func (h *OrderHandler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	if err := h.orderUsecase.Delete(r.Context(), &usecase.DeleteOrderReq{OrderID: id, Caller: caller}); err != nil {
		h.logger.Warnf("delete order %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// getOrder
//
//	@Summary		Заказ по ID
//	@Produce		json
//	@Tags			orders
//	@Param			id	path		int				true	"ID заказа"
//	@Success		200	{object}	OrderResponse	"Заказ"
//	@Failure		403	{object}	ErrorResponse	"Чужой заказ"
//	@Failure		404	{object}	ErrorResponse	"Заказ не найден"
//	@Router			/orders/{id} [get]
func (h *OrderHandler) getOrder(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	id, err := parseIDParam(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, err)
		return
	}

	details, err := h.orderUsecase.GetByID(r.Context(), &usecase.GetOrderReq{OrderID: id, Caller: caller})
	if err != nil {
		h.logger.Warnf("get order %d: %s", id, err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, toOrderResponse(&details.Order, details.Customer, details.CreatedBy))
}

// listOrders
//
//	@Summary		Список заказов
//	@Description	Постраничный список с фильтрами. SALE видит только свои заказы
//	@Tags			orders
//	@Produce		json
//	@Param			status		query		string				false	"Фильтр по статусу"
//	@Param			fromDate	query		string				false	"Дата с (YYYY-MM-DD)"
//	@Param			toDate		query		string				false	"Дата по (YYYY-MM-DD)"
//	@Param			page	query		int					false	"Номер страницы"
//	@Param			size	query		int					false	"Размер страницы"
//	@Success		200		{object}	ListOrdersResponse	"Страница заказов"
//	@Failure		400		{object}	ErrorResponse		"Ошибка фильтра"
//	@Router			/orders [get]
func (h *OrderHandler) listOrders(w http.ResponseWriter, r *http.Request) {
	caller, err := CallerFromCtx(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	q := r.URL.Query()

	from, err := parseDateQuery(queryParam(q, "fromDate", "from"))
	if err != nil {
		WriteError(w, err)
		return
	}

	to, err := parseDateQuery(queryParam(q, "toDate", "to"))
	if err != nil {
		WriteError(w, err)
		return
	}
	if to != nil {
		end := endOfDay(*to)
		to = &end
	}

	page, err := parseIntQuery(q.Get("page"), 1)
	if err != nil {
		WriteError(w, err)
		return
	}

	size, err := parseIntQuery(q.Get("size"), 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.orderUsecase.List(r.Context(), &usecase.ListOrdersReq{
		Page:   page,
		Size:   size,
		Status: q.Get("status"),
		From:   from,
		To:     to,
		Caller: caller,
	})
	if err != nil {
		h.logger.Warnf("list orders: %s", err.Error())
		WriteError(w, err)
		return
	}

	orders := make([]OrderResponse, 0, len(res.Orders))
	for i := range res.Orders {
		orders = append(orders, *toOrderResponse(&res.Orders[i], nil, nil))
	}

	WriteSuccess(w, http.StatusOK, &ListOrdersResponse{
		Orders: orders,
		Total:  res.Total,
		Page:   res.Page,
		Size:   res.Size,
	})
}

func toItemReqs(items []OrderItemRequest) []usecase.OrderItemReq {
	if items == nil {
		return nil
	}

	result := make([]usecase.OrderItemReq, 0, len(items))
	for _, item := range items {
		result = append(result, usecase.OrderItemReq{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return result
}

func toOrderResponse(order *domain.Order, customer *domain.Customer, createdBy *usecase.UserRef) *OrderResponse {
	items := make([]OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemResponse{
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			Quantity:      item.Quantity,
			UnitSalePrice: formatCents(item.UnitSalePrice),
			TotalPrice:    formatCents(item.TotalPrice),
		})
	}

	res := &OrderResponse{
		ID:             order.ID,
		Status:         string(order.Status),
		CreatedTime:    order.CreatedTime,
		FinalPrice:     formatCents(order.FinalPrice),
		DiscountAmount: formatCents(order.DiscountAmount),
		PromotionID:    order.PromotionID,
		CustomerID:     order.CustomerID,
		CreatedByID:    order.CreatedByID,
		Items:          items,
	}

	if customer != nil {
		res.CustomerName = customer.Name
	}
	if createdBy != nil {
		res.CreatedByName = createdBy.Name
	}

	return res
}
