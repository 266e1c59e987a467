package http

import (
	_ "github.com/DRSN-tech/retail-backoffice/docs" // Импорт сгенерированных файлов
	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(orderUC usecase.OrderUC, reportUC usecase.ReportUC) {
	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/swagger/doc.json"), // ссылка на JSON
	))

	r.router.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(Identity)

		orderHandler := NewOrderHandler(orderUC, r.logger)
		registerOrderRoutes(v1, orderHandler)

		reportHandler := NewReportHandler(reportUC, r.logger)
		registerReportRoutes(v1, reportHandler)
	})
}

func registerOrderRoutes(router chi.Router, h *OrderHandler) {
	router.Route("/orders", func(orders chi.Router) {
		orders.Get("/", h.listOrders)
		orders.Post("/", h.createOrder)
		orders.Get("/{id}", h.getOrder)
		orders.Put("/{id}", h.updateOrder)
		orders.Put("/{id}/status", h.updateStatus)
		orders.Delete("/{id}", h.deleteOrder)
	})
}

func registerReportRoutes(router chi.Router, h *ReportHandler) {
	router.Route("/reports", func(reports chi.Router) {
		reports.Get("/revenue", h.revenue)
		reports.Get("/profit", h.profit)
		reports.Get("/products/timeseries", h.timeSeries)
		reports.Get("/kpi", h.kpi)
	})
}
