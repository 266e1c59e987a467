package http

import (
	"net/http"
	"time"

	"github.com/DRSN-tech/retail-backoffice/internal/usecase"
	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUC
	logger        logger.Logger
}

func NewReportHandler(reportUsecase usecase.ReportUC, logger logger.Logger) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase, logger: logger}
}

type RevenueBucketResponse struct {
	Label   string `json:"label"`
	Revenue string `json:"revenue"`
}

type RevenueReportResponse struct {
	Buckets []RevenueBucketResponse `json:"buckets"`
	Total   string                  `json:"total"`
}

type ProfitReportResponse struct {
	Revenue string  `json:"revenue"`
	Cost    string  `json:"cost"`
	Profit  string  `json:"profit"`
	Margin  float64 `json:"margin"`
}

type TopProductResponse struct {
	ProductID     int64  `json:"product_id"`
	Name          string `json:"name"`
	TotalQuantity int64  `json:"total_quantity"`
}

type TimeSeriesResponse struct {
	Products []TopProductResponse `json:"products"`
	Labels   []string             `json:"labels"`
	Series   [][]int64            `json:"series"`
}

type SalespersonKPIResponse struct {
	UserID     int64  `json:"user_id"`
	UserName   string `json:"user_name"`
	OrderCount int64  `json:"order_count"`
	Revenue    string `json:"revenue"`
	Commission string `json:"commission"`
}

type KPIResponse struct {
	Rows []SalespersonKPIResponse `json:"rows"`
}

// revenue
//
//	@Summary		Отчёт по выручке
//	@Description	Выручка по оплаченным заказам, сгруппированная по дням, месяцам или годам
//	@Tags			reports
//	@Produce		json
//	@Param			startDate	query		string	true	"Дата с (YYYY-MM-DD)"
//	@Param			endDate		query		string	true	"Дата по (YYYY-MM-DD)"
//	@Param			type		query		string	true	"day | month | year"
//	@Param			categoryId	query		int		false	"Фильтр по категории"
//	@Success		200			{object}	RevenueReportResponse	"Выручка по корзинам"
//	@Failure		400			{object}	ErrorResponse			"Ошибка параметров"
//	@Router			/reports/revenue [get]
func (h *ReportHandler) revenue(w http.ResponseWriter, r *http.Request) {
	from, to, categoryID, err := h.parseRangeParams(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.reportUsecase.Revenue(r.Context(), &usecase.RevenueReportReq{
		From:        from,
		To:          to,
		Granularity: usecase.Granularity(queryParam(r.URL.Query(), "type", "granularity")),
		CategoryID:  categoryID,
	})
	if err != nil {
		h.logger.Warnf("revenue report: %s", err.Error())
		WriteError(w, err)
		return
	}

	buckets := make([]RevenueBucketResponse, 0, len(res.Buckets))
	for _, b := range res.Buckets {
		buckets = append(buckets, RevenueBucketResponse{
			Label:   b.Label,
			Revenue: formatCents(b.Revenue),
		})
	}

	WriteSuccess(w, http.StatusOK, &RevenueReportResponse{
		Buckets: buckets,
		Total:   formatCents(res.Total),
	})
}

// profit
//
//	@Summary		Отчёт по прибыли
//	@Description	Выручка, себестоимость, прибыль и маржа за период
//	@Tags			reports
//	@Produce		json
//	@Param			startDate	query		string	true	"Дата с (YYYY-MM-DD)"
//	@Param			endDate		query		string	true	"Дата по (YYYY-MM-DD)"
//	@Param			categoryId	query		int		false	"Фильтр по категории"
//	@Success		200			{object}	ProfitReportResponse	"Прибыль за период"
//	@Failure		400			{object}	ErrorResponse			"Ошибка параметров"
//	@Router			/reports/profit [get]
func (h *ReportHandler) profit(w http.ResponseWriter, r *http.Request) {
	from, to, categoryID, err := h.parseRangeParams(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.reportUsecase.Profit(r.Context(), &usecase.ProfitReportReq{
		From:       from,
		To:         to,
		CategoryID: categoryID,
	})
	if err != nil {
		h.logger.Warnf("profit report: %s", err.Error())
		WriteError(w, err)
		return
	}

	WriteSuccess(w, http.StatusOK, &ProfitReportResponse{
		Revenue: formatCents(res.Revenue),
		Cost:    formatCents(res.Cost),
		Profit:  formatCents(res.Profit),
		Margin:  res.Margin,
	})
}

// timeSeries
//
//	@Summary		Динамика продаж топ-товаров
//	@Description	Топ-5 товаров по количеству и их продажи по контрольным отрезкам периода
//	@Tags			reports
//	@Produce		json
//	@Param			startDate	query		string	true	"Дата с (YYYY-MM-DD)"
//	@Param			endDate		query		string	true	"Дата по (YYYY-MM-DD)"
//	@Param			categoryId	query		int		false	"Фильтр по категории"
//	@Success		200			{object}	TimeSeriesResponse	"Ряды продаж"
//	@Failure		400			{object}	ErrorResponse		"Ошибка параметров"
//	@Router			/reports/products/timeseries [get]
func (h *ReportHandler) timeSeries(w http.ResponseWriter, r *http.Request) {
	from, to, categoryID, err := h.parseRangeParams(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	res, err := h.reportUsecase.TopProductsTimeSeries(r.Context(), &usecase.TimeSeriesReq{
		From:       from,
		To:         to,
		CategoryID: categoryID,
	})
	if err != nil {
		h.logger.Warnf("timeseries report: %s", err.Error())
		WriteError(w, err)
		return
	}

	products := make([]TopProductResponse, 0, len(res.Products))
	for _, p := range res.Products {
		products = append(products, TopProductResponse{
			ProductID:     p.ProductID,
			Name:          p.Name,
			TotalQuantity: p.TotalQuantity,
		})
	}

	WriteSuccess(w, http.StatusOK, &TimeSeriesResponse{
		Products: products,
		Labels:   res.Labels,
		Series:   res.Series,
	})
}

// kpi
//
//	@Summary		KPI продавцов
//	@Description	Количество заказов, выручка и комиссия по продавцам за год или месяц
//	@Tags			reports
//	@Produce		json
//	@Param			year	query		int	true	"Год"
//	@Param			month	query		int	false	"Месяц 1-12"
//	@Success		200		{object}	KPIResponse		"KPI по продавцам"
//	@Failure		400		{object}	ErrorResponse	"Ошибка параметров"
//	@Router			/reports/kpi [get]
func (h *ReportHandler) kpi(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntQuery(r.URL.Query().Get("year"), 0)
	if err != nil {
		WriteError(w, err)
		return
	}

	var month *int
	if raw := r.URL.Query().Get("month"); raw != "" {
		m, err := parseIntQuery(raw, 0)
		if err != nil {
			WriteError(w, err)
			return
		}
		month = &m
	}

	res, err := h.reportUsecase.SalesKPI(r.Context(), &usecase.KPIReq{Year: year, Month: month})
	if err != nil {
		h.logger.Warnf("kpi report: %s", err.Error())
		WriteError(w, err)
		return
	}

	rows := make([]SalespersonKPIResponse, 0, len(res.Rows))
	for _, row := range res.Rows {
		rows = append(rows, SalespersonKPIResponse{
			UserID:     row.UserID,
			UserName:   row.UserName,
			OrderCount: row.OrderCount,
			Revenue:    formatCents(row.Revenue),
			Commission: formatCents(row.Commission),
		})
	}

	WriteSuccess(w, http.StatusOK, &KPIResponse{Rows: rows})
}

// parseRangeParams разбирает общие для отчётов границы периода и категорию.
// Верхняя граница включительная, до конца суток.
func (h *ReportHandler) parseRangeParams(r *http.Request) (time.Time, time.Time, *int64, error) {
	q := r.URL.Query()

	from, err := parseDateQuery(queryParam(q, "startDate", "from"))
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	to, err := parseDateQuery(queryParam(q, "endDate", "to"))
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	if from == nil || to == nil {
		return time.Time{}, time.Time{}, nil, e.ErrInvalidDateRange
	}

	categoryID, err := parseOptionalInt64Query(queryParam(q, "categoryId", "category_id"))
	if err != nil {
		return time.Time{}, time.Time{}, nil, err
	}

	return *from, endOfDay(*to), categoryID, nil
}
