package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/DRSN-tech/retail-backoffice/pkg/logger"
	"github.com/shopspring/decimal"
)

// ReportUseCase строит отчёты по журналу оплаченных заказов.
// Только чтение: выборки идут по пулу без транзакций, ответы кэшируются.
//
// Выручка без фильтра категории суммирует finalPrice заказов; выручка с
// фильтром — totalPrice подходящих позиций. При смешанных категориях или
// скидке суммы расходятся; это унаследованное поведение, закреплённое тестами.
type ReportUseCase struct {
	reportRepo ReportRepository
	cacheRepo  ReportCacheRepository
	logger     logger.Logger
}

func NewReportUC(reportRepo ReportRepository, cacheRepo ReportCacheRepository, logger logger.Logger) *ReportUseCase {
	return &ReportUseCase{
		reportRepo: reportRepo,
		cacheRepo:  cacheRepo,
		logger:     logger,
	}
}

const (
	maxMilestones  = 6
	topProductsCap = 5
	commissionRate = "0.05" // плоская комиссия продавца
)

// Revenue — выручка по корзинам дат заданной гранулярности.
func (r *ReportUseCase) Revenue(ctx context.Context, req *RevenueReportReq) (*RevenueReportRes, error) {
	const op = "ReportUseCase.Revenue"

	if !KnownGranularity(req.Granularity) {
		return nil, e.Wrap(op, e.ErrInvalidGranularity)
	}
	if err := validateRange(req.From, req.To); err != nil {
		return nil, e.Wrap(op, err)
	}

	key := fmt.Sprintf("report:revenue:%s:%s:%s:%s",
		dayKey(req.From), dayKey(req.To), req.Granularity, categoryKey(req.CategoryID))

	var cached RevenueReportRes
	if r.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := r.revenueRows(ctx, req.From, req.To, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	layout := granularityLayout(req.Granularity)
	index := make(map[string]int)
	res := &RevenueReportRes{Buckets: make([]RevenueBucket, 0)}

	for _, row := range rows {
		label := row.Date.Format(layout)
		idx, ok := index[label]
		if !ok {
			idx = len(res.Buckets)
			index[label] = idx
			res.Buckets = append(res.Buckets, RevenueBucket{Label: label})
		}
		res.Buckets[idx].Revenue += row.Amount
		res.Total += row.Amount
	}

	r.toCache(ctx, key, res)
	return res, nil
}

// Profit — выручка, себестоимость, прибыль и маржа за период.
func (r *ReportUseCase) Profit(ctx context.Context, req *ProfitReportReq) (*ProfitReportRes, error) {
	const op = "ReportUseCase.Profit"

	if err := validateRange(req.From, req.To); err != nil {
		return nil, e.Wrap(op, err)
	}

	key := fmt.Sprintf("report:profit:%s:%s:%s",
		dayKey(req.From), dayKey(req.To), categoryKey(req.CategoryID))

	var cached ProfitReportRes
	if r.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := r.revenueRows(ctx, req.From, req.To, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	var revenue int64
	for _, row := range rows {
		revenue += row.Amount
	}

	cost, err := r.reportRepo.CostSum(ctx, req.From, req.To, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	res := &ProfitReportRes{
		Revenue: revenue,
		Cost:    cost,
		Profit:  revenue - cost,
	}
	if revenue != 0 {
		res.Margin = decimal.NewFromInt(res.Profit).
			Div(decimal.NewFromInt(revenue)).
			Mul(decimal.NewFromInt(100)).
			Round(2).
			InexactFloat64()
	}

	r.toCache(ctx, key, res)
	return res, nil
}

// TopProductsTimeSeries — топ-5 товаров по количеству и их продажи
// по min(6, totalDays) смежным корзинам дат.
func (r *ReportUseCase) TopProductsTimeSeries(ctx context.Context, req *TimeSeriesReq) (*TimeSeriesRes, error) {
	const op = "ReportUseCase.TopProductsTimeSeries"

	if err := validateRange(req.From, req.To); err != nil {
		return nil, e.Wrap(op, err)
	}

	key := fmt.Sprintf("report:timeseries:%s:%s:%s",
		dayKey(req.From), dayKey(req.To), categoryKey(req.CategoryID))

	var cached TimeSeriesRes
	if r.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := r.reportRepo.ProductSales(ctx, req.From, req.To, req.CategoryID)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	top := topProducts(rows, topProductsCap)
	buckets := milestoneBuckets(req.From, req.To)

	res := &TimeSeriesRes{
		Products: top,
		Labels:   make([]string, 0, len(buckets)),
		Series:   make([][]int64, len(top)),
	}
	for _, b := range buckets {
		res.Labels = append(res.Labels, b.label())
	}

	productIdx := make(map[int64]int, len(top))
	for i, p := range top {
		res.Series[i] = make([]int64, len(buckets))
		productIdx[p.ProductID] = i
	}

	for _, row := range rows {
		i, ok := productIdx[row.ProductID]
		if !ok {
			continue
		}
		// Первая подходящая корзина выигрывает.
		for j, b := range buckets {
			if b.contains(row.OrderDate) {
				res.Series[i][j] += row.Quantity
				break
			}
		}
	}

	r.toCache(ctx, key, res)
	return res, nil
}

// SalesKPI — количество заказов, выручка и комиссия по продавцам.
func (r *ReportUseCase) SalesKPI(ctx context.Context, req *KPIReq) (*KPIRes, error) {
	const op = "ReportUseCase.SalesKPI"

	if req.Year < 1 {
		return nil, e.Wrap(op, e.ErrInvalidDateRange)
	}
	if req.Month != nil && (*req.Month < 1 || *req.Month > 12) {
		return nil, e.Wrap(op, e.ErrInvalidDateRange)
	}

	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(1, 0, 0)
	if req.Month != nil {
		from = time.Date(req.Year, time.Month(*req.Month), 1, 0, 0, 0, 0, time.UTC)
		to = from.AddDate(0, 1, 0)
	}

	key := fmt.Sprintf("report:kpi:%d:%s", req.Year, monthKey(req.Month))

	var cached KPIRes
	if r.fromCache(ctx, key, &cached) {
		return &cached, nil
	}

	rows, err := r.reportRepo.SalesKPI(ctx, from, to)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	rate := decimal.RequireFromString(commissionRate)
	res := &KPIRes{Rows: make([]SalespersonKPI, 0, len(rows))}
	for _, row := range rows {
		commission := decimal.NewFromInt(row.Revenue).Mul(rate).Round(0).IntPart()
		res.Rows = append(res.Rows, SalespersonKPI{
			UserID:     row.UserID,
			UserName:   row.UserName,
			OrderCount: row.OrderCount,
			Revenue:    row.Revenue,
			Commission: commission,
		})
	}

	r.toCache(ctx, key, res)
	return res, nil
}

// revenueRows выбирает источник выручки: заказы целиком или позиции категории.
func (r *ReportUseCase) revenueRows(ctx context.Context, from, to time.Time, categoryID *int64) ([]RevenueRow, error) {
	if categoryID == nil {
		return r.reportRepo.OrderRevenue(ctx, from, to)
	}
	return r.reportRepo.LineRevenue(ctx, from, to, *categoryID)
}

// fromCache пытается прочитать отчёт из кэша; любые ошибки считаются промахом.
func (r *ReportUseCase) fromCache(ctx context.Context, key string, dst any) bool {
	data, ok, err := r.cacheRepo.Get(ctx, key)
	if err != nil {
		r.logger.Warnf("Report cache read failed: %v", err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal(data, dst); err != nil {
		r.logger.Warnf("Report cache unmarshal failed, key %s: %v", key, err)
		return false
	}

	return true
}

func (r *ReportUseCase) toCache(ctx context.Context, key string, res any) {
	data, err := json.Marshal(res)
	if err != nil {
		r.logger.Warnf("Report cache marshal failed, key %s: %v", key, err)
		return
	}

	if err := r.cacheRepo.Set(ctx, key, data); err != nil {
		r.logger.Warnf("Report cache write failed, key %s: %v", key, err)
	}
}

// dateBucket — одна корзина временного ряда, границы включительно по дням.
type dateBucket struct {
	From time.Time
	To   time.Time
}

func (b dateBucket) contains(t time.Time) bool {
	day := t.Truncate(24 * time.Hour)
	return !day.Before(b.From) && !day.After(b.To)
}

func (b dateBucket) label() string {
	return b.From.Format("2006-01-02") + ".." + b.To.Format("2006-01-02")
}

// milestoneBuckets делит [from, to] на min(6, totalDays) смежных корзин.
// Когда totalDays не делится нацело, лишние дни достаются первым корзинам,
// так что объединение корзин покрывает диапазон ровно, без дыр и нахлёстов,
// а последняя корзина заканчивается точно на to.
func milestoneBuckets(from, to time.Time) []dateBucket {
	from = from.Truncate(24 * time.Hour)
	to = to.Truncate(24 * time.Hour)

	totalDays := int(to.Sub(from).Hours()/24) + 1
	numMilestones := totalDays
	if numMilestones > maxMilestones {
		numMilestones = maxMilestones
	}
	if numMilestones < 1 {
		numMilestones = 1
	}

	baseDays := totalDays / numMilestones
	extraDays := totalDays % numMilestones

	buckets := make([]dateBucket, 0, numMilestones)
	start := from
	for i := 0; i < numMilestones; i++ {
		days := baseDays
		if i < extraDays {
			days++
		}
		end := start.AddDate(0, 0, days-1)
		if end.After(to) {
			end = to
		}
		buckets = append(buckets, dateBucket{From: start, To: end})
		start = end.AddDate(0, 0, 1)
	}

	return buckets
}

// topProducts суммирует количества по товарам и возвращает лидеров.
// При равенстве количеств порядок детерминирован по id товара.
func topProducts(rows []ProductSaleRow, limit int) []TopProduct {
	totals := make(map[int64]*TopProduct)
	for _, row := range rows {
		p, ok := totals[row.ProductID]
		if !ok {
			p = &TopProduct{ProductID: row.ProductID, Name: row.ProductName}
			totals[row.ProductID] = p
		}
		p.TotalQuantity += row.Quantity
	}

	result := make([]TopProduct, 0, len(totals))
	for _, p := range totals {
		result = append(result, *p)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].TotalQuantity != result[j].TotalQuantity {
			return result[i].TotalQuantity > result[j].TotalQuantity
		}
		return result[i].ProductID < result[j].ProductID
	})

	if len(result) > limit {
		result = result[:limit]
	}

	return result
}

func granularityLayout(g Granularity) string {
	switch g {
	case GranularityMonth:
		return "2006-01"
	case GranularityYear:
		return "2006"
	default:
		return "2006-01-02"
	}
}

func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() || to.Before(from) {
		return e.ErrInvalidDateRange
	}
	return nil
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

func categoryKey(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}

func monthKey(m *int) string {
	if m == nil {
		return "all"
	}
	return strconv.Itoa(*m)
}
