package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/DRSN-tech/retail-backoffice/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	orderRows []RevenueRow
	lineRows  []RevenueRow
	cost      int64
	sales     []ProductSaleRow
	kpi       []KPIRow

	orderRevenueCalls int
	lineRevenueCalls  int
}

func (r *fakeReportRepo) OrderRevenue(ctx context.Context, from, to time.Time) ([]RevenueRow, error) {
	r.orderRevenueCalls++
	return r.orderRows, nil
}

func (r *fakeReportRepo) LineRevenue(ctx context.Context, from, to time.Time, categoryID int64) ([]RevenueRow, error) {
	r.lineRevenueCalls++
	return r.lineRows, nil
}

func (r *fakeReportRepo) CostSum(ctx context.Context, from, to time.Time, categoryID *int64) (int64, error) {
	return r.cost, nil
}

func (r *fakeReportRepo) ProductSales(ctx context.Context, from, to time.Time, categoryID *int64) ([]ProductSaleRow, error) {
	return r.sales, nil
}

func (r *fakeReportRepo) SalesKPI(ctx context.Context, from, to time.Time) ([]KPIRow, error) {
	return r.kpi, nil
}

type fakeCacheRepo struct {
	data map[string][]byte
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{data: make(map[string][]byte)}
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := r.data[key]
	return data, ok, nil
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, payload []byte) error {
	r.data[key] = payload
	return nil
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d, hour int) time.Time {
	return time.Date(y, m, d, hour, 0, 0, 0, time.UTC)
}

func TestRevenue_SameDayOrdersShareBucket(t *testing.T) {
	repo := &fakeReportRepo{orderRows: []RevenueRow{
		{Date: at(2026, time.March, 5, 10), Amount: 100},
		{Date: at(2026, time.March, 5, 18), Amount: 150},
	}}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})

	res, err := uc.Revenue(context.Background(), &RevenueReportReq{
		From:        day(2026, time.March, 1),
		To:          day(2026, time.March, 31),
		Granularity: GranularityDay,
	})
	require.NoError(t, err)

	require.Len(t, res.Buckets, 1)
	assert.Equal(t, "2026-03-05", res.Buckets[0].Label)
	assert.Equal(t, int64(250), res.Buckets[0].Revenue)
	assert.Equal(t, int64(250), res.Total)
}

func TestRevenue_Granularities(t *testing.T) {
	repo := &fakeReportRepo{orderRows: []RevenueRow{
		{Date: day(2025, time.January, 10), Amount: 100},
		{Date: day(2025, time.January, 20), Amount: 200},
		{Date: day(2025, time.February, 1), Amount: 300},
		{Date: day(2026, time.February, 1), Amount: 400},
	}}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})

	from, to := day(2025, time.January, 1), day(2026, time.December, 31)

	monthly, err := uc.Revenue(context.Background(), &RevenueReportReq{From: from, To: to, Granularity: GranularityMonth})
	require.NoError(t, err)
	require.Len(t, monthly.Buckets, 3)
	assert.Equal(t, "2025-01", monthly.Buckets[0].Label)
	assert.Equal(t, int64(300), monthly.Buckets[0].Revenue)
	assert.Equal(t, int64(1000), monthly.Total)

	yearly, err := uc.Revenue(context.Background(), &RevenueReportReq{From: from, To: to, Granularity: GranularityYear})
	require.NoError(t, err)
	require.Len(t, yearly.Buckets, 2)
	assert.Equal(t, "2025", yearly.Buckets[0].Label)
	assert.Equal(t, int64(600), yearly.Buckets[0].Revenue)
	assert.Equal(t, int64(400), yearly.Buckets[1].Revenue)
}

func TestRevenue_Validation(t *testing.T) {
	uc := NewReportUC(&fakeReportRepo{}, newFakeCacheRepo(), nopLogger{})

	_, err := uc.Revenue(context.Background(), &RevenueReportReq{
		From:        day(2026, time.March, 1),
		To:          day(2026, time.March, 31),
		Granularity: Granularity("week"),
	})
	assert.ErrorIs(t, err, e.ErrInvalidGranularity)

	_, err = uc.Revenue(context.Background(), &RevenueReportReq{
		From:        day(2026, time.March, 31),
		To:          day(2026, time.March, 1),
		Granularity: GranularityDay,
	})
	assert.ErrorIs(t, err, e.ErrInvalidDateRange)
}

// Без фильтра категории выручка считается по finalPrice заказов, с фильтром
// по totalPrice позиций. На заказе со скидкой суммы расходятся, и это
// расхождение зафиксировано как контракт.
func TestRevenue_CategoryFilterAsymmetry(t *testing.T) {
	repo := &fakeReportRepo{
		// finalPrice заказа со скидкой 50
		orderRows: []RevenueRow{{Date: day(2026, time.April, 1), Amount: 450}},
		// позиции той же категории без учёта скидки
		lineRows: []RevenueRow{
			{Date: day(2026, time.April, 1), Amount: 300},
			{Date: day(2026, time.April, 1), Amount: 200},
		},
	}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})
	from, to := day(2026, time.April, 1), day(2026, time.April, 30)

	unfiltered, err := uc.Revenue(context.Background(), &RevenueReportReq{From: from, To: to, Granularity: GranularityDay})
	require.NoError(t, err)
	assert.Equal(t, int64(450), unfiltered.Total)
	assert.Equal(t, 1, repo.orderRevenueCalls)

	categoryID := int64(7)
	filtered, err := uc.Revenue(context.Background(), &RevenueReportReq{From: from, To: to, Granularity: GranularityDay, CategoryID: &categoryID})
	require.NoError(t, err)
	assert.Equal(t, int64(500), filtered.Total)
	assert.Equal(t, 1, repo.lineRevenueCalls)
}

func TestProfit_MarginComputation(t *testing.T) {
	repo := &fakeReportRepo{
		orderRows: []RevenueRow{{Date: day(2026, time.May, 1), Amount: 1000}},
		cost:      600,
	}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})

	res, err := uc.Profit(context.Background(), &ProfitReportReq{
		From: day(2026, time.May, 1),
		To:   day(2026, time.May, 31),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1000), res.Revenue)
	assert.Equal(t, int64(600), res.Cost)
	assert.Equal(t, int64(400), res.Profit)
	assert.InDelta(t, 40.0, res.Margin, 0.001)
}

func TestProfit_ZeroRevenueHasZeroMargin(t *testing.T) {
	repo := &fakeReportRepo{cost: 500}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})

	res, err := uc.Profit(context.Background(), &ProfitReportReq{
		From: day(2026, time.May, 1),
		To:   day(2026, time.May, 31),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), res.Revenue)
	assert.Equal(t, int64(-500), res.Profit)
	assert.Equal(t, 0.0, res.Margin)
}

func TestMilestoneBuckets_TenDayRange(t *testing.T) {
	from, to := day(2026, time.June, 1), day(2026, time.June, 10)

	buckets := milestoneBuckets(from, to)
	require.Len(t, buckets, 6)

	// Корзины смежны, не пересекаются и покрывают диапазон целиком.
	assert.True(t, buckets[0].From.Equal(from))
	assert.True(t, buckets[len(buckets)-1].To.Equal(to))
	for i := 1; i < len(buckets); i++ {
		assert.True(t, buckets[i].From.Equal(buckets[i-1].To.AddDate(0, 0, 1)),
			"bucket %d must start the day after bucket %d ends", i, i-1)
	}

	days := 0
	for _, b := range buckets {
		days += int(b.To.Sub(b.From).Hours()/24) + 1
	}
	assert.Equal(t, 10, days)
}

func TestMilestoneBuckets_ShortRange(t *testing.T) {
	from, to := day(2026, time.June, 1), day(2026, time.June, 4)

	buckets := milestoneBuckets(from, to)
	require.Len(t, buckets, 4)
	for i, b := range buckets {
		assert.True(t, b.From.Equal(b.To), "bucket %d must span a single day", i)
		assert.True(t, b.From.Equal(from.AddDate(0, 0, i)))
	}

	single := milestoneBuckets(from, from)
	require.Len(t, single, 1)
	assert.True(t, single[0].From.Equal(from))
	assert.True(t, single[0].To.Equal(from))
}

func TestTopProductsTimeSeries(t *testing.T) {
	sales := []ProductSaleRow{
		{ProductID: 1, ProductName: "A", Quantity: 5, OrderDate: at(2026, time.June, 2, 12)},
		{ProductID: 1, ProductName: "A", Quantity: 2, OrderDate: at(2026, time.June, 9, 9)},
		{ProductID: 2, ProductName: "B", Quantity: 4, OrderDate: at(2026, time.June, 4, 15)},
		{ProductID: 3, ProductName: "C", Quantity: 1, OrderDate: at(2026, time.June, 10, 23)},
	}
	repo := &fakeReportRepo{sales: sales}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})

	res, err := uc.TopProductsTimeSeries(context.Background(), &TimeSeriesReq{
		From: day(2026, time.June, 1),
		To:   day(2026, time.June, 10),
	})
	require.NoError(t, err)

	require.Len(t, res.Products, 3)
	assert.Equal(t, int64(1), res.Products[0].ProductID) // 7 шт
	assert.Equal(t, int64(7), res.Products[0].TotalQuantity)
	assert.Equal(t, int64(2), res.Products[1].ProductID) // 4 шт

	require.Len(t, res.Labels, 6)
	assert.Equal(t, "2026-06-01..2026-06-02", res.Labels[0])

	// Корзины при 10 днях: [1,2][3,4][5,6][7,8][9,9][10,10].
	require.Len(t, res.Series, 3)
	assert.Equal(t, []int64{5, 0, 0, 0, 2, 0}, res.Series[0])
	assert.Equal(t, []int64{0, 4, 0, 0, 0, 0}, res.Series[1])
	assert.Equal(t, []int64{0, 0, 0, 0, 0, 1}, res.Series[2])
}

func TestTopProducts_CapAndTieBreak(t *testing.T) {
	rows := []ProductSaleRow{
		{ProductID: 1, ProductName: "P1", Quantity: 10},
		{ProductID: 2, ProductName: "P2", Quantity: 20},
		{ProductID: 3, ProductName: "P3", Quantity: 30},
		{ProductID: 4, ProductName: "P4", Quantity: 40},
		{ProductID: 5, ProductName: "P5", Quantity: 50},
		{ProductID: 6, ProductName: "P6", Quantity: 60},
		{ProductID: 7, ProductName: "P7", Quantity: 10},
	}

	top := topProducts(rows, topProductsCap)
	require.Len(t, top, 5)
	assert.Equal(t, int64(6), top[0].ProductID)
	assert.Equal(t, int64(2), top[4].ProductID)

	// Равные количества упорядочены по id.
	tied := topProducts([]ProductSaleRow{
		{ProductID: 9, ProductName: "X", Quantity: 5},
		{ProductID: 3, ProductName: "Y", Quantity: 5},
	}, topProductsCap)
	require.Len(t, tied, 2)
	assert.Equal(t, int64(3), tied[0].ProductID)
	assert.Equal(t, int64(9), tied[1].ProductID)
}

func TestSalesKPI_FlatCommission(t *testing.T) {
	repo := &fakeReportRepo{kpi: []KPIRow{
		{UserID: 1, UserName: "Ivanov", OrderCount: 4, Revenue: 10000},
		{UserID: 2, UserName: "Petrov", OrderCount: 1, Revenue: 333},
	}}
	uc := NewReportUC(repo, newFakeCacheRepo(), nopLogger{})

	res, err := uc.SalesKPI(context.Background(), &KPIReq{Year: 2026})
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, int64(500), res.Rows[0].Commission)
	// 333 * 0.05 = 16.65, округление до целой копейки
	assert.Equal(t, int64(17), res.Rows[1].Commission)
}

func TestSalesKPI_Validation(t *testing.T) {
	uc := NewReportUC(&fakeReportRepo{}, newFakeCacheRepo(), nopLogger{})

	_, err := uc.SalesKPI(context.Background(), &KPIReq{Year: 0})
	assert.ErrorIs(t, err, e.ErrInvalidDateRange)

	month := 13
	_, err = uc.SalesKPI(context.Background(), &KPIReq{Year: 2026, Month: &month})
	assert.ErrorIs(t, err, e.ErrInvalidDateRange)
}

func TestRevenue_CachedResponseIsReused(t *testing.T) {
	repo := &fakeReportRepo{orderRows: []RevenueRow{{Date: day(2026, time.July, 1), Amount: 100}}}
	cache := newFakeCacheRepo()
	uc := NewReportUC(repo, cache, nopLogger{})

	req := &RevenueReportReq{
		From:        day(2026, time.July, 1),
		To:          day(2026, time.July, 31),
		Granularity: GranularityDay,
	}

	first, err := uc.Revenue(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, int64(100), first.Total)
	require.Equal(t, 1, repo.orderRevenueCalls)

	// Изменение данных не видно, пока жив кэш.
	repo.orderRows = []RevenueRow{{Date: day(2026, time.July, 1), Amount: 999}}

	second, err := uc.Revenue(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(100), second.Total)
	assert.Equal(t, 1, repo.orderRevenueCalls)
}
