package reporting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/dairyledger/internal/domain/models"
	"github.com/mamadbah2/dairyledger/internal/repository/mongodb"
)

// Service computes the report and chart aggregations over milk entries.
type Service struct {
	repo   mongodb.MilkRepository
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(repo mongodb.MilkRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// DailyTotal sums quantity and amount over the entries of a single date.
func (s *Service) DailyTotal(ctx context.Context, date string) (models.DailyTotal, error) {
	entries, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return models.DailyTotal{}, fmt.Errorf("load entries for %s: %w", date, err)
	}

	total := models.DailyTotal{Date: date}
	for _, e := range entries {
		total.TotalQty += e.Qty
		total.TotalAmount += e.Amount
	}
	total.TotalQty = models.Round2(total.TotalQty)
	total.TotalAmount = models.Round2(total.TotalAmount)

	return total, nil
}

// MonthlyTotal sums quantity and amount over a calendar month.
func (s *Service) MonthlyTotal(ctx context.Context, year, month int) (models.MonthlyTotal, error) {
	from, to := models.MonthRange(year, month)
	entries, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return models.MonthlyTotal{}, fmt.Errorf("load entries for %d-%02d: %w", year, month, err)
	}

	total := models.MonthlyTotal{Year: year, Month: month}
	for _, e := range entries {
		total.TotalQty += e.Qty
		total.TotalAmount += e.Amount
	}
	total.TotalQty = models.Round2(total.TotalQty)
	total.TotalAmount = models.Round2(total.TotalAmount)

	return total, nil
}

// DailyChart groups one date's entries by shift, summing qty/amount and
// averaging the quality metrics and rate.
func (s *Service) DailyChart(ctx context.Context, date string) ([]models.ShiftGroup, error) {
	entries, err := s.repo.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("load entries for %s: %w", date, err)
	}

	order, buckets := accumulate(entries, func(e models.MilkEntry) string { return e.Shift })

	groups := make([]models.ShiftGroup, 0, len(order))
	for _, shift := range order {
		b := buckets[shift]
		groups = append(groups, models.ShiftGroup{
			Shift:   shift,
			Qty:     models.Round2(b.qty),
			Amount:  models.Round2(b.amount),
			AvgFat:  b.avgFat(),
			AvgSNF:  b.avgSNF(),
			AvgCLR:  b.avgCLR(),
			AvgRate: b.avgRate(),
		})
	}
	return groups, nil
}

// MonthlyChart groups a calendar month's entries by date, ascending.
func (s *Service) MonthlyChart(ctx context.Context, year, month int) ([]models.DateGroup, error) {
	from, to := models.MonthRange(year, month)
	return s.RangeChart(ctx, from, to)
}

// RangeChart groups the entries of an inclusive date range by date,
// ascending. The repository already returns range queries date-ascending,
// so first-seen group order is the output order.
func (s *Service) RangeChart(ctx context.Context, from, to string) ([]models.DateGroup, error) {
	entries, err := s.repo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("load entries for %s..%s: %w", from, to, err)
	}

	order, buckets := accumulate(entries, func(e models.MilkEntry) string { return e.Date })

	groups := make([]models.DateGroup, 0, len(order))
	for _, date := range order {
		b := buckets[date]
		groups = append(groups, models.DateGroup{
			Date:    date,
			Qty:     models.Round2(b.qty),
			Amount:  models.Round2(b.amount),
			AvgFat:  b.avgFat(),
			AvgSNF:  b.avgSNF(),
			AvgCLR:  b.avgCLR(),
			AvgRate: b.avgRate(),
		})
	}
	return groups, nil
}

// bucket accumulates one partition of entries sharing a grouping key.
type bucket struct {
	qty, amount         float64
	fat, snf, clr, rate float64
	count               int
}

func (b *bucket) avgFat() float64  { return avg(b.fat, b.count) }
func (b *bucket) avgSNF() float64  { return avg(b.snf, b.count) }
func (b *bucket) avgCLR() float64  { return avg(b.clr, b.count) }
func (b *bucket) avgRate() float64 { return avg(b.rate, b.count) }

func avg(sum float64, n int) float64 {
	if n == 0 {
		return 0
	}
	return models.Round2(sum / float64(n))
}

func accumulate(entries []models.MilkEntry, key func(models.MilkEntry) string) ([]string, map[string]*bucket) {
	order := []string{}
	buckets := map[string]*bucket{}

	for _, e := range entries {
		k := key(e)
		b, ok := buckets[k]
		if !ok {
			b = &bucket{}
			buckets[k] = b
			order = append(order, k)
		}
		b.qty += e.Qty
		b.amount += e.Amount
		b.fat += e.Fat
		b.snf += e.SNF
		b.clr += e.CLR
		b.rate += e.RatePerLitre
		b.count++
	}
	return order, buckets
}
