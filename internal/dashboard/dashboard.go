// Package dashboard derives the overview cards, recent activity and revenue
// charts from the sale ledger and the user directory.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/kasir/internal/money"
	"github.com/MrJamesThe3rd/kasir/internal/sale"
	"github.com/MrJamesThe3rd/kasir/internal/user"
)

const (
	RecentLimit   = 5
	DefaultMonths = 7

	walkInCustomer = "Umum"
)

type SaleLister interface {
	List(ctx context.Context) ([]*sale.Sale, error)
}

type UserLister interface {
	List(ctx context.Context, query string) ([]*user.User, error)
}

// Stat is one overview card. Change is the month-over-month difference in
// percent, rounded to one decimal.
type Stat struct {
	Label   string  `json:"label"`
	Value   int64   `json:"value"`
	Display string  `json:"display"`
	Change  float64 `json:"change"`
}

type TransactionStatus string

const (
	TransactionCompleted  TransactionStatus = "Completed"
	TransactionProcessing TransactionStatus = "Processing"
	TransactionFailed     TransactionStatus = "Failed"
)

type Transaction struct {
	ID       uuid.UUID         `json:"id"`
	Code     string            `json:"code"`
	Customer string            `json:"customer"`
	Amount   int64             `json:"amount"`
	Date     string            `json:"date"`
	Status   TransactionStatus `json:"status"`
}

// Point is one bar of a revenue chart.
type Point struct {
	Label   string `json:"name"`
	Revenue int64  `json:"revenue"`
	Sales   int    `json:"sales"`
}

type Service struct {
	sales SaleLister
	users UserLister
	now   func() time.Time
}

func NewService(sales SaleLister, users UserLister) *Service {
	return &Service{sales: sales, users: users, now: time.Now}
}

// Stats returns the Total Revenue, Total Sales, Avg. Order and Total Users
// cards. Only paid sales count as revenue.
func (s *Service) Stats(ctx context.Context) ([]Stat, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	users, err := s.users.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}

	cur, prev := monthBounds(s.now())

	var revenue, count int64

	var thisMonth, lastMonth tally

	for _, sl := range sales {
		if sl.Status != sale.StatusPaid {
			continue
		}

		revenue += sl.Total
		count++

		switch {
		case !sl.IssuedAt.Before(cur):
			thisMonth.add(sl.Total)
		case !sl.IssuedAt.Before(prev):
			lastMonth.add(sl.Total)
		}
	}

	var newUsers, prevUsers int64

	for _, u := range users {
		switch {
		case !u.CreatedAt.Before(cur):
			newUsers++
		case !u.CreatedAt.Before(prev):
			prevUsers++
		}
	}

	avg := average(revenue, count)

	return []Stat{
		{Label: "Total Revenue", Value: revenue, Display: money.Rupiah(revenue), Change: change(thisMonth.revenue, lastMonth.revenue)},
		{Label: "Total Sales", Value: count, Display: money.Number(count), Change: change(thisMonth.count, lastMonth.count)},
		{Label: "Avg. Order", Value: avg, Display: money.Rupiah(avg), Change: change(thisMonth.average(), lastMonth.average())},
		{Label: "Total Users", Value: int64(len(users)), Display: money.Number(int64(len(users))), Change: change(newUsers, prevUsers)},
	}, nil
}

// RecentTransactions returns the newest sales, at most RecentLimit.
func (s *Service) RecentTransactions(ctx context.Context) ([]Transaction, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	out := make([]Transaction, 0, RecentLimit)

	for _, sl := range sales[:min(RecentLimit, len(sales))] {
		customer := sl.Customer
		if customer == "" {
			customer = walkInCustomer
		}

		status := TransactionProcessing
		if sl.Status == sale.StatusPaid {
			status = TransactionCompleted
		}

		out = append(out, Transaction{
			ID:       sl.ID,
			Code:     sl.Code,
			Customer: customer,
			Amount:   sl.Total,
			Date:     sl.Date(),
			Status:   status,
		})
	}

	return out, nil
}

// RevenueByWeekday sums paid sales of the trailing seven days, Monday first.
func (s *Service) RevenueByWeekday(ctx context.Context) ([]Point, error) {
	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	since := today.AddDate(0, 0, -6)

	points := make([]Point, 7)
	for i := range points {
		points[i].Label = time.Weekday((i + 1) % 7).String()[:3]
	}

	for _, sl := range sales {
		if sl.Status != sale.StatusPaid || sl.IssuedAt.Before(since) || sl.IssuedAt.After(now) {
			continue
		}

		i := (int(sl.IssuedAt.In(now.Location()).Weekday()) + 6) % 7
		points[i].Revenue += sl.Total
		points[i].Sales++
	}

	return points, nil
}

// RevenueByMonth sums paid sales per calendar month for the trailing months
// (the current one included), oldest first.
func (s *Service) RevenueByMonth(ctx context.Context, months int) ([]Point, error) {
	if months <= 0 {
		months = DefaultMonths
	}

	sales, err := s.sales.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}

	cur, _ := monthBounds(s.now())
	first := cur.AddDate(0, -(months - 1), 0)

	points := make([]Point, months)
	for i := range points {
		points[i].Label = first.AddDate(0, i, 0).Format("Jan")
	}

	loc := cur.Location()

	for _, sl := range sales {
		at := sl.IssuedAt.In(loc)
		if sl.Status != sale.StatusPaid || at.Before(first) {
			continue
		}

		i := (at.Year()-first.Year())*12 + int(at.Month()) - int(first.Month())
		if i >= months {
			continue
		}

		points[i].Revenue += sl.Total
		points[i].Sales++
	}

	return points, nil
}

type tally struct {
	revenue int64
	count   int64
}

func (t *tally) add(total int64) {
	t.revenue += total
	t.count++
}

func (t tally) average() int64 {
	return average(t.revenue, t.count)
}

func average(total, n int64) int64 {
	if n == 0 {
		return 0
	}

	return decimal.NewFromInt(total).Div(decimal.NewFromInt(n)).Round(0).IntPart()
}

// change is the percent difference from prev to cur. Growth from nothing is
// reported as 100%.
func change(cur, prev int64) float64 {
	if prev == 0 {
		if cur == 0 {
			return 0
		}

		return 100
	}

	pct := decimal.NewFromInt(cur - prev).Mul(decimal.NewFromInt(100)).Div(decimal.NewFromInt(prev)).Round(1)

	return pct.InexactFloat64()
}

// monthBounds returns the start of now's month and of the month before.
func monthBounds(now time.Time) (cur, prev time.Time) {
	cur = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return cur, cur.AddDate(0, -1, 0)
}
