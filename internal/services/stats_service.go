package services

import (
	"context"
	"time"

	"github.com/elamirpay/backend/internal/repository"
)

// StatsService derives dashboard figures from the user directory and
// the order log. Everything is recomputed on each call; the corpus is
// small and stays that way.
type StatsService struct {
	repos *repository.Repositories
	now   func() time.Time
}

// Stats is the admin dashboard payload. Revenue counts service fees
// only, never the recharge amounts themselves.
type Stats struct {
	TotalUsers   int   `json:"totalUsers"`
	TotalOrders  int   `json:"totalOrders"`
	TotalRevenue int64 `json:"totalRevenue"`
	TodayOrders  int   `json:"todayOrders"`
}

func NewStatsService(repos *repository.Repositories) *StatsService {
	return &StatsService{repos: repos, now: time.Now}
}

func (s *StatsService) Compute(ctx context.Context) (Stats, error) {
	s.repos.RLock()
	defer s.repos.RUnlock()

	users, err := s.repos.Users.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	orders, err := s.repos.Orders.List(ctx)
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{
		TotalUsers:  len(users),
		TotalOrders: len(orders),
	}

	year, month, day := s.now().Date()
	for _, order := range orders {
		stats.TotalRevenue += order.Fee
		oy, om, od := order.Date.Local().Date()
		if oy == year && om == month && od == day {
			stats.TodayOrders++
		}
	}
	return stats, nil
}
