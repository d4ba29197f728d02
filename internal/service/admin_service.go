package service

import (
	"context"
	"log/slog"

	"github.com/ecosmart-shop/catalog-api/internal/analytics"
	"github.com/ecosmart-shop/catalog-api/internal/repository"
	"github.com/ecosmart-shop/catalog-api/internal/rewards"
)

// topUsersLimit is how many leaderboard rows the dashboard shows.
const topUsersLimit = 5

// invalidator is implemented by cached repositories.
type invalidator interface {
	Invalidate(ctx context.Context) error
}

// AdminService backs the admin dashboard.
type AdminService struct {
	repo   repository.ProductRepository
	ledger *rewards.Ledger
	logger *slog.Logger
}

func NewAdminService(repo repository.ProductRepository, ledger *rewards.Ledger, logger *slog.Logger) *AdminService {
	return &AdminService{repo: repo, ledger: ledger, logger: logger}
}

// Overview summarizes the catalog and the points leaderboard.
func (s *AdminService) Overview(ctx context.Context) (analytics.Overview, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return analytics.Overview{}, err
	}

	o := analytics.Summarize(products)
	if s.ledger != nil {
		o.TopUsers = s.ledger.TopUsers(ctx, topUsersLimit)
	}
	return o, nil
}

// InvalidateCatalog drops any cached catalog snapshot. It reports whether the
// repository had a cache to drop.
func (s *AdminService) InvalidateCatalog(ctx context.Context) (bool, error) {
	inv, ok := s.repo.(invalidator)
	if !ok {
		return false, nil
	}
	if err := inv.Invalidate(ctx); err != nil {
		return false, err
	}
	s.logger.Info("catalog snapshot invalidated")
	return true, nil
}
