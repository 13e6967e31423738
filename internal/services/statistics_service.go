package services

import (
	"fmt"

	"github.com/klsociety/governance-records-api/internal/authz"
	"github.com/klsociety/governance-records-api/internal/repository"
)

// StatisticsService returns visibility-scoped entity counts for the
// dashboard.
type StatisticsService struct {
	statsRepo repository.StatisticsRepository
	resolver  *authz.Resolver
}

// NewStatisticsService creates a new StatisticsService.
func NewStatisticsService(statsRepo repository.StatisticsRepository, resolver *authz.Resolver) *StatisticsService {
	return &StatisticsService{
		statsRepo: statsRepo,
		resolver:  resolver,
	}
}

// GetStatistics returns entity counts within the caller's scope.
func (s *StatisticsService) GetStatistics(identity authz.Identity) (*repository.Statistics, error) {
	scope, err := s.resolver.Scope(identity)
	if err != nil {
		return nil, err
	}

	stats, err := s.statsRepo.Counts(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to compute statistics: %w", err)
	}

	return stats, nil
}
