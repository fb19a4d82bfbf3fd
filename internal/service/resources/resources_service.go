package resources

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/logger"
	"github.com/obrastat/obrastat/internal/pkg/store"
)

type Service struct {
	store store.Store
}

func NewResourcesService(store store.Store) *Service {
	return &Service{store: store}
}

// ImportSnapshot consolidates a raw snapshot and persists the result as the
// current run. Returns the consolidated snapshot.
func (s *Service) ImportSnapshot(ctx context.Context, snapshot *domain.Snapshot) (*domain.Snapshot, error) {
	res := Consolidate(snapshot.Resources)

	consolidated := &domain.Snapshot{
		ID:        snapshot.ID,
		Resources: res.Records,
		UpdatedAt: snapshot.UpdatedAt,
		Total:     len(res.Records),
		Merged:    res.Merged,
		Dropped:   res.Dropped,
	}
	if consolidated.ID == "" {
		consolidated.ID = uuid.NewString()
	}
	if consolidated.UpdatedAt.IsZero() {
		consolidated.UpdatedAt = time.Now()
	}

	if res.Merged > 0 || res.Dropped > 0 {
		logger.Infof(ctx, "consolidation done: %d unique resources from %d raw (merged-%d, dropped-%d)",
			len(res.Records), len(snapshot.Resources), res.Merged, res.Dropped)
	}

	if err := s.store.InsertSnapshot(ctx, consolidated); err != nil {
		return nil, fmt.Errorf("store.InsertSnapshot: %w", err)
	}

	return consolidated, nil
}

func (s *Service) ListResources(ctx context.Context, opts store.ListResourcesOpts) ([]*domain.Resource, error) {
	resources, err := s.store.ListResources(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("store.ListResources: %w", err)
	}

	return resources, nil
}

// GetStatistics aggregates the latest stored run.
func (s *Service) GetStatistics(ctx context.Context) (*domain.Statistics, error) {
	resources, err := s.store.ListResources(ctx, store.ListResourcesOpts{})
	if err != nil {
		return nil, fmt.Errorf("store.ListResources: %w", err)
	}

	return Aggregate(resources), nil
}

// GetFilterOptions derives the distinct filter values from the latest run.
func (s *Service) GetFilterOptions(ctx context.Context) (*domain.FilterOptions, error) {
	stats, err := s.GetStatistics(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.FilterOptions{
		Clients:     sortedKeys(stats.ByClient),
		Contractors: sortedKeys(stats.ByContractor),
		Statuses:    sortedKeys(stats.ByStatus),
		Buildings:   sortedKeys(stats.ByBuilding),
	}, nil
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
