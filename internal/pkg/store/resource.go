package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/store/xpgx"
)

var resourceColumns = []string{
	"category", "tax_id", "person_tax_id", "name", "provider", "contractor",
	"client", "building", "plate", "make", "model", "status", "notes",
	"last_updated", "merged_count",
}

type ListResourcesOpts struct {
	// SnapshotID of the run to read; empty means the latest run.
	SnapshotID string
	Client     *string
	Contractor *string
	Building   *string
	Status     *string
}

func (s *store) insertResources(ctx context.Context, snapshotID string, resources []*domain.Resource) error {
	if len(resources) == 0 {
		return nil
	}

	query := builder().Insert(tableResources).
		Columns(append([]string{"snapshot_id"}, resourceColumns...)...)

	for _, r := range resources {
		query = query.Values(
			snapshotID, r.Category, r.TaxID, r.PersonTaxID, r.Name, r.Provider,
			r.Contractor, r.Client, r.Building, r.Plate, r.Make, r.Model,
			r.Status, r.Notes, r.LastUpdated, r.MergedCount,
		)
	}

	if _, err := s.pool.Execx(ctx, query); err != nil {
		return err
	}

	return nil
}

func (s *store) ListResources(ctx context.Context, opts ListResourcesOpts) ([]*domain.Resource, error) {
	query := builder().Select(resourceColumns...).
		From(tableResources).
		OrderBy("id")

	if opts.SnapshotID != "" {
		query = query.Where(sq.Eq{"snapshot_id": opts.SnapshotID})
	} else {
		query = query.Where(s.latestSnapshotID())
	}

	if opts.Client != nil {
		query = query.Where(sq.ILike{"client": "%" + *opts.Client + "%"})
	}
	if opts.Contractor != nil {
		query = query.Where(sq.ILike{"contractor": "%" + *opts.Contractor + "%"})
	}
	if opts.Building != nil {
		query = query.Where(sq.ILike{"building": "%" + *opts.Building + "%"})
	}
	if opts.Status != nil {
		query = query.Where(sq.ILike{"status": "%" + *opts.Status + "%"})
	}

	selected, err := xpgx.Select[domain.Resource](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
