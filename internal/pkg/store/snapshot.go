package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/logger"
	"github.com/obrastat/obrastat/internal/pkg/store/xpgx"
)

var snapshotColumns = []string{"id", "updated_at", "total", "merged", "dropped"}

// InsertSnapshot stores one scraping run: its metadata row plus every
// consolidated record tied to it.
func (s *store) InsertSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	query := builder().Insert(tableSnapshots).
		Columns(snapshotColumns...).
		Values(snapshot.ID, snapshot.UpdatedAt, snapshot.Total, snapshot.Merged, snapshot.Dropped).
		Suffix(`on conflict (id) do update set updated_at=excluded.updated_at, total=excluded.total, merged=excluded.merged, dropped=excluded.dropped`)

	if _, err := s.pool.Execx(ctx, query); err != nil {
		logger.Errorf(ctx, "insertSnapshot: %s", err.Error())
		return fmt.Errorf("insertSnapshot: %w", err)
	}

	if err := s.insertResources(ctx, snapshot.ID, snapshot.Resources); err != nil {
		logger.Errorf(ctx, "insertResources: %s", err.Error())
		return fmt.Errorf("insertResources, snapshot_id-%s: %w", snapshot.ID, err)
	}

	return nil
}

func (s *store) LatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	query := builder().Select(snapshotColumns...).
		From(tableSnapshots).
		OrderBy("updated_at desc").
		Limit(1)

	selected, err := xpgx.Get[domain.Snapshot](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) latestSnapshotID() sq.Sqlizer {
	return sq.Expr(fmt.Sprintf("snapshot_id = (select id from %s order by updated_at desc limit 1)", tableSnapshots))
}
