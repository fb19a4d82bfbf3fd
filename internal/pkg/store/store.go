package store

import (
	"context"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	EnsureSchema(ctx context.Context) error
	InsertSnapshot(ctx context.Context, snapshot *domain.Snapshot) error
	LatestSnapshot(ctx context.Context) (*domain.Snapshot, error)
	ListResources(ctx context.Context, opts ListResourcesOpts) ([]*domain.Resource, error)
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool}
}
