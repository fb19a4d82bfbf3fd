// Package source reads and writes the scraped snapshot file
// (recursos_data.json shape). Every scraping run overwrites the whole file,
// so loading never accumulates records from older runs.
package source

import (
	"context"
	"os"
	"time"

	"github.com/bytedance/sonic"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/logger"
)

// Load reads one scraping run from path. A missing or unreadable file is not
// an error: the caller gets an empty snapshot stamped with the current time
// and the pipeline degrades to empty output.
func Load(ctx context.Context, path string) *domain.Snapshot {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf(ctx, "data file not readable: %s", err.Error())
		return emptySnapshot()
	}

	snapshot := new(domain.Snapshot)
	if err := sonic.Unmarshal(data, snapshot); err != nil {
		logger.Errorf(ctx, "failed to decode data file %s: %s", path, err.Error())
		return emptySnapshot()
	}

	if snapshot.Resources == nil {
		snapshot.Resources = []*domain.Resource{}
	}
	snapshot.Total = len(snapshot.Resources)
	if snapshot.UpdatedAt.IsZero() {
		snapshot.UpdatedAt = time.Now()
	}

	return snapshot
}

// Save writes the snapshot back in the same file shape.
func Save(ctx context.Context, path string, snapshot *domain.Snapshot) error {
	snapshot.Total = len(snapshot.Resources)

	data, err := sonic.ConfigDefault.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		logger.Errorf(ctx, "failed to write data file %s: %s", path, err.Error())
		return err
	}

	return nil
}

func emptySnapshot() *domain.Snapshot {
	return &domain.Snapshot{
		Resources: []*domain.Resource{},
		UpdatedAt: time.Now(),
	}
}
