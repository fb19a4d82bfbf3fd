package store

import (
	"context"
	"fmt"
)

const schema = `
create table if not exists snapshots (
	id uuid primary key,
	updated_at timestamptz not null,
	total int not null default 0,
	merged int not null default 0,
	dropped int not null default 0,
	created_at timestamptz not null default now()
);

create table if not exists resources (
	id bigserial primary key,
	snapshot_id uuid not null references snapshots (id) on delete cascade,
	category text not null default '',
	tax_id text not null default '',
	person_tax_id text not null default '',
	name text not null default '',
	provider text not null default '',
	contractor text not null default '',
	client text not null default '',
	building text not null default '',
	plate text not null default '',
	make text not null default '',
	model text not null default '',
	status text not null default '',
	notes text not null default '',
	last_updated text not null default '',
	merged_count int not null default 0
);

create index if not exists resources_snapshot_id_idx on resources (snapshot_id);
`

// EnsureSchema creates the tables on first run.
func (s *store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
