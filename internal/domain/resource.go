package domain

import "time"

// Resource is one scraped contractor/worker/vehicle row. All fields are
// optional free text except where the consolidator requires them for an
// identity key. JSON tags follow the scraped recursos_data.json file.
type Resource struct {
	Category    string `json:"categoria,omitempty" db:"category"`
	TaxID       string `json:"cuit,omitempty" db:"tax_id"`
	PersonTaxID string `json:"cuil,omitempty" db:"person_tax_id"`
	Name        string `json:"nombre,omitempty" db:"name"`
	Provider    string `json:"proveedor,omitempty" db:"provider"`
	Contractor  string `json:"contratista,omitempty" db:"contractor"`
	Client      string `json:"cliente,omitempty" db:"client"`
	Building    string `json:"edificio,omitempty" db:"building"`
	Plate       string `json:"dominio,omitempty" db:"plate"`
	Make        string `json:"marca,omitempty" db:"make"`
	Model       string `json:"modelo,omitempty" db:"model"`
	Status      string `json:"estado,omitempty" db:"status"`
	Notes       string `json:"observaciones,omitempty" db:"notes"`
	LastUpdated string `json:"fecha_actualizacion,omitempty" db:"last_updated"`

	// MergedCount is set by consolidation: the number of raw records folded
	// into this one. Zero means the record was never part of a merge.
	MergedCount int `json:"recursos_consolidados,omitempty" db:"merged_count"`

	// Extra keeps category-specific columns the scraper found but the core
	// does not interpret.
	Extra map[string]string `json:"extra,omitempty" db:"-"`
}

// Clone returns a copy safe to mutate without touching the original.
func (r *Resource) Clone() *Resource {
	clone := *r
	if r.Extra != nil {
		clone.Extra = make(map[string]string, len(r.Extra))
		for k, v := range r.Extra {
			clone.Extra[k] = v
		}
	}
	return &clone
}

// FoldedCount is MergedCount with the implicit 1 for untouched records.
func (r *Resource) FoldedCount() int {
	if r.MergedCount == 0 {
		return 1
	}
	return r.MergedCount
}

// Snapshot is one scraping run: the full record list plus its timestamp.
// Each run overwrites the previous file, so a snapshot is always self-contained.
type Snapshot struct {
	ID        string      `json:"-" db:"id"`
	Resources []*Resource `json:"recursos" db:"-"`
	UpdatedAt time.Time   `json:"fecha_actualizacion" db:"updated_at"`
	Total     int         `json:"total_recursos" db:"total"`

	// Merged and Dropped are the consolidation counters for this run.
	Merged  int `json:"-" db:"merged"`
	Dropped int `json:"-" db:"dropped"`
}

type Category int

const (
	CategoryUnknown Category = iota
	CategoryContractor
	CategoryWorker
	CategoryVehicle
)

func (c Category) String() string {
	switch c {
	case CategoryContractor:
		return "contractor"
	case CategoryWorker:
		return "worker"
	case CategoryVehicle:
		return "vehicle"
	default:
		return "unknown"
	}
}
