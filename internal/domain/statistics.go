package domain

// Bucket is one of the three mutually exclusive compliance classifications
// a record's status string resolves to.
type Bucket int

const (
	BucketEnabled Bucket = iota
	BucketBlocked
	BucketConditional
)

func (b Bucket) String() string {
	switch b {
	case BucketBlocked:
		return "blocked"
	case BucketConditional:
		return "conditional"
	default:
		return "enabled"
	}
}

// BucketCounts holds per-bucket totals. JSON keys follow the dashboard feed.
type BucketCounts struct {
	Enabled     int `json:"habilitados"`
	Blocked     int `json:"bloqueados"`
	Conditional int `json:"condicionados"`
}

// Add increments the counter matching b.
func (c *BucketCounts) Add(b Bucket) {
	switch b {
	case BucketBlocked:
		c.Blocked++
	case BucketConditional:
		c.Conditional++
	default:
		c.Enabled++
	}
}

// Sum is the number of records counted across all buckets.
func (c BucketCounts) Sum() int {
	return c.Enabled + c.Blocked + c.Conditional
}

// BuildingKPI is the per-building slice of a client's KPIs.
type BuildingKPI struct {
	Total   int          `json:"total"`
	Buckets BucketCounts `json:"kpis"`
	// ComplianceRate is the enabled share of Total, percent, 1 decimal.
	ComplianceRate float64 `json:"tasa_cumplimiento"`
}

// ClientKPI is the per-client rollup, with a nested per-building breakdown.
type ClientKPI struct {
	Total          int                     `json:"total"`
	Buckets        BucketCounts            `json:"kpis"`
	ComplianceRate float64                 `json:"tasa_cumplimiento"`
	Buildings      map[string]*BuildingKPI `json:"edificios"`
}

// Statistics is the aggregate over one consolidated record list. It is built
// fresh on every aggregation run and never mutated afterwards.
type Statistics struct {
	Total          int                   `json:"total"`
	ByClient       map[string]int        `json:"por_cliente"`
	ByContractor   map[string]int        `json:"por_contratista"`
	ByStatus       map[string]int        `json:"por_estado"`
	ByBuilding     map[string]int        `json:"por_edificio"`
	Overall        BucketCounts          `json:"kpis_generales"`
	ComplianceRate float64               `json:"tasa_cumplimiento"`
	ByClientKPI    map[string]*ClientKPI `json:"kpis_por_cliente"`
}
