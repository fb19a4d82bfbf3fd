package resources

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/obrastat/obrastat/internal/domain"
)

const (
	// placeholderUnknown is what the scraper writes when it could not tell
	// who a record belongs to; it counts as missing here.
	placeholderUnknown = "Desconocido"
	defaultClient      = "Sin Cliente"
	defaultContractor  = "Sin Contratista"
	defaultBuilding    = "Sin especificar"
)

// Aggregate classifies every record into a compliance bucket and rolls the
// counts up overall, per client and per building. Pure: default-filling
// happens on clones, the input records are never mutated.
func Aggregate(records []*domain.Resource) *domain.Statistics {
	stats := &domain.Statistics{
		ByClient:     make(map[string]int),
		ByContractor: make(map[string]int),
		ByStatus:     make(map[string]int),
		ByBuilding:   make(map[string]int),
		ByClientKPI:  make(map[string]*domain.ClientKPI),
	}

	for _, record := range records {
		rec := record.Clone()
		fillDefaults(rec)

		bucket := ClassifyStatus(rec.Status)

		stats.Total++
		stats.ByClient[rec.Client]++
		stats.ByContractor[rec.Contractor]++
		stats.ByStatus[strings.ToLower(rec.Status)]++
		stats.ByBuilding[rec.Building]++
		stats.Overall.Add(bucket)

		client, ok := stats.ByClientKPI[rec.Client]
		if !ok {
			client = &domain.ClientKPI{Buildings: make(map[string]*domain.BuildingKPI)}
			stats.ByClientKPI[rec.Client] = client
		}
		client.Total++
		client.Buckets.Add(bucket)

		building, ok := client.Buildings[rec.Building]
		if !ok {
			building = &domain.BuildingKPI{}
			client.Buildings[rec.Building] = building
		}
		building.Total++
		building.Buckets.Add(bucket)
	}

	stats.ComplianceRate = complianceRate(stats.Overall.Enabled, stats.Total)
	for _, client := range stats.ByClientKPI {
		client.ComplianceRate = complianceRate(client.Buckets.Enabled, client.Total)
		for _, building := range client.Buildings {
			building.ComplianceRate = complianceRate(building.Buckets.Enabled, building.Total)
		}
	}

	return stats
}

// fillDefaults substitutes the cross defaults: a missing client falls back
// to the contractor and vice versa, a missing building to "Sin especificar".
// Both fallbacks read the values as they arrived, not the filled ones, so a
// record missing both ends up with the two literals. "Desconocido" counts as
// missing on the fallback side too: the placeholder never survives filling.
func fillDefaults(rec *domain.Resource) {
	client, contractor := rec.Client, rec.Contractor
	if missing(client) {
		rec.Client = fallback(contractor, defaultClient)
	}
	if missing(contractor) {
		rec.Contractor = fallback(client, defaultContractor)
	}
	if missing(rec.Building) {
		rec.Building = defaultBuilding
	}
}

func missing(v string) bool {
	return v == "" || v == placeholderUnknown
}

func fallback(v, def string) string {
	if missing(v) {
		return def
	}
	return v
}

func complianceRate(enabled, total int) float64 {
	if total == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(enabled)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}
