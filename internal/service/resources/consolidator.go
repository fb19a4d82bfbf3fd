package resources

import (
	"strings"

	"github.com/obrastat/obrastat/internal/domain"
)

const (
	keySeparator = "|"
	// placeholder is the literal the scraper writes for cells it could not
	// read; it carries no identity signal.
	placeholder = "None"
	minKeyParts = 2
)

// ConsolidateResult is the deduplicated record list plus the merge/drop
// counters the caller logs.
type ConsolidateResult struct {
	Records []*domain.Resource
	Merged  int
	Dropped int
}

// Consolidate folds raw records describing the same real-world entity into
// one. Output keeps the insertion order of the first record seen per
// identity key. Records without enough identity signal are dropped, never
// merged or counted. The input slice is not mutated.
func Consolidate(records []*domain.Resource) ConsolidateResult {
	res := ConsolidateResult{Records: make([]*domain.Resource, 0, len(records))}
	byKey := make(map[string]*domain.Resource, len(records))

	for _, record := range records {
		key, ok := identityKey(record)
		if !ok {
			res.Dropped++
			continue
		}

		existing, seen := byKey[key]
		if !seen {
			clone := record.Clone()
			byKey[key] = clone
			res.Records = append(res.Records, clone)
			continue
		}

		merge(existing, record)
		res.Merged++
	}

	return res
}

// identityKey builds the grouping key for a record. Which fields make up
// the key depends on the category; empty and placeholder components are
// filtered out and at least two must survive, otherwise the record has no
// usable identity.
func identityKey(record *domain.Resource) (string, bool) {
	taxID := strings.TrimSpace(record.TaxID)
	if taxID == "" {
		taxID = strings.TrimSpace(record.PersonTaxID)
	}
	name := normalizeUpper(record.Name)
	provider := normalizeUpper(record.Provider)
	client := normalizeUpper(record.Client)
	building := strings.TrimSpace(record.Building)
	plate := normalizeUpper(record.Plate)
	vehicleMake := normalizeUpper(record.Make)
	vehicleModel := normalizeUpper(record.Model)

	var candidates []string
	switch ClassifyCategory(record.Category) {
	case domain.CategoryContractor:
		if !validComponent(taxID) {
			return "", false
		}
		candidates = []string{taxID, provider, client, building}
	case domain.CategoryWorker:
		if !validComponent(taxID) || !validComponent(name) {
			return "", false
		}
		candidates = []string{taxID, name, provider, client, building}
	case domain.CategoryVehicle:
		if !validComponent(plate) {
			return "", false
		}
		candidates = []string{plate, vehicleMake, vehicleModel, provider, client, building}
	default:
		candidates = []string{taxID, name, provider, client, building, plate, vehicleMake, vehicleModel}
	}

	parts := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if validComponent(c) {
			parts = append(parts, c)
		}
	}
	if len(parts) < minKeyParts {
		return "", false
	}

	return strings.Join(parts, keySeparator), true
}

// merge folds record into existing: missing metadata is filled in and the
// status only ever moves toward the more favorable value
// (habilitado > condicionado > bloqueado).
func merge(existing, record *domain.Resource) {
	if existing.Notes == "" && record.Notes != "" {
		existing.Notes = record.Notes
	}
	if existing.LastUpdated == "" && record.LastUpdated != "" {
		existing.LastUpdated = record.LastUpdated
	}

	existingStatus := strings.ToLower(existing.Status)
	incomingStatus := strings.ToLower(record.Status)
	switch {
	case strings.Contains(incomingStatus, "habilit") && !strings.Contains(existingStatus, "habilit"):
		existing.Status = record.Status
	case strings.Contains(incomingStatus, "condicion") && strings.Contains(existingStatus, "bloque"):
		existing.Status = record.Status
	}

	if existing.MergedCount == 0 {
		existing.MergedCount = 1
	}
	existing.MergedCount++
}

func normalizeUpper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func validComponent(c string) bool {
	return c != "" && !strings.EqualFold(c, placeholder)
}
