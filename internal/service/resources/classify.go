package resources

import (
	"strings"

	"github.com/obrastat/obrastat/internal/domain"
)

// Category and status are free text scraped from the portal. Both resolve
// through ordered substring rules, first match wins. The order is load
// bearing: "inhabilitado" contains "habilitado", so the negated terms run
// before anything that could read as enabled.

type categoryRule struct {
	terms    []string
	category domain.Category
}

var categoryRules = []categoryRule{
	{terms: []string{"grupo", "proveedor", "contratista"}, category: domain.CategoryContractor},
	{terms: []string{"persona", "trabajador"}, category: domain.CategoryWorker},
	{terms: []string{"veh", "maquin"}, category: domain.CategoryVehicle},
}

// ClassifyCategory resolves the free-text category of a record.
func ClassifyCategory(category string) domain.Category {
	lower := strings.ToLower(category)
	for _, rule := range categoryRules {
		if containsAny(lower, rule.terms) {
			return rule.category
		}
	}
	return domain.CategoryUnknown
}

type statusRule struct {
	terms  []string
	bucket domain.Bucket
}

var statusRules = []statusRule{
	{terms: []string{"inhabilit", "no habilit", "rechaz", "baja"}, bucket: domain.BucketBlocked},
	{terms: []string{"bloqueado", "bloquea", "inactivo", "vencido", "bloqueada", "inactiva", "vencida", "suspendido", "suspendida"}, bucket: domain.BucketBlocked},
	// the conditional terms match accent-insensitively, so the accented
	// spellings are listed alongside the plain ones
	{terms: []string{"condicion", "condición", "pendiente", "observacion", "observación", "condicionada", "observada", "revision", "revisión"}, bucket: domain.BucketConditional},
}

// ClassifyStatus maps a raw status string to its compliance bucket. A status
// matching no rule counts as enabled.
func ClassifyStatus(status string) domain.Bucket {
	lower := strings.ToLower(status)
	for _, rule := range statusRules {
		if containsAny(lower, rule.terms) {
			return rule.bucket
		}
	}
	return domain.BucketEnabled
}

func containsAny(s string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}
