package resources

import (
	"testing"

	"github.com/obrastat/obrastat/internal/domain"
)

func TestAggregateBuckets(t *testing.T) {
	records := []*domain.Resource{
		{Client: "X", Status: "inhabilitado"},
		{Client: "X", Status: "condicionado"},
		{Client: "X", Status: "vigente"},
	}

	stats := Aggregate(records)
	if stats.Overall.Blocked != 1 || stats.Overall.Conditional != 1 || stats.Overall.Enabled != 1 {
		t.Fatalf("overall buckets = %+v, want 1/1/1", stats.Overall)
	}
	if stats.ByStatus["inhabilitado"] != 1 || stats.ByStatus["vigente"] != 1 {
		t.Errorf("flat status counts wrong: %v", stats.ByStatus)
	}
}

func TestAggregateBucketSumEqualsTotal(t *testing.T) {
	records := []*domain.Resource{
		{Status: "habilitado"},
		{Status: "HABILITADO VIGENTE"},
		{Status: "no habilitado"},
		{Status: "suspendida"},
		{Status: "pendiente de revision"},
		{Status: ""},
		{Status: "vencido pero habilitado"}, // rule order is normative: blocked
	}

	stats := Aggregate(records)
	if got := stats.Overall.Sum(); got != stats.Total {
		t.Fatalf("bucket sum %d != total %d", got, stats.Total)
	}
	if stats.Overall.Blocked != 3 {
		t.Errorf("blocked = %d, want 3", stats.Overall.Blocked)
	}
	if stats.Overall.Conditional != 1 {
		t.Errorf("conditional = %d, want 1", stats.Overall.Conditional)
	}
	if stats.Overall.Enabled != 3 {
		t.Errorf("enabled = %d, want 3", stats.Overall.Enabled)
	}
}

func TestAggregateDefaultFilling(t *testing.T) {
	records := []*domain.Resource{
		{Contractor: "ACME", Status: "habilitado"},
		{Status: "habilitado"},
		{Client: "Desconocido", Contractor: "OTRO", Status: "habilitado"},
	}

	stats := Aggregate(records)
	if stats.ByClient["ACME"] != 1 {
		t.Errorf("client not filled from contractor: %v", stats.ByClient)
	}
	if stats.ByClient["Sin Cliente"] != 1 || stats.ByContractor["Sin Contratista"] != 1 {
		t.Errorf("empty record not defaulted: clients=%v contractors=%v", stats.ByClient, stats.ByContractor)
	}
	if stats.ByClient["OTRO"] != 1 {
		t.Errorf("placeholder Desconocido not treated as missing: %v", stats.ByClient)
	}
	if stats.ByBuilding["Sin especificar"] != 3 {
		t.Errorf("building default missing: %v", stats.ByBuilding)
	}
}

func TestAggregatePlaceholderNeverSurvivesFilling(t *testing.T) {
	records := []*domain.Resource{
		{Client: "Desconocido", Status: "habilitado"},
		{Contractor: "Desconocido", Status: "habilitado"},
	}

	stats := Aggregate(records)
	if n := stats.ByClient["Desconocido"] + stats.ByContractor["Desconocido"]; n != 0 {
		t.Fatalf("placeholder leaked through default-filling: clients=%v contractors=%v",
			stats.ByClient, stats.ByContractor)
	}
	if stats.ByClient["Sin Cliente"] != 2 || stats.ByContractor["Sin Contratista"] != 2 {
		t.Errorf("placeholder records not defaulted: clients=%v contractors=%v",
			stats.ByClient, stats.ByContractor)
	}
}

func TestAggregateContractorFallsBackToClient(t *testing.T) {
	stats := Aggregate([]*domain.Resource{
		{Client: "Consorcio Norte", Status: "habilitado"},
	})
	if stats.ByContractor["Consorcio Norte"] != 1 {
		t.Fatalf("contractor not filled from client: %v", stats.ByContractor)
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	stats := Aggregate(nil)
	if stats.Total != 0 {
		t.Errorf("total = %d, want 0", stats.Total)
	}
	if stats.Overall != (domain.BucketCounts{}) {
		t.Errorf("overall = %+v, want zeros", stats.Overall)
	}
	if len(stats.ByClientKPI) != 0 || stats.ByClientKPI == nil {
		t.Errorf("by-client KPIs must be empty, non-nil: %v", stats.ByClientKPI)
	}
	if stats.ComplianceRate != 0 {
		t.Errorf("compliance rate = %v, want 0", stats.ComplianceRate)
	}
}

func TestAggregateNestedRollup(t *testing.T) {
	records := []*domain.Resource{
		{Client: "X", Building: "B1", Status: "habilitado"},
		{Client: "X", Building: "B1", Status: "bloqueado"},
		{Client: "X", Building: "B2", Status: "habilitado"},
		{Client: "Y", Building: "B1", Status: "condicionado"},
	}

	stats := Aggregate(records)

	x := stats.ByClientKPI["X"]
	if x == nil || x.Total != 3 {
		t.Fatalf("client X KPI = %+v, want total 3", x)
	}
	if x.Buckets.Enabled != 2 || x.Buckets.Blocked != 1 {
		t.Errorf("client X buckets = %+v", x.Buckets)
	}
	if x.ComplianceRate != 66.7 {
		t.Errorf("client X compliance rate = %v, want 66.7", x.ComplianceRate)
	}

	b1 := x.Buildings["B1"]
	if b1 == nil || b1.Total != 2 || b1.Buckets.Enabled != 1 || b1.Buckets.Blocked != 1 {
		t.Fatalf("building B1 KPI = %+v", b1)
	}
	if b1.ComplianceRate != 50 {
		t.Errorf("building B1 compliance rate = %v, want 50", b1.ComplianceRate)
	}

	y := stats.ByClientKPI["Y"]
	if y == nil || y.Total != 1 || y.Buckets.Conditional != 1 {
		t.Fatalf("client Y KPI = %+v", y)
	}

	// 2 enabled of 4 records overall
	if stats.ComplianceRate != 50 {
		t.Errorf("overall compliance rate = %v, want 50", stats.ComplianceRate)
	}
}

func TestAggregateDoesNotMutateInput(t *testing.T) {
	record := &domain.Resource{Contractor: "ACME", Status: "habilitado"}
	Aggregate([]*domain.Resource{record})

	if record.Client != "" || record.Building != "" {
		t.Fatalf("input mutated: client=%q building=%q", record.Client, record.Building)
	}
}

func TestClassifyStatusOrder(t *testing.T) {
	tests := []struct {
		status string
		want   domain.Bucket
	}{
		{"habilitado", domain.BucketEnabled},
		{"Habilitado Vigente", domain.BucketEnabled},
		{"", domain.BucketEnabled},
		{"inhabilitado", domain.BucketBlocked},
		{"NO HABILITADO", domain.BucketBlocked},
		{"rechazado", domain.BucketBlocked},
		{"dado de baja", domain.BucketBlocked},
		{"bloqueada", domain.BucketBlocked},
		{"inactivo", domain.BucketBlocked},
		{"vencida", domain.BucketBlocked},
		{"suspendido", domain.BucketBlocked},
		{"condicionado", domain.BucketConditional},
		{"pendiente", domain.BucketConditional},
		{"en observación", domain.BucketConditional},
		{"observacion", domain.BucketConditional},
		{"en revisión", domain.BucketConditional},
		{"vencido pero habilitado", domain.BucketBlocked},
	}

	for _, tt := range tests {
		if got := ClassifyStatus(tt.status); got != tt.want {
			t.Errorf("ClassifyStatus(%q) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		category string
		want     domain.Category
	}{
		{"Contratista", domain.CategoryContractor},
		{"Grupo / Proveedor", domain.CategoryContractor},
		{"Persona", domain.CategoryWorker},
		{"trabajador de obra", domain.CategoryWorker},
		{"Vehículo", domain.CategoryVehicle},
		{"Maquinaria pesada", domain.CategoryVehicle},
		{"", domain.CategoryUnknown},
		{"equipo", domain.CategoryUnknown},
		// contractor terms win over worker terms when both appear
		{"proveedor de personas", domain.CategoryContractor},
	}

	for _, tt := range tests {
		if got := ClassifyCategory(tt.category); got != tt.want {
			t.Errorf("ClassifyCategory(%q) = %v, want %v", tt.category, got, tt.want)
		}
	}
}
