package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/constants"
	"github.com/obrastat/obrastat/internal/pkg/store"
	"github.com/obrastat/obrastat/internal/service/resources"
	"github.com/obrastat/obrastat/internal/service/scraper"
)

type fakeStore struct {
	resources []*domain.Resource
	lastOpts  store.ListResourcesOpts
}

func (f *fakeStore) EnsureSchema(ctx context.Context) error { return nil }

func (f *fakeStore) InsertSnapshot(ctx context.Context, snapshot *domain.Snapshot) error {
	f.resources = snapshot.Resources
	return nil
}

func (f *fakeStore) LatestSnapshot(ctx context.Context) (*domain.Snapshot, error) {
	return nil, constants.ErrDBNotFound
}

func (f *fakeStore) ListResources(ctx context.Context, opts store.ListResourcesOpts) ([]*domain.Resource, error) {
	f.lastOpts = opts
	return f.resources, nil
}

func newTestController(resourcesList []*domain.Resource) (*Controller, *fakeStore) {
	fs := &fakeStore{resources: resourcesList}
	return NewController(resources.NewResourcesService(fs), scraper.NewScraperService()), fs
}

func request(t *testing.T, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetStatistics(t *testing.T) {
	cntrl, _ := newTestController([]*domain.Resource{
		{Client: "X", Building: "B1", Status: "habilitado"},
		{Client: "X", Building: "B1", Status: "inhabilitado"},
	})

	ctx, rec := request(t, "/api/v1/stats")
	if err := cntrl.GetStatistics(ctx); err != nil {
		t.Fatalf("GetStatistics: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var stats domain.Statistics
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.Total != 2 || stats.Overall.Enabled != 1 || stats.Overall.Blocked != 1 {
		t.Errorf("unexpected stats: %+v", stats)
	}
}

func TestGetFilterOptions(t *testing.T) {
	cntrl, _ := newTestController([]*domain.Resource{
		{Client: "X", Building: "B2", Status: "habilitado"},
		{Client: "A", Building: "B1", Status: "habilitado"},
	})

	ctx, rec := request(t, "/api/v1/stats/filters")
	if err := cntrl.GetFilterOptions(ctx); err != nil {
		t.Fatalf("GetFilterOptions: %v", err)
	}

	var filters domain.FilterOptions
	if err := json.Unmarshal(rec.Body.Bytes(), &filters); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(filters.Clients) != 2 || filters.Clients[0] != "A" {
		t.Errorf("clients not sorted: %v", filters.Clients)
	}
	if len(filters.Buildings) != 2 || filters.Buildings[0] != "B1" {
		t.Errorf("buildings not sorted: %v", filters.Buildings)
	}
}

func TestListResourcesPassesFilters(t *testing.T) {
	cntrl, fs := newTestController(nil)

	ctx, rec := request(t, "/api/v1/resources/list?cliente=ACME&edificio=B1")
	if err := cntrl.ListResources(ctx); err != nil {
		t.Fatalf("ListResources: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	if fs.lastOpts.Client == nil || *fs.lastOpts.Client != "ACME" {
		t.Errorf("client filter not passed: %+v", fs.lastOpts)
	}
	if fs.lastOpts.Building == nil || *fs.lastOpts.Building != "B1" {
		t.Errorf("building filter not passed: %+v", fs.lastOpts)
	}
	if fs.lastOpts.Contractor != nil || fs.lastOpts.Status != nil {
		t.Errorf("unset filters must stay nil: %+v", fs.lastOpts)
	}
}
