package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"

	"github.com/obrastat/obrastat/internal/domain"
	"github.com/obrastat/obrastat/internal/pkg/logger"
)

type Service struct {
	client *http.Client
}

func NewScraperService() *Service {
	return &Service{client: &http.Client{Timeout: 30 * time.Second}}
}

// ScrapeSnapshot fetches the portal's client index and every client's
// resource tables, returning the raw (unconsolidated) snapshot.
func (s *Service) ScrapeSnapshot(ctx context.Context, portalURL string) (*domain.Snapshot, error) {
	doc, err := s.fetchDocument(ctx, portalURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get main page: %w", err)
	}

	resources := make([]*domain.Resource, 0, 256)
	resourcesMx := sync.Mutex{}
	eg, egCtx := errgroup.WithContext(ctx)

	doc.Find("table.clientes tbody tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		clientName := strings.TrimSpace(tr.Find("th").Text())
		clientHref, ok := tr.Find("td a").Attr("href")
		if !ok {
			// index rows without a detail link carry no resources
			return true
		}

		eg.Go(func() error {
			clientResources, err := s.scrapeClient(egCtx, portalURL+clientHref, clientName)
			if err != nil {
				return fmt.Errorf("scrapeClient, client-%s: %w", clientName, err)
			}

			logger.Infof(ctx, "parsed %d resources for %s", len(clientResources), clientName)

			resourcesMx.Lock()
			defer resourcesMx.Unlock()
			resources = append(resources, clientResources...)
			return nil
		})

		return true
	})

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("err in goroutine: %w", err)
	}

	return &domain.Snapshot{
		Resources: resources,
		UpdatedAt: time.Now(),
		Total:     len(resources),
	}, nil
}

// scrapeClient parses one client page: a resource table per building, the
// building name in the caption, column headers in the thead.
func (s *Service) scrapeClient(ctx context.Context, clientURL, clientName string) ([]*domain.Resource, error) {
	doc, err := s.fetchDocument(ctx, clientURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get client page: %w", err)
	}

	resources := make([]*domain.Resource, 0, 64)

	doc.Find("table.recursos").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		building := strings.TrimSpace(table.Find("caption").Text())

		headers := make([]string, 0, 12)
		table.Find("thead th").Each(func(_ int, th *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(th.Text()))
		})

		table.Find("tbody tr").EachWithBreak(func(_ int, tr *goquery.Selection) bool {
			resource := &domain.Resource{
				Client:   clientName,
				Building: building,
			}

			tr.Find("td").EachWithBreak(func(i int, td *goquery.Selection) bool {
				if i >= len(headers) {
					return false
				}
				setField(resource, headers[i], strings.TrimSpace(td.Text()))
				return true
			})

			resources = append(resources, resource)
			return true
		})

		return true
	})

	return resources, nil
}

// setField maps a column header to its record field; unrecognized columns
// land in Extra untouched.
func setField(resource *domain.Resource, header, value string) {
	switch strings.ToLower(header) {
	case "categoría", "categoria":
		resource.Category = value
	case "cuit":
		resource.TaxID = value
	case "cuil":
		resource.PersonTaxID = value
	case "nombre":
		resource.Name = value
	case "proveedor":
		resource.Provider = value
	case "contratista":
		resource.Contractor = value
	case "cliente":
		resource.Client = value
	case "edificio":
		resource.Building = value
	case "dominio":
		resource.Plate = value
	case "marca":
		resource.Make = value
	case "modelo":
		resource.Model = value
	case "estado":
		resource.Status = value
	case "observaciones":
		resource.Notes = value
	case "última actualización", "ultima actualizacion", "fecha":
		resource.LastUpdated = value
	default:
		if resource.Extra == nil {
			resource.Extra = make(map[string]string)
		}
		resource.Extra[header] = value
	}
}

// fetchDocument gets url with a few quick retries; the portal drops
// connections under load.
func (s *Service) fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	var resp *http.Response
	err := backoff.Retry(
		func() error {
			req, reqErr := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if reqErr != nil {
				return backoff.Permanent(reqErr)
			}

			var httpErr error
			resp, httpErr = s.client.Do(req)
			if httpErr != nil {
				return fmt.Errorf("http.Get: %w", httpErr)
			}
			if resp.StatusCode != http.StatusOK {
				_ = resp.Body.Close()
				return fmt.Errorf("status code error: %d %s", resp.StatusCode, resp.Status)
			}

			return nil
		},
		backoff.WithContext(
			backoff.WithMaxRetries(backoff.NewConstantBackOff(100*time.Millisecond), 5),
			ctx,
		),
	)
	if err != nil {
		return nil, err
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			logger.Errorf(ctx, "failed to close reader: %s", closeErr.Error())
		}
	}()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("goquery.NewDocumentFromReader: %w", err)
	}

	return doc, nil
}
