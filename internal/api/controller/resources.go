package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/viper"

	"github.com/obrastat/obrastat/internal/pkg/constants"
	"github.com/obrastat/obrastat/internal/pkg/source"
	"github.com/obrastat/obrastat/internal/pkg/store"
)

type listResourcesRequest struct {
	SnapshotID string `query:"snapshot_id"`
	Client     string `query:"cliente"`
	Contractor string `query:"contratista"`
	Building   string `query:"edificio"`
	Status     string `query:"estado"`
}

func (c *Controller) ListResources(ctx echo.Context) error {
	var req listResourcesRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	opts := store.ListResourcesOpts{SnapshotID: req.SnapshotID}
	if req.Client != "" {
		opts.Client = &req.Client
	}
	if req.Contractor != "" {
		opts.Contractor = &req.Contractor
	}
	if req.Building != "" {
		opts.Building = &req.Building
	}
	if req.Status != "" {
		opts.Status = &req.Status
	}

	resources, err := c.service.ListResources(ctx.Request().Context(), opts)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, resources)
}

// BackfillResources scrapes the portal, consolidates the run, persists it
// and rewrites the data file the dashboard renderer reads.
func (c *Controller) BackfillResources(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	snapshot, err := c.scraper.ScrapeSnapshot(reqCtx, viper.GetString(constants.ViperPortalURL))
	if err != nil {
		return err
	}

	consolidated, err := c.service.ImportSnapshot(reqCtx, snapshot)
	if err != nil {
		return err
	}

	if path := viper.GetString(constants.ViperDataFile); path != "" {
		if err := source.Save(reqCtx, path, consolidated); err != nil {
			return err
		}
	}

	return ctx.JSON(http.StatusOK, consolidated)
}
