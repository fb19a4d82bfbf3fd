package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetStatistics(ctx echo.Context) error {
	stats, err := c.service.GetStatistics(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, stats)
}

func (c *Controller) GetFilterOptions(ctx echo.Context) error {
	filters, err := c.service.GetFilterOptions(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, filters)
}
