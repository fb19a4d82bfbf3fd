package api

import (
	"context"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/viper"

	"github.com/obrastat/obrastat/internal/api/controller"
	"github.com/obrastat/obrastat/internal/pkg/constants"
	"github.com/obrastat/obrastat/internal/pkg/logger"
	"github.com/obrastat/obrastat/internal/pkg/store"
	"github.com/obrastat/obrastat/internal/service/resources"
	"github.com/obrastat/obrastat/internal/service/scraper"
)

type APIService struct {
	router           *echo.Echo
	resourcesService *resources.Service
	scraperService   *scraper.Service
}

func (svc *APIService) Serve(addr string) {
	logger.Fatal(context.Background(), svc.router.Start(addr))
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(store store.Store) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(RequestIDMiddleware)
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: viper.GetStringSlice(constants.ViperAllowOrigins),
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.resourcesService = resources.NewResourcesService(store)
	svc.scraperService = scraper.NewScraperService()

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(svc.resourcesService, svc.scraperService)

	res := api.Group("/resources")
	res.GET("/list", cntrl.ListResources)
	res.POST("/backfill", cntrl.BackfillResources, svc.AdminMiddleware)

	stats := api.Group("/stats")
	stats.GET("", cntrl.GetStatistics)
	stats.GET("/filters", cntrl.GetFilterOptions)

	return svc, nil
}
