package controller

import (
	"github.com/obrastat/obrastat/internal/service/resources"
	"github.com/obrastat/obrastat/internal/service/scraper"
)

type Controller struct {
	service *resources.Service
	scraper *scraper.Service
}

func NewController(service *resources.Service, scraper *scraper.Service) *Controller {
	return &Controller{service: service, scraper: scraper}
}
