package handler

import (
	"context"

	"court-register-go/internal/config"
	courtdomain "court-register-go/internal/domain/court"
	"court-register-go/pkg/logger"
)

// HealthCheck reports on one dependency. Details are rendered in /health.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) (any, error)
}

type Handlers struct {
	Courts    *courtdomain.Service
	Buildings *courtdomain.BuildingService
	Contacts  *courtdomain.ContactService
	paging    config.PagingConfig
	checks    []HealthCheck
	log       logger.Logger
}

func New(courts *courtdomain.Service, buildings *courtdomain.BuildingService, contacts *courtdomain.ContactService, paging config.PagingConfig, checks []HealthCheck, log logger.Logger) *Handlers {
	return &Handlers{
		Courts:    courts,
		Buildings: buildings,
		Contacts:  contacts,
		paging:    paging,
		checks:    checks,
		log:       log,
	}
}
