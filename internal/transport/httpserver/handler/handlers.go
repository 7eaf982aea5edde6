package handler

import (
	"context"

	"baby-tracker-go/internal/chat"
	"baby-tracker-go/internal/domain/child"
	"baby-tracker-go/internal/domain/household"
	"baby-tracker-go/internal/domain/timeline"
	"baby-tracker-go/internal/domain/tracking"
	"baby-tracker-go/internal/domain/user"
	"baby-tracker-go/internal/events"
	"baby-tracker-go/pkg/logger"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type Services struct {
	Users      *user.Service
	Households *household.Service
	Access     *household.Access
	Children   *child.Service
	Tracking   *tracking.Service
	Timeline   *timeline.Service
	Chat       *chat.Service
	Hub        *events.Hub
	DB         Pinger
}

type Handlers struct {
	Services
	log logger.Logger
}

func New(services Services, log logger.Logger) *Handlers {
	return &Handlers{
		Services: services,
		log:      log,
	}
}
