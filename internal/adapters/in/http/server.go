// Package http exposes the route process and waste item use cases over a JSON API,
// plus a server-sent event stream of route views.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/ports"
	"wastetrack/internal/pkg/result"

	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// CommandHandler is the shape shared by every command handler.
type CommandHandler[C, V any] interface {
	Handle(ctx context.Context, cmd C) (result.Result[V], error)
}

// QueryHandler is the shape shared by every query handler.
type QueryHandler[Q, V any] interface {
	Handle(ctx context.Context, query Q) (V, error)
}

// Handlers groups the use cases served over HTTP.
type Handlers struct {
	CreateRouteProcess CommandHandler[commands.CreateRouteProcessCommand, views.RouteProcessView]
	StartRouteProcess  CommandHandler[commands.StartRouteProcessCommand, views.RouteProcessView]
	CompleteRouteStop  CommandHandler[commands.CompleteRouteStopCommand, views.RouteProcessView]
	CancelRouteProcess CommandHandler[commands.CancelRouteProcessCommand, views.RouteProcessView]

	RegisterWasteItem        CommandHandler[commands.RegisterWasteItemCommand, views.WasteItemView]
	TransitionWasteItem      CommandHandler[commands.TransitionWasteItemCommand, views.WasteItemView]
	TransferWasteItemCustody CommandHandler[commands.TransferWasteItemCustodyCommand, views.WasteItemView]

	GetRouteProcess     QueryHandler[queries.GetRouteProcessQuery, views.RouteProcessView]
	GetWasteItem        QueryHandler[queries.GetWasteItemQuery, views.WasteItemView]
	ListRouteOperations QueryHandler[queries.ListRouteOperationsQuery, []views.WasteOperationView]

	Notifier ports.RouteProcessNotifier
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	h      Handlers
	logger *slog.Logger
}

func NewServer(h Handlers, logger *slog.Logger) *Server {
	return &Server{
		h:      h,
		logger: logger.With("component", "http_server"),
	}
}

// NewRouter builds the echo instance with request validation on every API route.
func NewRouter(s *Server) (*echo.Echo, error) {
	doc, err := LoadOpenAPI()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api/v1", validator)

	api.POST("/route-processes", s.CreateRouteProcess)
	api.GET("/route-processes/:id", s.GetRouteProcess)
	api.POST("/route-processes/:id/start", s.StartRouteProcess)
	api.POST("/route-processes/:id/stops/:stopId/complete", s.CompleteRouteStop)
	api.POST("/route-processes/:id/cancel", s.CancelRouteProcess)
	api.GET("/route-processes/:id/operations", s.ListRouteOperations)
	api.GET("/route-processes/:id/stream", s.StreamRouteProcess)

	api.POST("/waste-items", s.RegisterWasteItem)
	api.GET("/waste-items/:id", s.GetWasteItem)
	api.POST("/waste-items/:id/transitions", s.TransitionWasteItem)
	api.POST("/waste-items/:id/custody", s.TransferWasteItemCustody)

	return e, nil
}
