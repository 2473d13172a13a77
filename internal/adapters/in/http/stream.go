package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/application/views"

	"github.com/labstack/echo/v4"
)

const (
	routeViewEvent    = "route-process"
	heartbeatInterval = 15 * time.Second
)

// StreamRouteProcess handles GET /api/v1/route-processes/{id}/stream. The current
// view is sent first, then every view the notifier delivers until the client leaves.
func (s *Server) StreamRouteProcess(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}
	query, err := queries.NewGetRouteProcessQuery(id)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}

	ctx := c.Request().Context()
	// Subscribe before reading the snapshot so no change falls between the two.
	updates, stop, err := s.h.Notifier.Subscribe(ctx, id)
	if err != nil {
		logFailure(c, s.logger, http.StatusInternalServerError, err)
		return writeError(c, http.StatusInternalServerError, "Internal server error")
	}
	defer stop()

	snapshot, err := s.h.GetRouteProcess.Handle(ctx, query)
	if err != nil {
		return writeQueryError(c, s.logger, err)
	}

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	if err = writeViewEvent(w, snapshot); err != nil {
		return nil
	}
	w.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err = fmt.Fprint(w, ": ping\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case view, ok := <-updates:
			if !ok {
				return nil
			}
			if view.Version < snapshot.Version {
				continue
			}
			if err = writeViewEvent(w, view); err != nil {
				s.logger.DebugContext(ctx, "Stream client gone", "route_process_id", id.String(), "error", err)
				return nil
			}
			w.Flush()
		}
	}
}

func writeViewEvent(w *echo.Response, view views.RouteProcessView) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: %s\nid: %d\ndata: %s\n\n", routeViewEvent, view.Version, data)
	return err
}
