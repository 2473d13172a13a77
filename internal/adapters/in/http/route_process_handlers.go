package http

import (
	"errors"
	"fmt"
	"net/http"

	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"

	"github.com/labstack/echo/v4"
)

// NewStop is one planned stop of a NewRouteProcess request.
type NewStop struct {
	LocationID         string        `json:"locationId"`
	OperationType      string        `json:"operationType"`
	ResponsiblePartyID *string       `json:"responsiblePartyId,omitempty"`
	WasteItemIDs       []kernel.UUID `json:"wasteItemIds,omitempty"`
}

// NewRouteProcess is the body of POST /api/v1/route-processes. ID is optional and
// generated when absent.
type NewRouteProcess struct {
	ID        *kernel.UUID `json:"id,omitempty"`
	VehicleID string       `json:"vehicleId"`
	DriverID  string       `json:"driverId"`
	Stops     []NewStop    `json:"stops"`
}

// CompleteStop is the optional body of the stop completion endpoint.
type CompleteStop struct {
	Notes        *string       `json:"notes,omitempty"`
	WasteItemIDs []kernel.UUID `json:"wasteItemIds,omitempty"`
}

// CancelRouteProcess is the body of the cancel endpoint.
type CancelRouteProcess struct {
	Reason string `json:"reason"`
}

func (r NewRouteProcess) stopPlans() ([]routeprocess.StopPlan, error) {
	plans := make([]routeprocess.StopPlan, 0, len(r.Stops))
	var problems []error
	for i, stop := range r.Stops {
		opType, err := routeprocess.ParseStopOperationType(stop.OperationType)
		if err != nil {
			problems = append(problems, fmt.Errorf("stops[%d]: %w", i, err))
			continue
		}
		plan, err := routeprocess.NewStopPlan(stop.LocationID, opType, stop.ResponsiblePartyID, stop.WasteItemIDs)
		if err != nil {
			problems = append(problems, fmt.Errorf("stops[%d]: %w", i, err))
			continue
		}
		plans = append(plans, plan)
	}
	return plans, errors.Join(problems...)
}

// CreateRouteProcess handles POST /api/v1/route-processes.
func (s *Server) CreateRouteProcess(c echo.Context) error {
	var body NewRouteProcess
	if err := c.Bind(&body); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	id := kernel.NewUUID()
	if body.ID != nil {
		id = *body.ID
	}
	plans, err := body.stopPlans()
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "Invalid stops: "+err.Error())
	}
	cmd, err := commands.NewCreateRouteProcessCommand(id, body.VehicleID, body.DriverID, plans)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "Invalid route process: "+err.Error())
	}

	res, err := s.h.CreateRouteProcess.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusCreated, res, err)
}

// GetRouteProcess handles GET /api/v1/route-processes/{id}.
func (s *Server) GetRouteProcess(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}
	query, err := queries.NewGetRouteProcessQuery(id)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}

	view, err := s.h.GetRouteProcess.Handle(c.Request().Context(), query)
	if err != nil {
		return writeQueryError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, view)
}

// StartRouteProcess handles POST /api/v1/route-processes/{id}/start.
func (s *Server) StartRouteProcess(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}
	cmd, err := commands.NewStartRouteProcessCommand(id)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res, err := s.h.StartRouteProcess.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusOK, res, err)
}

// CompleteRouteStop handles POST /api/v1/route-processes/{id}/stops/{stopId}/complete.
func (s *Server) CompleteRouteStop(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}
	stopID, err := bindUUID(c, "stopId")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid stop id")
	}
	var body CompleteStop
	if err = c.Bind(&body); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCompleteRouteStopCommand(id, stopID, body.Notes, body.WasteItemIDs)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res, err := s.h.CompleteRouteStop.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusOK, res, err)
}

// CancelRouteProcess handles POST /api/v1/route-processes/{id}/cancel.
func (s *Server) CancelRouteProcess(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}
	var body CancelRouteProcess
	if err = c.Bind(&body); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewCancelRouteProcessCommand(id, body.Reason)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res, err := s.h.CancelRouteProcess.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusOK, res, err)
}

// ListRouteOperations handles GET /api/v1/route-processes/{id}/operations.
func (s *Server) ListRouteOperations(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}
	query, err := queries.NewListRouteOperationsQuery(id)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid route process id")
	}

	ops, err := s.h.ListRouteOperations.Handle(c.Request().Context(), query)
	if err != nil {
		return writeQueryError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, ops)
}
