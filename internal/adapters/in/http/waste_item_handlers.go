package http

import (
	"net/http"

	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"

	"github.com/labstack/echo/v4"
)

// NewWasteItem is the body of POST /api/v1/waste-items.
type NewWasteItem struct {
	ID         *kernel.UUID `json:"id,omitempty"`
	WasteClass string       `json:"wasteClass"`
	Quantity   int64        `json:"quantity"`
	Unit       string       `json:"unit"`
	HolderID   string       `json:"holderId"`
}

// Transition asks to move an item, or Quantity of it when AllowPartial is set, to Target.
type Transition struct {
	Target         string   `json:"target"`
	Quantity       int64    `json:"quantity"`
	AllowPartial   bool     `json:"allowPartial"`
	Evidence       []string `json:"evidence,omitempty"`
	CertificateRef *string  `json:"certificateRef,omitempty"`
}

type CustodyTransfer struct {
	ToHolderID string `json:"toHolderId"`
}

// RegisterWasteItem handles POST /api/v1/waste-items.
func (s *Server) RegisterWasteItem(c echo.Context) error {
	var body NewWasteItem
	if err := c.Bind(&body); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	id := kernel.NewUUID()
	if body.ID != nil {
		id = *body.ID
	}
	cmd, err := commands.NewRegisterWasteItemCommand(id, body.WasteClass, body.Quantity, body.Unit, body.HolderID)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, "Invalid waste item: "+err.Error())
	}

	res, err := s.h.RegisterWasteItem.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusCreated, res, err)
}

// GetWasteItem handles GET /api/v1/waste-items/{id}.
func (s *Server) GetWasteItem(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid waste item id")
	}
	query, err := queries.NewGetWasteItemQuery(id)
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid waste item id")
	}

	view, err := s.h.GetWasteItem.Handle(c.Request().Context(), query)
	if err != nil {
		return writeQueryError(c, s.logger, err)
	}
	return c.JSON(http.StatusOK, view)
}

// TransitionWasteItem handles POST /api/v1/waste-items/{id}/transitions.
func (s *Server) TransitionWasteItem(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid waste item id")
	}
	var body Transition
	if err = c.Bind(&body); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	target, err := lifecycle.ParseState(body.Target)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}
	cmd, err := commands.NewTransitionWasteItemCommand(
		id, target, body.Quantity, body.AllowPartial, body.Evidence, body.CertificateRef,
	)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res, err := s.h.TransitionWasteItem.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusOK, res, err)
}

// TransferWasteItemCustody handles POST /api/v1/waste-items/{id}/custody.
func (s *Server) TransferWasteItemCustody(c echo.Context) error {
	id, err := bindUUID(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid waste item id")
	}
	var body CustodyTransfer
	if err = c.Bind(&body); err != nil {
		return writeError(c, http.StatusBadRequest, "Invalid request body")
	}

	cmd, err := commands.NewTransferWasteItemCustodyCommand(id, body.ToHolderID)
	if err != nil {
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}

	res, err := s.h.TransferWasteItemCustody.Handle(c.Request().Context(), cmd)
	return writeResult(c, s.logger, http.StatusOK, res, err)
}
