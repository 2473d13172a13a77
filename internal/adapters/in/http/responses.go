package http

import (
	"errors"
	"log/slog"
	"net/http"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/result"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Error is the body of every failed response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeError(c echo.Context, status int, message string) error {
	return c.JSON(status, Error{Code: status, Message: message})
}

// statusOf maps an infrastructure error returned next to a Result.
func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict, "The resource was modified concurrently, retry the request"
	case errors.Is(err, errs.ErrEventHandlerFailure):
		return http.StatusServiceUnavailable, "The change was saved but its follow-up work is pending"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// failureStatus maps a failed Result or a rejected request.
func failureStatus(err error) int {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return http.StatusNotFound
	}
	return http.StatusUnprocessableEntity
}

func logFailure(c echo.Context, logger *slog.Logger, status int, err error) {
	ctx := c.Request().Context()
	if status == http.StatusInternalServerError {
		logger.ErrorContext(ctx, "Request failed", "path", c.Path(), "error", err)
		return
	}
	logger.WarnContext(ctx, "Request not completed", "path", c.Path(), "status", status, "error", err)
}

func writeResult[V any](
	c echo.Context,
	logger *slog.Logger,
	status int,
	res result.Result[V],
	err error,
) error {
	if err != nil {
		code, msg := statusOf(err)
		logFailure(c, logger, code, err)
		return writeError(c, code, msg)
	}
	if !res.IsSuccess() {
		return writeError(c, failureStatus(res.Err()), res.Message())
	}
	return c.JSON(status, res.Value())
}

// writeQueryError maps a query handler error. Missing objects and bad ids are the
// caller's problem, anything else is ours.
func writeQueryError(c echo.Context, logger *slog.Logger, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return writeError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return writeError(c, http.StatusUnprocessableEntity, err.Error())
	}
	logFailure(c, logger, http.StatusInternalServerError, err)
	return writeError(c, http.StatusInternalServerError, "Internal server error")
}

// bindUUID reads a uuid path parameter.
func bindUUID(c echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}
