package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	httpadapter "wastetrack/internal/adapters/in/http"
	"wastetrack/internal/adapters/out/realtime"
	"wastetrack/internal/core/application/usecases/commands"
	"wastetrack/internal/core/application/usecases/queries"
	"wastetrack/internal/core/application/views"
	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/lifecycle"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/pkg/errs"
	"wastetrack/internal/pkg/result"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCommand[C, V any] struct {
	mock.Mock
}

func (m *MockCommand[C, V]) Handle(ctx context.Context, cmd C) (result.Result[V], error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(result.Result[V]), args.Error(1)
}

type MockQuery[Q, V any] struct {
	mock.Mock
}

func (m *MockQuery[Q, V]) Handle(ctx context.Context, query Q) (V, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(V), args.Error(1)
}

type fixture struct {
	create     *MockCommand[commands.CreateRouteProcessCommand, views.RouteProcessView]
	start      *MockCommand[commands.StartRouteProcessCommand, views.RouteProcessView]
	complete   *MockCommand[commands.CompleteRouteStopCommand, views.RouteProcessView]
	cancel     *MockCommand[commands.CancelRouteProcessCommand, views.RouteProcessView]
	register   *MockCommand[commands.RegisterWasteItemCommand, views.WasteItemView]
	transition *MockCommand[commands.TransitionWasteItemCommand, views.WasteItemView]
	custody    *MockCommand[commands.TransferWasteItemCustodyCommand, views.WasteItemView]
	getRoute   *MockQuery[queries.GetRouteProcessQuery, views.RouteProcessView]
	getItem    *MockQuery[queries.GetWasteItemQuery, views.WasteItemView]
	listOps    *MockQuery[queries.ListRouteOperationsQuery, []views.WasteOperationView]
	notifier   *realtime.MemoryNotifier
	e          *echo.Echo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f := &fixture{
		create:     &MockCommand[commands.CreateRouteProcessCommand, views.RouteProcessView]{},
		start:      &MockCommand[commands.StartRouteProcessCommand, views.RouteProcessView]{},
		complete:   &MockCommand[commands.CompleteRouteStopCommand, views.RouteProcessView]{},
		cancel:     &MockCommand[commands.CancelRouteProcessCommand, views.RouteProcessView]{},
		register:   &MockCommand[commands.RegisterWasteItemCommand, views.WasteItemView]{},
		transition: &MockCommand[commands.TransitionWasteItemCommand, views.WasteItemView]{},
		custody:    &MockCommand[commands.TransferWasteItemCustodyCommand, views.WasteItemView]{},
		getRoute:   &MockQuery[queries.GetRouteProcessQuery, views.RouteProcessView]{},
		getItem:    &MockQuery[queries.GetWasteItemQuery, views.WasteItemView]{},
		listOps:    &MockQuery[queries.ListRouteOperationsQuery, []views.WasteOperationView]{},
		notifier:   realtime.NewMemoryNotifier(logger),
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateRouteProcess:       f.create,
		StartRouteProcess:        f.start,
		CompleteRouteStop:        f.complete,
		CancelRouteProcess:       f.cancel,
		RegisterWasteItem:        f.register,
		TransitionWasteItem:      f.transition,
		TransferWasteItemCustody: f.custody,
		GetRouteProcess:          f.getRoute,
		GetWasteItem:             f.getItem,
		ListRouteOperations:      f.listOps,
		Notifier:                 f.notifier,
	}, logger)
	e, err := httpadapter.NewRouter(server)
	require.NoError(t, err)
	f.e = e

	t.Cleanup(func() {
		f.create.AssertExpectations(t)
		f.start.AssertExpectations(t)
		f.complete.AssertExpectations(t)
		f.cancel.AssertExpectations(t)
		f.register.AssertExpectations(t)
		f.transition.AssertExpectations(t)
		f.custody.AssertExpectations(t)
		f.getRoute.AssertExpectations(t)
		f.getItem.AssertExpectations(t)
		f.listOps.AssertExpectations(t)
	})
	return f
}

func (f *fixture) do(method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func routeView(id kernel.UUID, status string, version int) views.RouteProcessView {
	return views.RouteProcessView{
		ID:        id,
		VehicleID: "truck-7",
		DriverID:  "driver-2",
		Status:    status,
		CreatedAt: time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC),
		Stops:     []views.RouteStopView{},
		Version:   version,
	}
}

func TestHealth(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestSwaggerServesEmbeddedDocument(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/swagger/doc.json", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/api/v1/route-processes/{id}/stream")
}

func TestCreateRouteProcess(t *testing.T) {
	t.Run("creates the route", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateRouteProcessCommand) bool {
			stops := cmd.Stops()
			return cmd.RouteProcessID().IsEqual(id) &&
				cmd.VehicleID() == "truck-7" &&
				len(stops) == 2 &&
				stops[0].OperationType() == routeprocess.Pickup &&
				stops[1].OperationType() == routeprocess.Delivery
		})).Return(result.Ok(routeView(id, "Planned", 1)), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/route-processes", `{
			"id": "`+id.String()+`",
			"vehicleId": "truck-7",
			"driverId": "driver-2",
			"stops": [
				{"locationId": "generator-1", "operationType": "Pickup"},
				{"locationId": "plant-3", "operationType": "Delivery", "responsiblePartyId": "recycler-9"}
			]
		}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		got := decode[views.RouteProcessView](t, rec)
		assert.Equal(t, id, got.ID)
		assert.Equal(t, "Planned", got.Status)
	})

	t.Run("missing vehicle is rejected by the schema", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/route-processes",
			`{"driverId": "driver-2", "stops": [{"locationId": "a", "operationType": "Pickup"}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode[httpadapter.Error](t, rec).Message, "vehicleId")
		f.create.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("unknown stop type is rejected by the schema", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/route-processes",
			`{"vehicleId": "v", "driverId": "d", "stops": [{"locationId": "a", "operationType": "Teleport"}]}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("delivery without a receiving party is accepted", func(t *testing.T) {
		f := newFixture(t)
		id := kernel.NewUUID()
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateRouteProcessCommand) bool {
			stops := cmd.Stops()
			return len(stops) == 1 && stops[0].OperationType() == routeprocess.Delivery
		})).Return(result.Ok(routeView(id, "Planned", 1)), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/route-processes",
			`{"vehicleId": "v", "driverId": "d", "stops": [{"locationId": "plant-3", "operationType": "Delivery"}]}`)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		f.create.AssertExpectations(t)
	})

	t.Run("route without stops is reported by the handler", func(t *testing.T) {
		f := newFixture(t)
		f.create.On("Handle", mock.Anything, mock.Anything).
			Return(result.Fail[views.RouteProcessView](
				errs.NewDomainRuleViolationError(routeprocess.RuleNoStops, "a route process needs at least one stop"),
			), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/route-processes", `{"vehicleId": "v", "driverId": "d", "stops": []}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "a route process needs at least one stop", decode[httpadapter.Error](t, rec).Message)
	})
}

func TestStartRouteProcess_StatusMapping(t *testing.T) {
	id := kernel.NewUUID()
	tests := []struct {
		name   string
		res    result.Result[views.RouteProcessView]
		err    error
		status int
	}{
		{
			name:   "started",
			res:    result.Ok(routeView(id, "InProgress", 2)),
			status: http.StatusOK,
		},
		{
			name:   "not found",
			res:    result.Fail[views.RouteProcessView](errs.NewObjectNotFoundError("routeProcessId", id.String())),
			status: http.StatusNotFound,
		},
		{
			name: "illegal state",
			res: result.Fail[views.RouteProcessView](
				errs.NewDomainRuleViolationError("route.already_started", "route is already InProgress"),
			),
			status: http.StatusUnprocessableEntity,
		},
		{
			name:   "concurrent update",
			res:    result.Fail[views.RouteProcessView](nil),
			err:    errs.NewConcurrencyConflictError("routeProcessId", id.String(), 1),
			status: http.StatusConflict,
		},
		{
			name:   "handler failure after commit",
			res:    result.Fail[views.RouteProcessView](nil),
			err:    errs.NewEventHandlerFailureError("RouteProcessStarted", id.String(), errors.New("boom")),
			status: http.StatusServiceUnavailable,
		},
		{
			name:   "store failure",
			res:    result.Fail[views.RouteProcessView](nil),
			err:    errors.New("connection reset"),
			status: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.start.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.StartRouteProcessCommand) bool {
				return cmd.RouteProcessID().IsEqual(id)
			})).Return(tt.res, tt.err).Once()

			rec := f.do(http.MethodPost, "/api/v1/route-processes/"+id.String()+"/start", "")

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			if tt.status != http.StatusOK {
				assert.Equal(t, tt.status, decode[httpadapter.Error](t, rec).Code)
			}
		})
	}
}

func TestCompleteRouteStop(t *testing.T) {
	id := kernel.NewUUID()
	stopID := kernel.NewUUID()
	itemID := kernel.NewUUID()

	t.Run("with notes and items", func(t *testing.T) {
		f := newFixture(t)
		f.complete.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CompleteRouteStopCommand) bool {
			return cmd.StopID().IsEqual(stopID) &&
				cmd.Notes() != nil && *cmd.Notes() == "gate 4" &&
				len(cmd.WasteItemIDs()) == 1 && cmd.WasteItemIDs()[0].IsEqual(itemID)
		})).Return(result.Ok(routeView(id, "InProgress", 3)), nil).Once()

		rec := f.do(http.MethodPost,
			"/api/v1/route-processes/"+id.String()+"/stops/"+stopID.String()+"/complete",
			`{"notes": "gate 4", "wasteItemIds": ["`+itemID.String()+`"]}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("without a body", func(t *testing.T) {
		f := newFixture(t)
		f.complete.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CompleteRouteStopCommand) bool {
			return cmd.Notes() == nil && len(cmd.WasteItemIDs()) == 0
		})).Return(result.Ok(routeView(id, "InProgress", 3)), nil).Once()

		rec := f.do(http.MethodPost,
			"/api/v1/route-processes/"+id.String()+"/stops/"+stopID.String()+"/complete", "")

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("malformed stop id", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/route-processes/"+id.String()+"/stops/not-a-uuid/complete", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestCancelRouteProcess(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("cancelled", func(t *testing.T) {
		f := newFixture(t)
		f.cancel.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CancelRouteProcessCommand) bool {
			return cmd.Reason() == "vehicle breakdown"
		})).Return(result.Ok(routeView(id, "Cancelled", 2)), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/route-processes/"+id.String()+"/cancel", `{"reason": "vehicle breakdown"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Cancelled", decode[views.RouteProcessView](t, rec).Status)
	})

	t.Run("reason is required by the schema", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/route-processes/"+id.String()+"/cancel", `{}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestGetRouteProcess(t *testing.T) {
	id := kernel.NewUUID()

	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		f.getRoute.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetRouteProcessQuery) bool {
			return q.RouteProcessID().IsEqual(id)
		})).Return(routeView(id, "Planned", 1), nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/route-processes/"+id.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, decode[views.RouteProcessView](t, rec).ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.getRoute.On("Handle", mock.Anything, mock.Anything).
			Return(views.RouteProcessView{}, errs.NewObjectNotFoundError("routeProcessId", id.String())).Once()

		rec := f.do(http.MethodGet, "/api/v1/route-processes/"+id.String(), "")

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newFixture(t)
		f.getRoute.On("Handle", mock.Anything, mock.Anything).
			Return(views.RouteProcessView{}, errors.New("connection refused")).Once()

		rec := f.do(http.MethodGet, "/api/v1/route-processes/"+id.String(), "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}

func TestListRouteOperations(t *testing.T) {
	f := newFixture(t)
	id := kernel.NewUUID()
	f.listOps.On("Handle", mock.Anything, mock.Anything).Return([]views.WasteOperationView{
		{ID: kernel.NewUUID(), Type: "Relocation", RouteProcessID: id, From: "generator-1", To: "vehicle:truck-7"},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/route-processes/"+id.String()+"/operations", "")

	require.Equal(t, http.StatusOK, rec.Code)
	ops := decode[[]views.WasteOperationView](t, rec)
	require.Len(t, ops, 1)
	assert.Equal(t, "vehicle:truck-7", ops[0].To)
}

func TestWasteItemEndpoints(t *testing.T) {
	itemID := kernel.NewUUID()
	item := views.WasteItemView{ID: itemID, WasteClass: "20 01 01", Quantity: 100, Unit: "kg", State: "Generated"}

	t.Run("register", func(t *testing.T) {
		f := newFixture(t)
		f.register.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.RegisterWasteItemCommand) bool {
			return cmd.Quantity() == 100 && cmd.HolderID() == "generator-1"
		})).Return(result.Ok(item), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/waste-items",
			`{"wasteClass": "20 01 01", "quantity": 100, "unit": "kg", "holderId": "generator-1"}`)

		assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	})

	t.Run("get", func(t *testing.T) {
		f := newFixture(t)
		f.getItem.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetWasteItemQuery) bool {
			return q.WasteItemID().IsEqual(itemID)
		})).Return(item, nil).Once()

		rec := f.do(http.MethodGet, "/api/v1/waste-items/"+itemID.String(), "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Generated", decode[views.WasteItemView](t, rec).State)
	})

	t.Run("transition", func(t *testing.T) {
		f := newFixture(t)
		f.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionWasteItemCommand) bool {
			return cmd.Target() == lifecycle.CollectionRequested && cmd.Quantity() == 100
		})).Return(result.Ok(item), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/waste-items/"+itemID.String()+"/transitions",
			`{"target": "CollectionRequested", "quantity": 100}`)

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("unknown target state", func(t *testing.T) {
		f := newFixture(t)

		rec := f.do(http.MethodPost, "/api/v1/waste-items/"+itemID.String()+"/transitions",
			`{"target": "Vaporized", "quantity": 100}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("custody refused by the item", func(t *testing.T) {
		f := newFixture(t)
		f.custody.On("Handle", mock.Anything, mock.Anything).
			Return(result.Fail[views.WasteItemView](errs.NewDomainRuleViolationError(
				"waste_item.custody_not_allowed", "custody cannot be transferred while the item is Generated",
			)), nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/waste-items/"+itemID.String()+"/custody", `{"toHolderId": "carrier-4"}`)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "custody cannot be transferred while the item is Generated",
			decode[httpadapter.Error](t, rec).Message)
	})
}

func TestUnknownAPIRoute(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/api/v1/vehicles", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
