// Package eventhandlers reacts to committed RouteProcess events: it records the waste
// operations requested by trigger events and pushes fresh route views to subscribers.
package eventhandlers

import (
	"context"
	"log/slog"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
	"wastetrack/internal/core/domain/services"
	"wastetrack/internal/core/ports"
)

// operationRecorder turns one trigger event into a stored WasteOperation. The operation
// store ignores a source event it has already seen, so replays are harmless.
type operationRecorder struct {
	operations ports.WasteOperationRepository
	factory    services.OperationFactory
	logger     *slog.Logger
}

func (r operationRecorder) record(ctx context.Context, evt kernel.DomainEvent) error {
	op, err := r.factory.Build(evt)
	if err != nil {
		return err
	}

	if err = r.operations.Add(ctx, op); err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "Waste operation recorded",
		"operation_id", op.ID().String(),
		"type", op.Type().String(),
		"route_process_id", op.RouteProcessID().String(),
		"source_event_id", op.SourceEventID().String(),
	)
	return nil
}

// RelocationHandler records a Relocation for every ResidueRelocationTriggered event.
type RelocationHandler struct {
	recorder operationRecorder
}

func NewRelocationHandler(
	operations ports.WasteOperationRepository,
	factory services.OperationFactory,
	logger *slog.Logger,
) *RelocationHandler {
	return &RelocationHandler{recorder: operationRecorder{
		operations: operations,
		factory:    factory,
		logger:     logger.With("component", "relocation_handler"),
	}}
}

func (h *RelocationHandler) Handle(ctx context.Context, evt routeprocess.ResidueRelocationTriggered) error {
	return h.recorder.record(ctx, evt)
}

// TransferHandler records a Transfer for every ResidueTransferTriggered event.
type TransferHandler struct {
	recorder operationRecorder
}

func NewTransferHandler(
	operations ports.WasteOperationRepository,
	factory services.OperationFactory,
	logger *slog.Logger,
) *TransferHandler {
	return &TransferHandler{recorder: operationRecorder{
		operations: operations,
		factory:    factory,
		logger:     logger.With("component", "transfer_handler"),
	}}
}

func (h *TransferHandler) Handle(ctx context.Context, evt routeprocess.ResidueTransferTriggered) error {
	return h.recorder.record(ctx, evt)
}

// StorageHandler records a Storage for every ResidueStorageTriggered event.
type StorageHandler struct {
	recorder operationRecorder
}

func NewStorageHandler(
	operations ports.WasteOperationRepository,
	factory services.OperationFactory,
	logger *slog.Logger,
) *StorageHandler {
	return &StorageHandler{recorder: operationRecorder{
		operations: operations,
		factory:    factory,
		logger:     logger.With("component", "storage_handler"),
	}}
}

func (h *StorageHandler) Handle(ctx context.Context, evt routeprocess.ResidueStorageTriggered) error {
	return h.recorder.record(ctx, evt)
}
