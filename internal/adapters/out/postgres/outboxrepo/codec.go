package outboxrepo

import (
	"encoding/json"
	"errors"
	"fmt"

	"wastetrack/internal/core/domain/model/kernel"
	"wastetrack/internal/core/domain/model/routeprocess"
)

// ErrUnknownEvent is returned when a stored event name has no registered decoder.
var ErrUnknownEvent = errors.New("unknown outbox event")

// EventCodec turns domain events into JSON payloads and back, keyed by event name.
type EventCodec struct {
	decoders map[string]func([]byte) (kernel.DomainEvent, error)
}

// NewEventCodec returns an empty codec.
func NewEventCodec() *EventCodec {
	return &EventCodec{decoders: make(map[string]func([]byte) (kernel.DomainEvent, error))}
}

// RegisterEvent teaches c to decode payloads stored under name into E.
func RegisterEvent[E kernel.DomainEvent](c *EventCodec, name string) {
	c.decoders[name] = func(payload []byte) (kernel.DomainEvent, error) {
		var evt E
		if err := json.Unmarshal(payload, &evt); err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		return evt, nil
	}
}

// RouteProcessCodec knows every event a RouteProcess raises.
func RouteProcessCodec() *EventCodec {
	c := NewEventCodec()
	RegisterEvent[routeprocess.RouteProcessCreated](c, routeprocess.EventRouteProcessCreated)
	RegisterEvent[routeprocess.RouteProcessStarted](c, routeprocess.EventRouteProcessStarted)
	RegisterEvent[routeprocess.RouteStopCompleted](c, routeprocess.EventRouteStopCompleted)
	RegisterEvent[routeprocess.RouteProcessCompleted](c, routeprocess.EventRouteProcessCompleted)
	RegisterEvent[routeprocess.RouteProcessCancelled](c, routeprocess.EventRouteProcessCancelled)
	RegisterEvent[routeprocess.ResidueRelocationTriggered](c, routeprocess.EventResidueRelocationTriggered)
	RegisterEvent[routeprocess.ResidueTransferTriggered](c, routeprocess.EventResidueTransferTriggered)
	RegisterEvent[routeprocess.ResidueStorageTriggered](c, routeprocess.EventResidueStorageTriggered)
	return c
}

// Encode returns the JSON payload of evt.
func (c *EventCodec) Encode(evt kernel.DomainEvent) ([]byte, error) {
	if _, ok := c.decoders[evt.EventName()]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, evt.EventName())
	}
	return json.Marshal(evt)
}

// Decode rebuilds the event stored under name.
func (c *EventCodec) Decode(name string, payload []byte) (kernel.DomainEvent, error) {
	decode, ok := c.decoders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, name)
	}
	return decode(payload)
}
