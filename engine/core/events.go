package core

import "sync"

// EventContext carries the code that fired and an event specific payload.
type EventContext struct {
	Type SystemEventCode
	Data interface{}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next tick.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// The collision world was built from a loaded scene asset.
	/* Context usage:
	 * report := data.(*SceneSynthesizedEvent)
	 */
	EVENT_CODE_SCENE_SYNTHESIZED SystemEventCode = 0x02

	// A dynamic body fell below the floor and was moved back to the spawn point.
	/* Context usage:
	 * ev := data.(*BodyRespawnedEvent)
	 */
	EVENT_CODE_BODY_RESPAWNED SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// SceneSynthesizedEvent is the payload of EVENT_CODE_SCENE_SYNTHESIZED.
type SceneSynthesizedEvent struct {
	AssetID string
	Spawned int
	Skipped int
	Failed  int
}

// BodyRespawnedEvent is the payload of EVENT_CODE_BODY_RESPAWNED.
type BodyRespawnedEvent struct {
	Name string
	// FellFrom is the height the body was at when it was caught.
	FellFrom float32
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

// EventBus dispatches events synchronously on the firing goroutine. Listeners
// registered for a code are called in registration order until one reports
// the event as handled.
type EventBus struct {
	mu         sync.RWMutex
	registered map[SystemEventCode][]*registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[SystemEventCode][]*registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code. Events with duplicate
 * listeners will not be registered again and will cause this to return false.
 */
func (b *EventBus) Register(code SystemEventCode, listener interface{}, onEvent FnOnEvent) bool {
	if b == nil || onEvent == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.registered[code] {
		if listener != nil && e.listener == listener {
			LogWarn("listener already registered for event code %d", code)
			return false
		}
	}
	b.registered[code] = append(b.registered[code], &registeredEvent{
		listener: listener,
		callback: onEvent,
	})
	return true
}

/**
 * Unregister the listener from the provided code. If no matching
 * registration is found, this function returns false.
 */
func (b *EventBus) Unregister(code SystemEventCode, listener interface{}) bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	events := b.registered[code]
	for i, e := range events {
		if e.listener == listener {
			b.registered[code] = append(events[:i], events[i+1:]...)
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 */
func (b *EventBus) Fire(ctx EventContext) bool {
	if b == nil {
		return false
	}
	b.mu.RLock()
	events := append([]*registeredEvent(nil), b.registered[ctx.Type]...)
	b.mu.RUnlock()

	for _, e := range events {
		if e.callback(ctx) {
			return true
		}
	}
	return false
}

// Shutdown drops every registration.
func (b *EventBus) Shutdown() error {
	if b == nil {
		return nil
	}
	b.mu.Lock()
	b.registered = make(map[SystemEventCode][]*registeredEvent)
	b.mu.Unlock()
	return nil
}
