package monitoring

import (
	"fmt"
	"sync"

	"sysmon/internal/sysmon/monitoring/domain"
	"sysmon/pkg/logger"
)

// EventCategory keys the callback registry. It covers the metric
// categories plus the derived status event published on every tick.
type EventCategory string

const (
	EventCPU     EventCategory = EventCategory(domain.CategoryCPU)
	EventMemory  EventCategory = EventCategory(domain.CategoryMemory)
	EventDisk    EventCategory = EventCategory(domain.CategoryDisk)
	EventNetwork EventCategory = EventCategory(domain.CategoryNetwork)
	EventSystem  EventCategory = EventCategory(domain.CategorySystem)
	EventStatus  EventCategory = "status"
)

// Handler receives a published payload: a domain.Sample for metric events,
// a domain.SystemStatusSnapshot for status events.
type Handler func(payload interface{})

// SubscriptionID identifies one registered handler for unsubscription.
type SubscriptionID string

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// CallbackRegistry maps event categories to ordered handler lists.
// Publish fans out synchronously in registration order on the caller's
// goroutine; a handler failure is logged and does not stop the rest.
type CallbackRegistry struct {
	mu     sync.RWMutex
	subs   map[EventCategory][]subscription
	logger *logger.Logger
	nextID int64
}

// NewCallbackRegistry creates an empty registry.
func NewCallbackRegistry(log *logger.Logger) *CallbackRegistry {
	if log == nil {
		log = logger.WithField("component", "callback-registry")
	}
	return &CallbackRegistry{
		subs:   make(map[EventCategory][]subscription),
		logger: log,
	}
}

// Subscribe appends the handler to the category's list and returns an
// identifier usable with Unsubscribe. Multiple handlers per category are
// allowed; they run in registration order.
func (r *CallbackRegistry) Subscribe(category EventCategory, handler Handler) SubscriptionID {
	if handler == nil {
		return ""
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := SubscriptionID(fmt.Sprintf("sub_%s_%d", category, r.nextID))
	r.subs[category] = append(r.subs[category], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler. Unknown identifiers
// are ignored.
func (r *CallbackRegistry) Unsubscribe(category EventCategory, id SubscriptionID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	subs := r.subs[category]
	for i, sub := range subs {
		if sub.id == id {
			r.subs[category] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// SubscriberCount returns the number of handlers registered for the
// category.
func (r *CallbackRegistry) SubscriberCount(category EventCategory) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs[category])
}

// Publish invokes every handler registered for the category, in
// registration order, synchronously. A panicking handler is recovered and
// logged; subsequent handlers still run.
func (r *CallbackRegistry) Publish(category EventCategory, payload interface{}) {
	r.mu.RLock()
	subs := make([]subscription, len(r.subs[category]))
	copy(subs, r.subs[category])
	r.mu.RUnlock()

	for _, sub := range subs {
		r.invoke(category, sub, payload)
	}
}

func (r *CallbackRegistry) invoke(category EventCategory, sub subscription, payload interface{}) {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("callback failed", "event", string(category), "subscription", string(sub.id), "panic", rec)
		}
	}()
	sub.handler(payload)
}
