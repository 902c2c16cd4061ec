package stride

const (
	STATE_ENTER EventType = iota
	STATE_EXIT
	GROUNDED
	AIRBORNE
)

type EventType uint8

// Event interface - all locomotion events implement this
type Event interface {
	Type() EventType
}

// StateEnterEvent fires when a character enters a locomotion state
type StateEnterEvent struct {
	Character *Character
	State     State
}

func (e StateEnterEvent) Type() EventType { return STATE_ENTER }

// StateExitEvent fires when a character leaves a locomotion state
type StateExitEvent struct {
	Character *Character
	State     State
}

func (e StateExitEvent) Type() EventType { return STATE_EXIT }

// GroundedEvent fires when the downward probe starts reporting ground
type GroundedEvent struct {
	Character *Character
}

func (e GroundedEvent) Type() EventType { return GROUNDED }

// AirborneEvent fires when the downward probe stops reporting ground
type AirborneEvent struct {
	Character *Character
}

func (e AirborneEvent) Type() EventType { return AIRBORNE }

// EventListener - callback for events
type EventListener func(event Event)

// Events buffers locomotion events during a tick and delivers them to
// subscribed listeners when the tick completes, so listeners always observe
// the character in a settled pose.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

func NewEvents() Events {
	return Events{
		listeners: make(map[EventType][]EventListener),
		buffer:    make([]Event, 0, 16),
	}
}

// Subscribe adds a listener for an event type
func (e *Events) Subscribe(eventType EventType, listener EventListener) {
	e.listeners[eventType] = append(e.listeners[eventType], listener)
}

func (e *Events) emit(event Event) {
	e.buffer = append(e.buffer, event)
}

// flush sends all buffered events and clears the buffer
func (e *Events) flush() {
	for _, event := range e.buffer {
		if listeners, ok := e.listeners[event.Type()]; ok {
			for _, listener := range listeners {
				listener(event)
			}
		}
	}
	e.buffer = e.buffer[:0]
}
