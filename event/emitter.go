package event

// ID identifies a registered listener.
type ID uint64

// Listener receives events.
type Listener func(Event)

type entry struct {
	id   ID
	fn   Listener
	once bool
}

// Emitter delivers events synchronously to the listeners registered for
// their kind, in registration order. A listener may register or remove
// listeners while being called; such changes take effect from the next
// Emit. Listener panics propagate to the caller of Emit and stop delivery
// to the remaining listeners.
//
// The zero Emitter is ready to use. An Emitter is not safe for concurrent
// use.
type Emitter struct {
	last      ID
	listeners map[Kind][]entry
}

func NewEmitter() *Emitter {
	return &Emitter{}
}

// On registers fn for events of kind k.
func (e *Emitter) On(k Kind, fn Listener) ID {
	return e.add(k, fn, false)
}

// Once registers fn to be called for the next event of kind k only.
func (e *Emitter) Once(k Kind, fn Listener) ID {
	return e.add(k, fn, true)
}

func (e *Emitter) add(k Kind, fn Listener, once bool) ID {
	if e.listeners == nil {
		e.listeners = map[Kind][]entry{}
	}
	e.last++
	old := e.listeners[k]
	ls := make([]entry, len(old), len(old)+1)
	copy(ls, old)
	e.listeners[k] = append(ls, entry{id: e.last, fn: fn, once: once})
	return e.last
}

// Off removes the listener id from kind k, reporting whether it was
// registered.
func (e *Emitter) Off(k Kind, id ID) bool {
	old := e.listeners[k]
	for i := range old {
		if old[i].id != id {
			continue
		}
		if len(old) == 1 {
			delete(e.listeners, k)
			return true
		}
		ls := make([]entry, 0, len(old)-1)
		ls = append(ls, old[:i]...)
		e.listeners[k] = append(ls, old[i+1:]...)
		return true
	}
	return false
}

// RemoveAll removes every listener for kind k.
func (e *Emitter) RemoveAll(k Kind) {
	delete(e.listeners, k)
}

// Emit calls every listener registered for ev's kind and reports whether
// there was any.
func (e *Emitter) Emit(ev Event) bool {
	ls := e.listeners[ev.Kind()]
	if len(ls) == 0 {
		return false
	}
	for i := range ls {
		if ls[i].once {
			e.Off(ev.Kind(), ls[i].id)
		}
	}
	for i := range ls {
		ls[i].fn(ev)
	}
	return true
}

// ListenerCount returns the number of listeners registered for kind k.
func (e *Emitter) ListenerCount(k Kind) int {
	return len(e.listeners[k])
}

// Handle adapts a function of one concrete event type to a Listener.
// Events of other types are ignored.
func Handle[T Event](fn func(T)) Listener {
	return func(ev Event) {
		if x, ok := ev.(T); ok {
			fn(x)
		}
	}
}
