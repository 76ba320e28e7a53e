// Package input keeps the bounded table of controllers the control loop reads.
package input

import (
	"iter"

	"hovercraft-go/errcode"
)

// DefaultCapacity matches the number of gamepads the coprocessor can pair.
const DefaultCapacity = 4

// Slot is a stable index into the registry table.
type Slot int

// NoSlot is returned when a source is not registered.
const NoSlot Slot = -1

// Stats counts registry activity for diagnostics.
type Stats struct {
	Connects           uint32
	Disconnects        uint32
	Rejected           uint32 // connects refused for lack of a slot
	UnknownDisconnects uint32
}

// Registry is a fixed-capacity arena of input sources.
// Not safe for concurrent use; transport callbacks run on the control loop.
type Registry struct {
	slots []Source
	n     int
	stats Stats
}

func NewRegistry(capacity int) *Registry {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Registry{slots: make([]Source, capacity)}
}

// OnConnect places src in the first free slot. A source whose ID is already
// registered keeps its slot. With no free slot it returns errcode.RegistryFull
// and the source stays invisible to Active.
func (r *Registry) OnConnect(src Source) (Slot, error) {
	if s, ok := r.Lookup(src.ID()); ok {
		r.slots[s] = src
		return s, nil
	}
	for i, cur := range r.slots {
		if cur == nil {
			r.slots[i] = src
			r.n++
			r.stats.Connects++
			return Slot(i), nil
		}
	}
	r.stats.Rejected++
	return NoSlot, errcode.RegistryFull
}

// OnDisconnect frees the slot holding id. Unknown ids are a no-op.
func (r *Registry) OnDisconnect(id SourceID) (Slot, bool) {
	s, ok := r.Lookup(id)
	if !ok {
		r.stats.UnknownDisconnects++
		return NoSlot, false
	}
	r.slots[s] = nil
	r.n--
	r.stats.Disconnects++
	return s, true
}

// Lookup returns the slot holding id.
func (r *Registry) Lookup(id SourceID) (Slot, bool) {
	for i, cur := range r.slots {
		if cur != nil && cur.ID() == id {
			return Slot(i), true
		}
	}
	return NoSlot, false
}

// Active yields, in slot order, every registered source that is connected and
// has fresh data.
func (r *Registry) Active() iter.Seq2[Slot, Source] {
	return func(yield func(Slot, Source) bool) {
		for i, src := range r.slots {
			if src == nil || !src.Connected() || !src.HasData() {
				continue
			}
			if !yield(Slot(i), src) {
				return
			}
		}
	}
}

func (r *Registry) Len() int     { return r.n }
func (r *Registry) Cap() int     { return len(r.slots) }
func (r *Registry) Stats() Stats { return r.stats }
