// Package pointer fans terminal mouse presses out to interested components.
//
// Components that need to react to presses anywhere on screen (for example,
// closing a dropdown when the user clicks elsewhere) subscribe when they are
// mounted and close the returned Subscription when they are unmounted.
// A Bus is not safe for concurrent use; publish and subscribe only from the
// Bubble Tea update loop.
package pointer

import tea "github.com/charmbracelet/bubbletea"

// Rect is a screen region in cells. Zero-sized rects contain nothing.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Handler receives every published press.
type Handler func(tea.MouseMsg)

// Bus delivers presses to subscribed handlers in subscription order.
type Bus struct {
	next     int
	order    []int
	handlers map[int]Handler
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscription is the handle returned by Subscribe.
type Subscription struct {
	bus *Bus
	id  int
}

// Subscribe registers h and returns a handle that removes it again.
func (b *Bus) Subscribe(h Handler) *Subscription {
	id := b.next
	b.next++
	b.handlers[id] = h
	b.order = append(b.order, id)
	return &Subscription{bus: b, id: id}
}

// Close removes the handler. Closing twice, or closing a nil
// Subscription, is a no-op.
func (s *Subscription) Close() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	s.bus = nil
	if _, ok := b.handlers[s.id]; !ok {
		return
	}
	delete(b.handlers, s.id)
	for i, id := range b.order {
		if id == s.id {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
}

// Active reports whether the subscription is still registered.
func (s *Subscription) Active() bool {
	return s != nil && s.bus != nil
}

// Publish delivers a left-button press to every handler. Other mouse
// events (motion, release, wheel) are ignored. A handler may close its own
// subscription, or another one, while the press is being delivered.
func (b *Bus) Publish(msg tea.MouseMsg) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return
	}
	ids := append([]int(nil), b.order...)
	for _, id := range ids {
		if h, ok := b.handlers[id]; ok {
			h(msg)
		}
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	return len(b.handlers)
}

// IsLeftPress reports whether msg is a left-button press.
func IsLeftPress(msg tea.MouseMsg) bool {
	return msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft
}
