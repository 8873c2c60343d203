// Package lazymount defers starting a component until it first becomes visible.
package lazymount

import tea "github.com/charmbracelet/bubbletea"

// Observer reports visibility. Once Observe is called the observer invokes
// callback whenever the watched region is visible, until Disconnect.
type Observer interface {
	Observe(callback func() tea.Cmd)
	Disconnect()
}

type Component interface {
	Start() tea.Cmd
	Stop()
}

// Boundary mounts the component built by its factory on the first visible
// callback, and only once.
type Boundary[C Component] struct {
	observer  Observer
	factory   func() C
	component C
	mounted   bool
	observing bool
}

func New[C Component](observer Observer, factory func() C) *Boundary[C] {
	return &Boundary[C]{
		observer: observer,
		factory:  factory,
	}
}

// Connect starts watching for visibility. It does nothing once mounted.
func (b *Boundary[C]) Connect() {
	if b.mounted || b.observing {
		return
	}
	b.observing = true
	b.observer.Observe(b.activate)
}

func (b *Boundary[C]) activate() tea.Cmd {
	if b.mounted {
		return nil
	}
	b.stopObserving()

	b.component = b.factory()
	b.mounted = true
	return b.component.Start()
}

// Disconnect stops observing and releases the component if it was mounted.
func (b *Boundary[C]) Disconnect() {
	b.stopObserving()

	if b.mounted {
		b.component.Stop()
		var zero C
		b.component = zero
		b.mounted = false
	}
}

func (b *Boundary[C]) stopObserving() {
	if b.observing {
		b.observing = false
		b.observer.Disconnect()
	}
}

// Component returns the mounted component.
func (b *Boundary[C]) Component() (C, bool) {
	return b.component, b.mounted
}

func (b *Boundary[C]) Mounted() bool {
	return b.mounted
}

func (b *Boundary[C]) Observing() bool {
	return b.observing
}
