package lazymount

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

type manualObserver struct {
	callback    func() tea.Cmd
	disconnects int
}

func (o *manualObserver) Observe(callback func() tea.Cmd) { o.callback = callback }
func (o *manualObserver) Disconnect() {
	o.callback = nil
	o.disconnects++
}

// fire simulates the watched region scrolling into view.
func (o *manualObserver) fire() tea.Cmd {
	if o.callback == nil {
		return nil
	}
	return o.callback()
}

type widget struct {
	starts, stops int
}

func (w *widget) Start() tea.Cmd {
	w.starts++
	return func() tea.Msg { return "loaded" }
}

func (w *widget) Stop() { w.stops++ }

func TestBoundary_MountsOnceOnFirstVisibility(t *testing.T) {
	obs := &manualObserver{}
	built := 0
	w := &widget{}
	b := New(obs, func() *widget {
		built++
		return w
	})

	if b.Mounted() {
		t.Fatal("Mounted() before Connect()")
	}
	b.Connect()
	if !b.Observing() {
		t.Fatal("Observing() = false after Connect()")
	}

	cmd := obs.fire()
	if cmd == nil || cmd() != "loaded" {
		t.Fatal("first visibility did not return the component's start cmd")
	}
	if !b.Mounted() || b.Observing() || obs.disconnects != 1 {
		t.Errorf("after mount: mounted %v observing %v disconnects %d", b.Mounted(), b.Observing(), obs.disconnects)
	}

	if obs.fire() != nil {
		t.Error("observer kept firing after mount")
	}
	b.Connect()
	if built != 1 || w.starts != 1 {
		t.Errorf("built %d starts %d, want 1 1", built, w.starts)
	}

	if got, ok := b.Component(); !ok || got != w {
		t.Errorf("Component() = %v %v", got, ok)
	}
}

func TestBoundary_DisconnectReleasesComponent(t *testing.T) {
	obs := &manualObserver{}
	w := &widget{}
	b := New(obs, func() *widget { return w })

	b.Connect()
	obs.fire()
	b.Disconnect()

	if b.Mounted() || w.stops != 1 {
		t.Errorf("after Disconnect(): mounted %v stops %d", b.Mounted(), w.stops)
	}
	if _, ok := b.Component(); ok {
		t.Error("Component() still reports a component")
	}

	b.Disconnect()
	if w.stops != 1 {
		t.Errorf("second Disconnect() stopped again: stops %d", w.stops)
	}
}

func TestBoundary_DisconnectBeforeVisible(t *testing.T) {
	obs := &manualObserver{}
	built := 0
	b := New(obs, func() *widget {
		built++
		return &widget{}
	})

	b.Connect()
	b.Disconnect()

	if obs.fire() != nil || built != 0 {
		t.Errorf("component built after Disconnect(): built %d", built)
	}
	if obs.disconnects != 1 {
		t.Errorf("disconnects = %d, want 1", obs.disconnects)
	}
}
