package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestCommentForm_LocalValidation(t *testing.T) {
	api := newFakeAPI(10)
	l := newLoadedList(t, api, janeSession)
	form := l.Form()

	tests := []struct {
		name    string
		value   string
		wantErr string
	}{
		{"empty", "", msgRequired},
		{"blank", "    ", msgRequired},
		{"four_chars", "abcd", msgTooShort},
		{"four_runes", "héhé", msgTooShort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form.SetValue(tt.value)
			if cmd := form.Submit(); cmd != nil {
				t.Fatal("Submit() sent a request")
			}
			if form.FieldError() != tt.wantErr {
				t.Errorf("FieldError() = %q, want %q", form.FieldError(), tt.wantErr)
			}
		})
	}
	if api.count("create") != 0 {
		t.Fatalf("create calls = %d, want 0", api.count("create"))
	}

	form.SetValue("abcde")
	cmd := form.Submit()
	if cmd == nil {
		t.Fatal("Submit() of five characters sent nothing")
	}
	if form.FieldError() != "" {
		t.Errorf("FieldError() = %q after a valid submit", form.FieldError())
	}
	if form.Submit() != nil {
		t.Error("second Submit() while sending issued a request")
	}
	l.Update(cmd())

	if api.count("create") != 1 {
		t.Errorf("create calls = %d, want 1", api.count("create"))
	}
	if l.Comments()[0].Content != "abcde" {
		t.Errorf("first comment = %q, want the created one", l.Comments()[0].Content)
	}
	if form.Value() != "" {
		t.Errorf("form value = %q, want cleared after create", form.Value())
	}
	if form.Cancel() {
		t.Error("Cancel() on a create form reported a cancel")
	}
}

func TestCommentForm_ServerFieldErrorClearedOnInput(t *testing.T) {
	api := newFakeAPI(10)
	api.createErr = fieldErr{"content": "The content of this comment is considered spam."}
	l := newLoadedList(t, api, janeSession)
	form := l.Form()

	form.SetValue("mail me at jane@example.com")
	resolve(t, l, form.Submit())

	if form.FieldError() != "The content of this comment is considered spam." {
		t.Fatalf("FieldError() = %q", form.FieldError())
	}
	if len(l.Comments()) != 0 {
		t.Error("rejected comment was added")
	}
	if form.Value() != "mail me at jane@example.com" {
		t.Error("rejected input was cleared")
	}

	form.Focus()
	form.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if form.FieldError() != "" {
		t.Errorf("FieldError() = %q after typing, want cleared", form.FieldError())
	}
}

func TestCommentForm_GenericFailure(t *testing.T) {
	api := newFakeAPI(10)
	api.createErr = errNetwork
	l := newLoadedList(t, api, janeSession)
	form := l.Form()

	form.SetValue("Hello world")
	resolve(t, l, form.Submit())

	if !form.Failed() || form.FieldError() != "" {
		t.Errorf("Failed() %v FieldError() %q, want a generic failure", form.Failed(), form.FieldError())
	}
	if form.Loading() {
		t.Error("Loading() = true after the failure")
	}

	api.createErr = nil
	resolve(t, l, form.Submit())
	if form.Failed() || len(l.Comments()) != 1 {
		t.Errorf("retry: failed %v comments %d", form.Failed(), len(l.Comments()))
	}
}

func TestCommentForm_TransportFailureAfterRejection(t *testing.T) {
	api := newFakeAPI(10)
	api.createErr = fieldErr{"content": "The content of this comment is considered spam."}
	l := newLoadedList(t, api, janeSession)
	form := l.Form()

	form.SetValue("mail me at jane@example.com")
	resolve(t, l, form.Submit())
	resolve(t, l, form.Submit())
	if form.FieldError() == "" {
		t.Fatal("FieldError() is empty after the rejection")
	}

	api.createErr = errNetwork
	resolve(t, l, form.Submit())

	if form.FieldError() != "" {
		t.Errorf("FieldError() = %q, want the stale message gone", form.FieldError())
	}
	if !form.Failed() {
		t.Error("Failed() = false after a transport failure")
	}
}
