package tui

import (
	"strings"
	"testing"
)

func TestCommentItem_AuthorEditsComment(t *testing.T) {
	api := newFakeAPI(10)
	api.seed(janeID, "first comment", "second comment")
	l := newLoadedList(t, api, janeSession)

	old := l.Comments()[1]
	item := l.Item(old)
	published := item.Published()

	if item.Mode() != Viewing {
		t.Fatalf("initial mode = %s, want VIEWING", item.Mode())
	}
	item.Edit()
	if item.Mode() != Editing {
		t.Fatalf("mode after Edit() = %s, want EDITING", item.Mode())
	}
	if item.Form().Value() != old.Content {
		t.Errorf("form value = %q, want the current content", item.Form().Value())
	}

	item.Form().SetValue("Updated text here")
	resolve(t, l, item.Form().Submit())

	if item.Mode() != Viewing {
		t.Errorf("mode after save = %s, want VIEWING", item.Mode())
	}
	updated := l.Comments()[1]
	if updated == old {
		t.Fatal("list still holds the old comment")
	}
	if updated.Content != "Updated text here" {
		t.Errorf("content = %q, want %q", updated.Content, "Updated text here")
	}
	if updated.Author != old.Author || !updated.PublishedAt.Equal(old.PublishedAt) {
		t.Errorf("author or publishedAt changed: %+v -> %+v", old, updated)
	}
	if l.Item(updated) != item || item.Published() != published {
		t.Error("item was rebuilt by the update")
	}
	if !strings.Contains(item.View(80, false), "Updated text here") {
		t.Error("View() does not show the new content")
	}
}

func TestCommentItem_CancelDiscardsInput(t *testing.T) {
	api := newFakeAPI(10)
	api.seed(janeID, "first comment")
	l := newLoadedList(t, api, janeSession)
	item := l.Item(l.Comments()[0])

	item.Edit()
	item.Form().SetValue("never saved")
	item.Cancel()

	if item.Mode() != Viewing || item.Form() != nil {
		t.Errorf("after Cancel(): mode %s form %v", item.Mode(), item.Form())
	}
	if l.Comments()[0].Content != "first comment" || api.count("update") != 0 {
		t.Error("Cancel() changed the comment")
	}

	item.Edit()
	if item.Form().Value() != "first comment" {
		t.Errorf("reopened form value = %q, want the saved content", item.Form().Value())
	}
}

func TestCommentItem_NonAuthorHasNoControls(t *testing.T) {
	api := newFakeAPI(10)
	api.seed(tomID, "first comment")
	l := newLoadedList(t, api, janeSession)
	item := l.Item(l.Comments()[0])

	if item.CanEdit() {
		t.Fatal("CanEdit() = true for another user's comment")
	}
	if item.Edit() != nil || item.Mode() != Viewing {
		t.Error("Edit() switched a non-author to EDITING")
	}
	if item.Delete() != nil {
		t.Error("Delete() issued a request for a non-author")
	}

	view := item.View(80, true)
	if strings.Contains(view, "e: edit") || strings.Contains(view, "d: delete") {
		t.Errorf("View() shows controls to a non-author: %q", view)
	}

	anon := newLoadedList(t, api, Session{})
	if anon.Item(anon.Comments()[0]).CanEdit() {
		t.Error("CanEdit() = true for an anonymous reader")
	}
	if anon.Form() != nil {
		t.Error("anonymous reader got a create form")
	}
}

func TestCommentItem_DeleteFailureKeepsComment(t *testing.T) {
	api := newFakeAPI(10)
	api.seed(janeID, "first comment")
	api.deleteErr = errNetwork
	l := newLoadedList(t, api, janeSession)
	c := l.Comments()[0]
	item := l.Item(c)

	cmd := item.Delete()
	if cmd == nil {
		t.Fatal("Delete() = nil")
	}
	if !item.Deleting() {
		t.Error("Deleting() = false while in flight")
	}
	if item.Delete() != nil {
		t.Error("second Delete() while in flight issued a request")
	}
	if item.Edit() != nil || item.Mode() != Viewing {
		t.Error("Edit() allowed while deleting")
	}

	l.Update(cmd())

	if len(l.Comments()) != 1 || l.Comments()[0] != c {
		t.Fatal("failed delete removed the comment")
	}
	if item.Deleting() {
		t.Error("Deleting() = true after the failure")
	}
	if !strings.Contains(item.View(80, true), "Could not delete") {
		t.Error("View() does not report the failure")
	}

	api.deleteErr = nil
	resolve(t, l, item.Delete())
	if len(l.Comments()) != 0 {
		t.Errorf("retry: comments = %d, want 0", len(l.Comments()))
	}
	if api.count("delete") != 2 {
		t.Errorf("delete calls = %d, want 2", api.count("delete"))
	}
}

func TestCommentItem_DeleteOnlyWhileViewing(t *testing.T) {
	api := newFakeAPI(10)
	api.seed(janeID, "first comment")
	l := newLoadedList(t, api, janeSession)
	item := l.Item(l.Comments()[0])

	item.Edit()
	if item.Delete() != nil {
		t.Error("Delete() issued a request while EDITING")
	}
}
