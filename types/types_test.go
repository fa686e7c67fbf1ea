package types_test

import (
	"encoding/json"
	"testing"

	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/variant"
)

func TestEventType_IsTerminal(t *testing.T) {
	terminal := []types.EventType{types.EventTypeFinished, types.EventTypeError}
	for _, et := range terminal {
		if !et.IsTerminal() {
			t.Errorf("%s should be terminal", et)
		}
	}
	nonTerminal := []types.EventType{
		types.EventTypeResult,
		types.EventTypeCategory,
		types.EventTypeDepartments,
		types.EventTypeFilters,
		types.EventTypeWidgets,
		types.EventTypeAttribute,
	}
	for _, et := range nonTerminal {
		if et.IsTerminal() {
			t.Errorf("%s should not be terminal", et)
		}
	}
}

func TestCategorisedResult_Set(t *testing.T) {
	r := types.NewCategorisedResult(&types.Category{ID: "sports"})
	if r.CategoryID != "sports" {
		t.Fatalf("expected category id sports, got %q", r.CategoryID)
	}

	if err := r.Set("title", "Match A"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if r.Title != "Match A" {
		t.Errorf("title should route to the Title field, got %q", r.Title)
	}

	if err := r.Set("rating", 4.5); err != nil {
		t.Fatalf("set rating: %v", err)
	}
	v, ok := r.Get("rating")
	if !ok {
		t.Fatal("rating attribute missing")
	}
	if f, _ := v.AsDouble(); f != 4.5 {
		t.Errorf("expected rating 4.5, got %v", f)
	}
}

func TestCategorisedResult_SetRejectsNonStringTitle(t *testing.T) {
	r := types.NewCategorisedResult(&types.Category{ID: "c"})
	if err := r.Set("title", 42); err == nil {
		t.Fatal("expected error for non-string title")
	}
}

func TestCategorisedResult_Validate(t *testing.T) {
	r := &types.CategorisedResult{Title: "orphan"}
	if err := r.Validate(); err == nil {
		t.Fatal("expected error for missing category id")
	}
}

func TestDepartment_Validate(t *testing.T) {
	root := types.NewDepartment("", "All")
	root.AddSubdepartment(types.NewDepartment("books", "Books"))
	if err := root.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	root.AddSubdepartment(types.NewDepartment("broken", ""))
	if err := root.Validate(); err == nil {
		t.Fatal("expected error for unlabeled node")
	}
}

func TestMakeWidget(t *testing.T) {
	w, err := types.MakeWidget("hdr", "header", map[string]any{"title": "About"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	decoded, err := variant.DecodeJSONDict([]byte(w))
	if err != nil {
		t.Fatalf("widget descriptor is not a JSON dict: %v", err)
	}
	if id, _ := decoded.Get("id"); id.Kind() != variant.KindString {
		t.Error("descriptor should carry the widget id")
	}
	if wt, _ := decoded.Get("type"); wt.Kind() != variant.KindString {
		t.Error("descriptor should carry the widget type")
	}
}

func TestReplyEvent_JSONShape(t *testing.T) {
	ev := &types.ReplyEvent{
		ProtocolVersion: types.ProtocolVersion,
		ChannelID:       "ch-1",
		Kind:            types.ChannelKindSearch,
		Seq:             1,
		Type:            types.EventTypeResult,
		Ts:              "2026-01-02T03:04:05Z",
		Result: &types.CategorisedResult{
			CategoryID: "sports",
			Title:      "Match A",
			URI:        "https://example.com/a",
		},
	}

	data, err := json.Marshal(ev)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded types.ReplyEvent
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Result == nil || decoded.Result.Title != "Match A" {
		t.Errorf("result payload did not survive JSON round trip: %+v", decoded.Result)
	}
	if decoded.Category != nil || decoded.Filters != nil {
		t.Error("unset payload fields must stay nil")
	}
}
