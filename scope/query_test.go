package scope

import (
	"testing"

	"github.com/pellucid-io/scopes/filters"
)

func TestCannedQuery_Accessors(t *testing.T) {
	q := NewCannedQuery("music", "jazz", "albums")
	if q.ScopeID() != "music" || q.QueryString() != "jazz" || q.DepartmentID() != "albums" {
		t.Errorf("constructor fields lost: %q %q %q", q.ScopeID(), q.QueryString(), q.DepartmentID())
	}

	q.SetQueryString("blues")
	q.SetDepartmentID("artists")
	if q.QueryString() != "blues" || q.DepartmentID() != "artists" {
		t.Error("setters not applied")
	}

	if q.FilterState() == nil {
		t.Fatal("expected a live filter state")
	}
	q.SetFilterState(nil)
	if q.FilterState() == nil {
		t.Error("nil state must reset to an empty one")
	}

	f := filters.NewRadioButtonsFilter("genre", "Genre")
	f.AddOption("jazz", "Jazz")
	state := filters.NewState()
	if err := f.UpdateState(state, "jazz", true); err != nil {
		t.Fatal(err)
	}
	q.SetFilterState(state)
	if _, ok := q.FilterState()["genre"]; !ok {
		t.Error("filter state not stored")
	}
}

func TestCannedQuery_ToURI(t *testing.T) {
	q := NewCannedQuery("music", "jazz piano", "albums")
	uri := q.ToURI()
	if uri != "scope://music?dep=albums&q=jazz+piano" {
		t.Errorf("unexpected uri %q", uri)
	}

	bare := NewCannedQuery("music", "", "")
	if got := bare.ToURI(); got != "scope://music" {
		t.Errorf("unexpected bare uri %q", got)
	}
}
