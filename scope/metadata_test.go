package scope

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestLocationMarshal_WholeFloatsKeepDecimalPoint(t *testing.T) {
	loc := Location{Latitude: 1.0, Longitude: -3.5, City: "London"}
	data, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"latitude":1.000000`) {
		t.Errorf("whole latitude must carry a decimal point: %s", s)
	}
	if !strings.Contains(s, `"longitude":-3.500000`) {
		t.Errorf("unexpected longitude rendering: %s", s)
	}

	// And the document round-trips.
	var back Location
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Latitude != 1.0 || back.Longitude != -3.5 || back.City != "London" {
		t.Errorf("round trip mismatch: %+v", back)
	}
}

func TestSearchMetadata(t *testing.T) {
	md := NewSearchMetadata(30, "en_US", "phone")
	if md.Cardinality() != 30 || md.Locale() != "en_US" || md.FormFactor() != "phone" {
		t.Errorf("constructor fields lost: %d %q %q", md.Cardinality(), md.Locale(), md.FormFactor())
	}
	if md.InternetConnectivity() != ConnectivityStatusUnknown {
		t.Errorf("expected unknown connectivity, got %d", md.InternetConnectivity())
	}
	md.SetInternetConnectivity(ConnectivityStatusConnected)
	if md.InternetConnectivity() != ConnectivityStatusConnected {
		t.Error("connectivity not stored")
	}

	if md.Location() != nil {
		t.Error("expected nil location before SetLocation")
	}
	md.SetLocation(&Location{City: "London"})
	if md.Location() == nil || md.Location().City != "London" {
		t.Error("location not stored")
	}
}

func TestActionMetadata_ScopeDataRoundTrip(t *testing.T) {
	md := NewActionMetadata("en_US", "desktop")

	in := map[string]any{"page": int64(2), "open": true}
	if err := md.SetScopeData(in); err != nil {
		t.Fatalf("set scope data: %v", err)
	}

	var out struct {
		Page int64 `json:"page"`
		Open bool  `json:"open"`
	}
	if err := md.ScopeData(&out); err != nil {
		t.Fatalf("scope data: %v", err)
	}
	if out.Page != 2 || !out.Open {
		t.Errorf("round trip mismatch: %+v", out)
	}
}

func TestActionMetadata_Hints(t *testing.T) {
	md := NewActionMetadata("", "")
	if err := md.SetHint("session-id", "abc"); err != nil {
		t.Fatalf("set hint: %v", err)
	}
	v, ok := md.Hint("session-id")
	if !ok {
		t.Fatal("hint not stored")
	}
	if s, _ := v.AsString(); s != "abc" {
		t.Errorf("unexpected hint value %s", v)
	}
	if _, ok := md.Hint("missing"); ok {
		t.Error("unexpected hint")
	}
	if err := md.SetHint("bad", make(chan int)); err == nil {
		t.Error("expected error for unsupported hint value")
	}
}
