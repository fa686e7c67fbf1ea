package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/pellucid-io/scopes/cli/reader"
)

func TestParseFormat(t *testing.T) {
	cases := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"table", FormatTable, false},
		{"yaml", FormatYAML, false},
		{"", "", false},
		{"xml", "", true},
	}
	for _, tc := range cases {
		got, err := ParseFormat(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Errorf("ParseFormat(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderJSON(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatJSON, false, &buf)

	s := reader.StreamSummary{ChannelID: "ch-1", Kind: "search", State: "finished", EventCount: 4}
	if err := r.Render(s); err != nil {
		t.Fatalf("render: %v", err)
	}

	var back reader.StreamSummary
	if err := json.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ChannelID != "ch-1" || back.EventCount != 4 {
		t.Fatalf("round trip = %+v", back)
	}
}

func TestRenderTable_Struct(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)

	s := reader.StreamSummary{ChannelID: "ch-1", Kind: "search", State: "errored", ErrorMessage: "backend timeout"}
	if err := r.Render(s); err != nil {
		t.Fatalf("render: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"channel_id:", "ch-1", "state:", "errored", "backend timeout"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTable_Slice(t *testing.T) {
	type row struct {
		Seq  int64  `json:"seq"`
		Type string `json:"type"`
	}

	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)
	if err := r.Render([]row{{1, "category"}, {2, "result"}}); err != nil {
		t.Fatalf("render: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want 3 (header + 2 rows):\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "seq") || !strings.Contains(lines[0], "type") {
		t.Fatalf("header = %q", lines[0])
	}
	if !strings.Contains(lines[2], "result") {
		t.Fatalf("row = %q", lines[2])
	}
}

func TestRenderTable_EmptySlice(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatTable, true, &buf)
	if err := r.Render([]reader.StreamSummary{}); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "(no events)") {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestRenderYAML(t *testing.T) {
	var buf bytes.Buffer
	r := NewRendererWithWriter(FormatYAML, false, &buf)

	s := reader.StreamSummary{ChannelID: "ch-9", Kind: "preview", State: "finished"}
	if err := r.Render(s); err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(buf.String(), "channel_id: ch-9") {
		t.Fatalf("output = %q", buf.String())
	}
}
