package reader

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/wire"
)

// writeCapture streams a small search reply into path through the given
// sink constructor and returns the expected event count.
func writeCapture(t *testing.T, path string, mk func(f *os.File) reply.Sink) int {
	t.Helper()

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create capture: %v", err)
	}
	sink := mk(f)

	r := reply.NewSearchReply(sink, reply.Config{ChannelID: "ch-capture", Context: t.Context()})
	cat, err := r.RegisterCategory("books", "Books", "", "")
	if err != nil {
		t.Fatalf("register category: %v", err)
	}
	res := types.NewCategorisedResult(cat)
	if err := res.Set("uri", "https://example.com/1"); err != nil {
		t.Fatalf("set uri: %v", err)
	}
	if err := res.Set("title", "First"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := r.Push(res); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := r.Finished(); err != nil {
		t.Fatalf("finished: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close sink: %v", err)
	}
	return 3 // category, result, finished
}

func TestReadCapture_Framed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.bin")
	want := writeCapture(t, path, func(f *os.File) reply.Sink { return wire.NewFrameSink(f) })

	c, err := ReadCapture(path)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if c.DecodeError != "" {
		t.Fatalf("unexpected decode error: %s", c.DecodeError)
	}
	if len(c.Events) != want {
		t.Fatalf("events = %d, want %d", len(c.Events), want)
	}
	if c.Events[0].ChannelID != "ch-capture" {
		t.Fatalf("channel id = %q", c.Events[0].ChannelID)
	}
}

func TestReadCapture_JSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.jsonl")
	want := writeCapture(t, path, func(f *os.File) reply.Sink { return wire.NewJSONLSink(f) })

	c, err := ReadCapture(path)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if len(c.Events) != want {
		t.Fatalf("events = %d, want %d", len(c.Events), want)
	}
	if c.Events[len(c.Events)-1].Type != types.EventTypeFinished {
		t.Fatalf("last event type = %q", c.Events[len(c.Events)-1].Type)
	}
}

func TestReadCapture_TruncatedKeepsPrefix(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.bin")
	writeCapture(t, path, func(f *os.File) reply.Sink { return wire.NewFrameSink(f) })

	// Cut the file mid-frame: drop the last few bytes.
	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if err := os.WriteFile(path, raw[:len(raw)-5], 0o644); err != nil {
		t.Fatalf("truncate: %v", err)
	}

	c, err := ReadCapture(path)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if c.DecodeError == "" {
		t.Fatal("expected decode error for truncated stream")
	}
	if len(c.Events) != 2 {
		t.Fatalf("events = %d, want 2", len(c.Events))
	}
	if s := c.Summary(); s.State != StateTruncated {
		t.Fatalf("state = %q, want %q", s.State, StateTruncated)
	}
}

func TestReadCapture_OversizeFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.bin")
	var prefix [4]byte
	binary.BigEndian.PutUint32(prefix[:], uint32(wire.MaxFrameSize))
	if err := os.WriteFile(path, prefix[:], 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	c, err := ReadCapture(path)
	if err != nil {
		t.Fatalf("read capture: %v", err)
	}
	if c.DecodeError == "" {
		t.Fatal("expected decode error for oversize frame")
	}
	if len(c.Events) != 0 {
		t.Fatalf("events = %d, want 0", len(c.Events))
	}
}

func TestReadCapture_MissingFile(t *testing.T) {
	if _, err := ReadCapture(filepath.Join(t.TempDir(), "absent.bin")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSummary(t *testing.T) {
	c := &Capture{Events: []*types.ReplyEvent{
		{ChannelID: "ch-1", Kind: types.ChannelKindSearch, Seq: 1, Type: types.EventTypeCategory, Ts: "2026-08-29T10:00:00Z"},
		{ChannelID: "ch-1", Kind: types.ChannelKindSearch, Seq: 2, Type: types.EventTypeResult, Ts: "2026-08-29T10:00:01Z"},
		{ChannelID: "ch-1", Kind: types.ChannelKindSearch, Seq: 3, Type: types.EventTypeResult, Ts: "2026-08-29T10:00:02Z"},
		{ChannelID: "ch-1", Kind: types.ChannelKindSearch, Seq: 4, Type: types.EventTypeError, Ts: "2026-08-29T10:00:03Z", Message: "backend timeout"},
	}}

	s := c.Summary()
	if s.ChannelID != "ch-1" || s.Kind != "search" {
		t.Fatalf("identity = %q/%q", s.ChannelID, s.Kind)
	}
	if s.State != StateErrored {
		t.Fatalf("state = %q, want %q", s.State, StateErrored)
	}
	if s.ErrorMessage != "backend timeout" {
		t.Fatalf("error message = %q", s.ErrorMessage)
	}
	if s.EventCount != 4 || s.Results != 2 || s.Categories != 1 {
		t.Fatalf("counts = %d/%d/%d", s.EventCount, s.Results, s.Categories)
	}
	if s.FirstTs != "2026-08-29T10:00:00Z" || s.LastTs != "2026-08-29T10:00:03Z" {
		t.Fatalf("ts range = %q..%q", s.FirstTs, s.LastTs)
	}
}

func TestSummary_WidgetsCountPerWidget(t *testing.T) {
	c := &Capture{Events: []*types.ReplyEvent{
		{ChannelID: "ch-2", Kind: types.ChannelKindPreview, Seq: 1, Type: types.EventTypeWidgets, Widgets: []types.PreviewWidget{
			`{"id":"w1","type":"header"}`,
			`{"id":"w2","type":"text"}`,
		}},
		{ChannelID: "ch-2", Kind: types.ChannelKindPreview, Seq: 2, Type: types.EventTypeFinished},
	}}

	s := c.Summary()
	if s.Widgets != 2 {
		t.Fatalf("widgets = %d, want 2", s.Widgets)
	}
	if s.State != StateFinished {
		t.Fatalf("state = %q", s.State)
	}
}
