package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
)

func TestJSONLSink_ReplayRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONLSink(&buf)
	r := reply.NewPreviewReply(sink, reply.Config{ChannelID: "ch-jsonl"})

	w, err := types.MakeWidget("header", "header", map[string]any{"title": "Match A"})
	if err != nil {
		t.Fatal(err)
	}
	if err := r.PushWidgets(w); err != nil {
		t.Fatalf("push widgets: %v", err)
	}
	if err := r.PushAttr("rating", 4.5); err != nil {
		t.Fatalf("push attr: %v", err)
	}
	if err := r.Finished(); err != nil {
		t.Fatalf("finished: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}

	events, err := ReadJSONL(strings.NewReader(buf.String()))
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 replayed events, got %d", len(events))
	}
	if events[0].Type != types.EventTypeWidgets || len(events[0].Widgets) != 1 {
		t.Errorf("widgets event mismatch: %+v", events[0])
	}
	if events[1].Attribute == nil || events[1].Attribute.Key != "rating" {
		t.Errorf("attribute event mismatch: %+v", events[1])
	}
	if events[2].Type != types.EventTypeFinished {
		t.Errorf("expected finished event, got %s", events[2].Type)
	}
	for i, ev := range events {
		if ev.Seq != int64(i+1) {
			t.Errorf("event %d replayed with seq %d", i, ev.Seq)
		}
	}
}

func TestReadJSONL_SkipsBlankLines(t *testing.T) {
	input := `{"protocol_version":"1.0.0","channel_id":"ch","kind":"search","seq":1,"type":"finished"}` + "\n\n"
	events, err := ReadJSONL(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(events) != 1 || events[0].Type != types.EventTypeFinished {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestReadJSONL_MalformedLine(t *testing.T) {
	if _, err := ReadJSONL(strings.NewReader("{not json}\n")); err == nil {
		t.Fatal("expected error for malformed line")
	}
}

func TestJSONLSink_SendAfterClose(t *testing.T) {
	sink := NewJSONLSink(&bytes.Buffer{})
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}
	ev := &types.ReplyEvent{Type: types.EventTypeFinished}
	if err := sink.Send(t.Context(), ev); err == nil {
		t.Fatal("expected error after close")
	}
}
