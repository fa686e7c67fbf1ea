package wire

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/variant"
)

func sampleEvent(seq int64, typ types.EventType) *types.ReplyEvent {
	return &types.ReplyEvent{
		ProtocolVersion: types.ProtocolVersion,
		ChannelID:       "ch-test",
		Kind:            types.ChannelKindSearch,
		Seq:             seq,
		Type:            typ,
	}
}

func TestFrameRoundTrip(t *testing.T) {
	ev := sampleEvent(1, types.EventTypeResult)
	ev.Result = &types.CategorisedResult{
		CategoryID: "sports",
		Title:      "Match A",
		URI:        "https://example.com/a",
		Attrs: map[string]variant.Value{
			"score": variant.Double(3.0),
			"goals": variant.Int(3),
		},
	}

	frame, err := EncodeEvent(ev)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	dec := NewFrameDecoder(bytes.NewReader(frame))
	got, err := dec.ReadEvent()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Seq != 1 || got.Type != types.EventTypeResult || got.ChannelID != "ch-test" {
		t.Errorf("envelope mismatch: %+v", got)
	}
	if got.Result == nil || got.Result.Title != "Match A" {
		t.Fatalf("result payload mismatch: %+v", got.Result)
	}
	// The codec preserves the int/double distinction.
	if score, _ := got.Result.Attrs["score"].AsDouble(); got.Result.Attrs["score"].Kind() != variant.KindDouble || score != 3.0 {
		t.Errorf("score lost its double kind: %s", got.Result.Attrs["score"])
	}
	if got.Result.Attrs["goals"].Kind() != variant.KindInt {
		t.Errorf("goals lost its int kind: %s", got.Result.Attrs["goals"])
	}

	// Clean EOF on the frame boundary.
	if _, err := dec.ReadEvent(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestFrameDecoder_MultipleFrames(t *testing.T) {
	var buf bytes.Buffer
	for seq := int64(1); seq <= 3; seq++ {
		frame, err := EncodeEvent(sampleEvent(seq, types.EventTypeAttribute))
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(frame)
	}

	dec := NewFrameDecoder(&buf)
	for want := int64(1); want <= 3; want++ {
		ev, err := dec.ReadEvent()
		if err != nil {
			t.Fatalf("frame %d: %v", want, err)
		}
		if ev.Seq != want {
			t.Errorf("expected seq %d, got %d", want, ev.Seq)
		}
	}
}

func TestFrameDecoder_PartialPrefix(t *testing.T) {
	dec := NewFrameDecoder(bytes.NewReader([]byte{0x00, 0x00}))
	_, err := dec.ReadFrame()
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorPartial {
		t.Fatalf("expected partial frame error, got %v", err)
	}
	if !IsFatalFrameError(err) {
		t.Error("partial frame must be fatal")
	}
}

func TestFrameDecoder_TruncatedPayload(t *testing.T) {
	frame, err := EncodeEvent(sampleEvent(1, types.EventTypeFinished))
	if err != nil {
		t.Fatal(err)
	}
	dec := NewFrameDecoder(bytes.NewReader(frame[:len(frame)-1]))
	_, err = dec.ReadFrame()
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorPartial {
		t.Fatalf("expected partial frame error, got %v", err)
	}
}

func TestFrameDecoder_TooLarge(t *testing.T) {
	var prefix [LengthPrefixSize]byte
	binary.BigEndian.PutUint32(prefix[:], MaxPayloadSize+1)
	dec := NewFrameDecoder(bytes.NewReader(prefix[:]))
	_, err := dec.ReadFrame()
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorTooLarge {
		t.Fatalf("expected too-large frame error, got %v", err)
	}
	if !IsFatalFrameError(err) {
		t.Error("oversized frame must be fatal")
	}
}

func TestDecodeEvent_Garbage(t *testing.T) {
	_, err := DecodeEvent([]byte{0xc1, 0xff, 0xff})
	var frameErr *FrameError
	if !errors.As(err, &frameErr) || frameErr.Kind != FrameErrorDecode {
		t.Fatalf("expected decode error, got %v", err)
	}
	if IsFatalFrameError(err) {
		t.Error("decode error is scoped to one frame, not fatal")
	}
}

func TestFrameSink_CarriesReplyStream(t *testing.T) {
	var buf bytes.Buffer
	sink := NewFrameSink(&buf)
	r := reply.NewSearchReply(sink, reply.Config{ChannelID: "ch-wire"})

	cat, err := r.RegisterCategory("news", "News", "", "")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	res := types.NewCategorisedResult(cat)
	res.Title = "Headline"
	if err := r.Push(res); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := r.Finished(); err != nil {
		t.Fatalf("finished: %v", err)
	}

	dec := NewFrameDecoder(&buf)
	var got []*types.ReplyEvent
	for {
		ev, err := dec.ReadEvent()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		got = append(got, ev)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	wantTypes := []types.EventType{types.EventTypeCategory, types.EventTypeResult, types.EventTypeFinished}
	for i, want := range wantTypes {
		if got[i].Type != want {
			t.Errorf("event %d: expected %s, got %s", i, want, got[i].Type)
		}
		if got[i].ChannelID != "ch-wire" {
			t.Errorf("event %d carries wrong channel id %q", i, got[i].ChannelID)
		}
	}
}

func TestFrameSink_ClosedAndCancelled(t *testing.T) {
	sink := NewFrameSink(&bytes.Buffer{})
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if err := sink.Send(context.Background(), sampleEvent(1, types.EventTypeFinished)); err != io.ErrClosedPipe {
		t.Errorf("expected ErrClosedPipe, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sink2 := NewFrameSink(&bytes.Buffer{})
	if err := sink2.Send(ctx, sampleEvent(1, types.EventTypeFinished)); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
