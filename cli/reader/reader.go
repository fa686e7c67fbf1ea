// Package reader loads captured reply streams for inspection.
//
// A capture is a reply stream at rest: either a framed msgpack file as
// written by wire.FrameSink, or a JSONL file as written by wire.JSONLSink.
// The format is detected from the file extension (".jsonl" selects JSONL,
// anything else is treated as framed).
package reader

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pellucid-io/scopes/iox"
	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/wire"
)

// Capture holds a decoded reply stream.
type Capture struct {
	// Path is the file the capture was read from.
	Path string
	// Events are the decoded events in stream order.
	Events []*types.ReplyEvent
	// DecodeError describes why decoding stopped early, if it did. The
	// events decoded before the failure are still available.
	DecodeError string
}

// ReadCapture reads and decodes a capture file.
// A fatal frame error mid-file does not fail the read: the capture
// carries the prefix that decoded cleanly plus the diagnostic, so an
// operator can inspect a stream cut off by a crashed producer.
func ReadCapture(path string) (*Capture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer iox.DiscardClose(f)

	c := &Capture{Path: path}
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		events, err := wire.ReadJSONL(f)
		if err != nil {
			c.DecodeError = err.Error()
		}
		c.Events = events
		return c, nil
	}

	dec := wire.NewFrameDecoder(f)
	for {
		ev, err := dec.ReadEvent()
		if errors.Is(err, io.EOF) {
			return c, nil
		}
		if err != nil {
			c.DecodeError = err.Error()
			if wire.IsFatalFrameError(err) {
				return c, nil
			}
			// Decode errors are scoped to one frame; keep going.
			continue
		}
		c.Events = append(c.Events, ev)
	}
}
