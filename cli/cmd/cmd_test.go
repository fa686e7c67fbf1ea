package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/pellucid-io/scopes/iox"
	"github.com/pellucid-io/scopes/reply"
	"github.com/pellucid-io/scopes/types"
	"github.com/pellucid-io/scopes/wire"
)

// newTestApp builds an app whose errors are returned instead of calling
// os.Exit, so tests can assert on them.
func newTestApp() *cli.App {
	return &cli.App{
		Name: "scopectl",
		Commands: []*cli.Command{
			InspectCommand(),
			ReplayCommand(),
			VersionCommand("deadbeef"),
		},
		ExitErrHandler: func(*cli.Context, error) {},
	}
}

// writeJSONLCapture streams a short search reply into a .jsonl file.
func writeJSONLCapture(t *testing.T, dir string) string {
	t.Helper()

	path := filepath.Join(dir, "stream.jsonl")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	sink := wire.NewJSONLSink(f)

	r := reply.NewSearchReply(sink, reply.Config{ChannelID: "ch-cmd", Context: t.Context()})
	cat, err := r.RegisterCategory("news", "News", "", "")
	if err != nil {
		t.Fatalf("register category: %v", err)
	}
	res := types.NewCategorisedResult(cat)
	if err := res.Set("uri", "https://example.com/a"); err != nil {
		t.Fatalf("set uri: %v", err)
	}
	if err := res.Set("title", "Headline"); err != nil {
		t.Fatalf("set title: %v", err)
	}
	if err := r.Push(res); err != nil {
		t.Fatalf("push: %v", err)
	}
	if err := r.Finished(); err != nil {
		t.Fatalf("finished: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return path
}

func TestReadOnlyFlags_IncludesTUI(t *testing.T) {
	hasTUI := false
	for _, f := range ReadOnlyFlags() {
		if f.Names()[0] == "tui" {
			hasTUI = true
			break
		}
	}
	if !hasTUI {
		t.Error("ReadOnlyFlags should include --tui flag for explicit error handling")
	}
}

func TestInspectStream_Summarizes(t *testing.T) {
	path := writeJSONLCapture(t, t.TempDir())

	app := newTestApp()
	if err := app.Run([]string{"scopectl", "inspect", "stream", "--format", "json", path}); err != nil {
		t.Fatalf("run: %v", err)
	}
}

func TestInspectStream_RequiresArg(t *testing.T) {
	app := newTestApp()
	err := app.Run([]string{"scopectl", "inspect", "stream", "--format", "json"})
	if err == nil || !strings.Contains(err.Error(), "capture file required") {
		t.Fatalf("err = %v", err)
	}
}

func TestInspectEvents_RejectsTUI(t *testing.T) {
	path := writeJSONLCapture(t, t.TempDir())

	app := newTestApp()
	err := app.Run([]string{"scopectl", "inspect", "events", "--tui", path})
	if err == nil || !strings.Contains(err.Error(), "--tui is not supported") {
		t.Fatalf("err = %v", err)
	}
}

func TestVersion_RejectsTUI(t *testing.T) {
	app := newTestApp()
	err := app.Run([]string{"scopectl", "version", "--tui"})
	if err == nil || !strings.Contains(err.Error(), "--tui is not supported") {
		t.Fatalf("err = %v", err)
	}
}

func TestEventRows(t *testing.T) {
	rows := eventRows([]*types.ReplyEvent{
		{Seq: 1, Type: types.EventTypeCategory, Category: &types.Category{ID: "news", Title: "News"}},
		{Seq: 2, Type: types.EventTypeResult, Result: &types.CategorisedResult{CategoryID: "news"}},
		{Seq: 3, Type: types.EventTypeWidgets, Widgets: []types.PreviewWidget{`{"id":"w1","type":"text"}`}},
		{Seq: 4, Type: types.EventTypeError, Message: "backend timeout"},
	})

	if len(rows) != 4 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0].Category != "news" || rows[1].Category != "news" {
		t.Fatalf("categories = %q/%q", rows[0].Category, rows[1].Category)
	}
	if rows[2].Widgets != 1 {
		t.Fatalf("widgets = %d", rows[2].Widgets)
	}
	if rows[3].Message != "backend timeout" {
		t.Fatalf("message = %q", rows[3].Message)
	}
}

func TestReplay_FileSink(t *testing.T) {
	dir := t.TempDir()
	capture := writeJSONLCapture(t, dir)
	out := filepath.Join(dir, "replayed.jsonl")

	cfgPath := filepath.Join(dir, "config.yaml")
	cfg := "sink:\n  kind: file\n  path: " + out + "\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	app := newTestApp()
	if err := app.Run([]string{"scopectl", "replay", "--format", "json", "--config", cfgPath, capture}); err != nil {
		t.Fatalf("run: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open replayed: %v", err)
	}
	t.Cleanup(iox.CloseFunc(f))

	events, err := wire.ReadJSONL(f)
	if err != nil {
		t.Fatalf("read replayed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].ChannelID != "ch-cmd" {
		t.Fatalf("channel id = %q", events[0].ChannelID)
	}
}

func TestReplay_DamagedCaptureFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.bin")
	// A lone truncated prefix is a damaged framed capture.
	if err := os.WriteFile(path, []byte{0, 0}, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	app := newTestApp()
	err := app.Run([]string{"scopectl", "replay", "--format", "json", path})
	if err == nil || !strings.Contains(err.Error(), "damaged") {
		t.Fatalf("err = %v", err)
	}
}
