package cmd

import (
	"github.com/urfave/cli/v2"

	"github.com/pellucid-io/scopes/cli/reader"
	"github.com/pellucid-io/scopes/cli/render"
	"github.com/pellucid-io/scopes/types"
)

// InspectCommand returns the inspect command with subcommands.
// Inspect gives a deep view of a single captured reply stream.
func InspectCommand() *cli.Command {
	return &cli.Command{
		Name:  "inspect",
		Usage: "Inspect a captured reply stream",
		Subcommands: []*cli.Command{
			inspectStreamCommand(),
			inspectEventsCommand(),
		},
	}
}

func inspectStreamCommand() *cli.Command {
	return &cli.Command{
		Name:      "stream",
		Usage:     "Summarize a capture file",
		ArgsUsage: "<capture-file>",
		Flags:     ReadOnlyFlags(),
		Action:    inspectStreamAction,
	}
}

func inspectStreamAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("capture file required", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	capture, err := reader.ReadCapture(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	if c.Bool("tui") {
		return r.RenderTUI("inspect_stream", capture)
	}
	return r.Render(capture.Summary())
}

func inspectEventsCommand() *cli.Command {
	return &cli.Command{
		Name:      "events",
		Usage:     "List the events of a capture file",
		ArgsUsage: "<capture-file>",
		Flags:     ReadOnlyFlags(),
		Action:    inspectEventsAction,
	}
}

// EventRow is one event of a capture, flattened for rendering.
type EventRow struct {
	Seq      int64  `json:"seq"`
	Type     string `json:"type"`
	Ts       string `json:"ts"`
	Category string `json:"category,omitempty"`
	Widgets  int    `json:"widgets,omitempty"`
	Message  string `json:"message,omitempty"`
}

func inspectEventsAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("capture file required", 1)
	}

	// Event listing is tabular; the TUI view belongs to inspect stream.
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for inspect events", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	capture, err := reader.ReadCapture(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return r.Render(eventRows(capture.Events))
}

func eventRows(events []*types.ReplyEvent) []EventRow {
	rows := make([]EventRow, 0, len(events))
	for _, ev := range events {
		row := EventRow{
			Seq:     ev.Seq,
			Type:    string(ev.Type),
			Ts:      ev.Ts,
			Widgets: len(ev.Widgets),
			Message: ev.Message,
		}
		if ev.Result != nil {
			row.Category = ev.Result.CategoryID
		}
		if ev.Category != nil {
			row.Category = ev.Category.ID
		}
		rows = append(rows, row)
	}
	return rows
}
