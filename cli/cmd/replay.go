package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/pellucid-io/scopes/adapter"
	"github.com/pellucid-io/scopes/cli/config"
	"github.com/pellucid-io/scopes/cli/reader"
	"github.com/pellucid-io/scopes/cli/render"
	"github.com/pellucid-io/scopes/iox"
	"github.com/pellucid-io/scopes/metrics"
)

// ReplayCommand returns the replay command.
// Replay re-delivers a captured reply stream through a configured sink,
// preserving event order. Useful for feeding a staging consumer with a
// production capture.
func ReplayCommand() *cli.Command {
	return &cli.Command{
		Name:      "replay",
		Usage:     "Re-deliver a captured reply stream through a sink",
		ArgsUsage: "<capture-file>",
		Flags: append(ReadOnlyFlags(),
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Sink configuration file (YAML)",
			},
		),
		Action: replayAction,
	}
}

// ReplayResponse is the response for the replay command.
type ReplayResponse struct {
	Capture   string `json:"capture"`
	ChannelID string `json:"channel_id"`
	Sink      string `json:"sink"`
	Delivered int    `json:"delivered"`
}

func replayAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.Exit("capture file required", 1)
	}
	if c.Bool("tui") {
		return cli.Exit("--tui is not supported for replay command", 1)
	}

	r, err := render.NewRenderer(c)
	if err != nil {
		return err
	}

	sinkCfg := adapter.Config{Kind: adapter.KindStdout}
	if path := c.String("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		sinkCfg = cfg.AdapterConfig()
	}

	capture, err := reader.ReadCapture(c.Args().First())
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	if capture.DecodeError != "" {
		return cli.Exit(fmt.Sprintf("capture is damaged: %s", capture.DecodeError), 1)
	}

	inner, err := adapter.New(sinkCfg)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	collector := metrics.NewCollector("", sinkCfg.Kind)
	sink := adapter.NewInstrumentedSink(inner, collector)

	for _, ev := range capture.Events {
		if err := sink.Send(c.Context, ev); err != nil {
			iox.DiscardClose(sink)
			return cli.Exit(fmt.Sprintf("delivery failed at seq %d: %v", ev.Seq, err), 1)
		}
	}
	if err := sink.Close(); err != nil {
		return cli.Exit(fmt.Sprintf("close sink: %v", err), 1)
	}

	resp := ReplayResponse{
		Capture:   capture.Path,
		Sink:      sinkCfg.Kind,
		Delivered: int(collector.Snapshot().EventsSent),
	}
	if len(capture.Events) > 0 {
		resp.ChannelID = capture.Events[0].ChannelID
	}
	return r.Render(resp)
}
