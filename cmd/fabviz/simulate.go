package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/status"
)

// timelineEntry is one recorded step transition
type timelineEntry struct {
	At        time.Duration
	Index     int
	Title     string
	Particles int
}

// timeline records step changes against the simulated clock
type timeline struct {
	start    time.Time
	loop     *engine.Loop
	entries  []timelineEntry
	finished time.Duration
	done     bool
}

func (t *timeline) HandleEvent(ev event.Event) {
	switch ev.Type {
	case event.EventStepChanged:
		pl, ok := ev.Payload.(*event.StepChangedPayload)
		if !ok || pl.Step == nil {
			return
		}
		t.entries = append(t.entries, timelineEntry{
			At:        ev.Timestamp.Sub(t.start),
			Index:     pl.Step.Index,
			Title:     pl.Step.Title,
			Particles: t.loop.Field().Live(),
		})
	case event.EventPlaybackFinished:
		t.finished = ev.Timestamp.Sub(t.start)
		t.done = true
	}
}

func (t *timeline) EventTypes() []event.EventType {
	return []event.EventType{event.EventStepChanged, event.EventPlaybackFinished}
}

// simulate auto-plays c to the end on a mock clock at fps and returns the recorded timeline
// Stops after twice the catalog duration if playback never finishes
func simulate(c *catalog.Catalog, opts engine.Options, fps int) (*timeline, *engine.Loop) {
	start := time.Unix(0, 0).UTC()
	clock := engine.NewMockTimeProvider(start)
	opts.Clock = clock
	opts.Autoplay = true
	opts.Seed = 1
	opts.FPS = fps

	loop := engine.New(c, opts)
	tl := &timeline{start: start, loop: loop}
	loop.Register(tl)

	dt := loop.Interval()
	limit := 2 * c.Total()
	loop.Tick()
	for !tl.done && clock.Elapsed() < limit {
		clock.Advance(dt)
		loop.Tick()
	}
	return tl, loop
}

func newSimulateCmd(a *app) *cobra.Command {
	var (
		fps       int
		showStats bool
	)
	cmd := &cobra.Command{
		Use:               "simulate [process]",
		Short:             "Auto-play a process headlessly and print its timeline",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: processArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.resolveCatalog(args, "cmp")
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("fps") {
				fps = a.cfg.Engine.FPS
			}
			if fps < 1 {
				return fmt.Errorf("simulate: fps must be positive, got %d", fps)
			}

			reg := status.NewRegistry()
			tl, _ := simulate(c, engineOptions(a, reg), fps)
			printTimeline(cmd.OutOrStdout(), c, tl)
			if showStats {
				var rows [][]string
				for _, e := range reg.Snapshot() {
					rows = append(rows, []string{e.Key, e.Value})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows))
			}
			if !tl.done {
				return fmt.Errorf("simulate: playback did not finish within %s", seconds(2*c.Total()))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&fps, "fps", 30, "simulated frame rate")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print engine metrics after the run")
	return cmd
}

func printTimeline(w io.Writer, c *catalog.Catalog, tl *timeline) {
	fmt.Fprintf(w, "%s %s\n", bold(c.Title()), muted("("+c.Name()+")"))
	rows := make([][]string, 0, len(tl.entries))
	for _, e := range tl.entries {
		rows = append(rows, []string{seconds(e.At), strconv.Itoa(e.Index + 1), e.Title, strconv.Itoa(e.Particles)})
	}
	fmt.Fprintln(w, renderTable([]string{"Time", "#", "Step", "Particles"}, rows))
	if tl.done {
		fmt.Fprintln(w, successMsg("finished at %s (authored %s)", seconds(tl.finished), seconds(c.Total())))
	}
}
