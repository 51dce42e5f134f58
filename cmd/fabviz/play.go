package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/fabviz/audio"
	"github.com/lixenwraith/fabviz/catalog"
	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/event"
	"github.com/lixenwraith/fabviz/input"
	"github.com/lixenwraith/fabviz/render"
	"github.com/lixenwraith/fabviz/status"
	"github.com/lixenwraith/fabviz/window"
)

func newPlayCmd(a *app) *cobra.Command {
	var (
		backend  string
		autoplay bool
		mute     bool
	)
	cmd := &cobra.Command{
		Use:               "play [process]",
		Short:             "Play a process interactively",
		Long:              "Play a process in a window or the terminal. Falls back from window to terminal when no display is available.",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: processArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.resolveCatalog(args, "cmp")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("backend") {
				a.cfg.Render.Backend = backend
			}
			if cmd.Flags().Changed("autoplay") {
				a.cfg.Engine.Autoplay = autoplay
			}
			if mute {
				a.cfg.Audio.Enabled = false
			}
			return play(cmd.Context(), a, c, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", "auto", "auto, window, terminal or headless")
	cmd.Flags().BoolVarP(&autoplay, "autoplay", "a", false, "start playing immediately")
	cmd.Flags().BoolVarP(&mute, "mute", "m", false, "disable audio cues")
	return cmd
}

// engineOptions maps configuration onto loop options
func engineOptions(a *app, reg *status.Registry) engine.Options {
	return engine.Options{
		FPS:              a.cfg.Engine.FPS,
		ParticleCapacity: a.cfg.Engine.ParticleCapacity,
		RotateDegPerSec:  a.cfg.Engine.RotateDegPerSec,
		MaxFrameDelta:    a.cfg.Engine.MaxFrameDelta(),
		Autoplay:         a.cfg.Engine.Autoplay,
		Seed:             uint64(time.Now().UnixNano()),
		Registry:         reg,
		Logger:           a.logger,
	}
}

func play(ctx context.Context, a *app, c *catalog.Catalog, out io.Writer) (err error) {
	defer func() {
		if r := recover(); r != nil {
			engine.HandleCrash(r)
		}
	}()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := status.NewRegistry()
	loop := engine.New(c, engineOptions(a, reg))

	if spk := openAudio(a, loop, reg); spk != nil {
		defer spk.Close()
	}

	backend := a.cfg.Render.Backend
	a.logger.Info("session starting", "process", c.Name(), "backend", backend)

	if backend == "auto" || backend == "window" {
		reg.Strings.Get(status.KeyBackend).Store("window")
		err = runWindow(loop, a, c)
		if backend == "window" || !errors.Is(err, render.ErrBackendUnavailable) {
			return err
		}
		a.logger.Warn("window backend unavailable, falling back", "error", err)
	}

	if backend == "auto" || backend == "terminal" {
		reg.Strings.Get(status.KeyBackend).Store("terminal")
		err = runTerminal(ctx, loop, a)
		if backend == "terminal" || !errors.Is(err, render.ErrBackendUnavailable) {
			return err
		}
		a.logger.Warn("terminal backend unavailable, falling back", "error", err)
	}

	reg.Strings.Get(status.KeyBackend).Store("headless")
	return runHeadless(ctx, loop, out)
}

// openAudio registers cues on loop; a missing audio device only disables sound
func openAudio(a *app, loop *engine.Loop, reg *status.Registry) *audio.Speaker {
	cfg := audio.Config{
		Enabled:      a.cfg.Audio.Enabled,
		MasterVolume: a.cfg.Audio.MasterVolume,
		SampleRate:   a.cfg.Audio.SampleRate,
	}
	if !cfg.Enabled {
		return nil
	}
	spk, err := audio.OpenSpeaker(cfg)
	if err != nil {
		a.logger.Warn("audio disabled", "error", err)
		return nil
	}
	loop.Register(audio.NewCues(cfg, spk, reg, a.logger))
	return spk
}

func runWindow(loop *engine.Loop, a *app, c *catalog.Catalog) error {
	host := window.New(loop, window.Options{
		Width:  a.cfg.Render.Width,
		Height: a.cfg.Render.Height,
		Title:  "fabviz: " + c.Title(),
	})
	return host.Run()
}

func runTerminal(ctx context.Context, loop *engine.Loop, a *app) error {
	term, err := render.NewTerminal(render.TerminalOptions{ColorMode: a.cfg.Render.Color})
	if err != nil {
		return err
	}
	defer term.Fini()

	loop.SetPresenter(term)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	reader := input.NewReader(term.Screen(), nil)
	reader.Start(ctx)
	return loop.Run(ctx, reader.Actions())
}

// runHeadless plays in real time without a display, printing each step until playback finishes
func runHeadless(ctx context.Context, loop *engine.Loop, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loop.SetPresenter(nil)
	loop.Register(event.HandlerFunc{
		Types: []event.EventType{event.EventStepChanged, event.EventPlaybackFinished},
		Fn: func(ev event.Event) {
			if ev.Type == event.EventPlaybackFinished {
				fmt.Fprintln(out, successMsg("finished"))
				cancel()
				return
			}
			pl, ok := ev.Payload.(*event.StepChangedPayload)
			if !ok || pl.Step == nil {
				return
			}
			fmt.Fprintf(out, "%s  %s\n", accent(loop.Panel().View().Label), bold(pl.Step.Title))
			for _, param := range pl.Step.Parameters {
				fmt.Fprintf(out, "    %s\n", muted(param.String()))
			}
		},
	})
	loop.Controller().Play()
	return loop.Run(ctx, nil)
}
