package input

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/fabviz/engine"
)

// Reader polls a tcell screen on its own goroutine and delivers actions over a channel
type Reader struct {
	screen  tcell.Screen
	table   *KeyTable
	actions chan engine.Action
}

// NewReader creates a reader with a buffered action channel
func NewReader(screen tcell.Screen, table *KeyTable) *Reader {
	if table == nil {
		table = DefaultKeyTable()
	}
	return &Reader{
		screen:  screen,
		table:   table,
		actions: make(chan engine.Action, 32),
	}
}

// Actions is closed when polling stops
func (r *Reader) Actions() <-chan engine.Action {
	return r.actions
}

// Start launches the poll goroutine under crash recovery
// Polling ends when the screen is finalized or ctx is done
func (r *Reader) Start(ctx context.Context) {
	engine.Go(func() {
		r.poll(ctx)
	})
}

func (r *Reader) poll(ctx context.Context) {
	defer close(r.actions)
	for {
		ev := r.screen.PollEvent()
		if ev == nil {
			return
		}
		switch ev := ev.(type) {
		case *tcell.EventKey:
			a, ok := r.table.Map(ev)
			if !ok {
				continue
			}
			select {
			case r.actions <- a:
			case <-ctx.Done():
				return
			}
		case *tcell.EventResize:
			r.screen.Sync()
		}
		if ctx.Err() != nil {
			return
		}
	}
}
