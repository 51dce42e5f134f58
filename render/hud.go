package render

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/fabviz/engine"
	"github.com/lixenwraith/fabviz/panel"
)

// Legend is the control help line shown by interactive backends
const Legend = "←/h prev  →/l next  space play/pause  r reset  1-9 seek  ↑↓[] orbit  +/- zoom  p spin  tab stats  q quit"

// ProgressBar renders ratio as a fixed-width bar of full and light shade blocks
func ProgressBar(width int, ratio float64) string {
	if width <= 0 {
		return ""
	}
	ratio = min(max(ratio, 0), 1)
	filled := int(ratio*float64(width) + 0.5)
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// ModeLabel describes the playback mode for the HUD
func ModeLabel(v panel.View) string {
	switch {
	case v.Finished:
		return "■ Finished"
	case v.Playing:
		return "▶ Playing"
	default:
		return "❚❚ Paused"
	}
}

// HUDLines formats the side panel text for f, wrapping prose to width columns
func HUDLines(f *engine.Frame, width int) []string {
	v := f.HUD
	lines := []string{
		f.Title,
		fmt.Sprintf("%s  %s", v.Label, ModeLabel(v)),
		ProgressBar(max(width-2, 1), v.Progress),
		"",
		v.Title,
	}
	lines = append(lines, Wrap(v.Description, width)...)
	if len(v.Parameters) > 0 {
		lines = append(lines, "", "Parameters")
		for _, p := range v.Parameters {
			lines = append(lines, Wrap("  "+p.String(), width)...)
		}
	}
	if len(f.Stats) > 0 {
		lines = append(lines, "", "Stats")
		for _, e := range f.Stats {
			lines = append(lines, fmt.Sprintf("  %-22s %s", e.Key, e.Value))
		}
	}
	return lines
}

// Wrap breaks s into lines of at most width runes at word boundaries
// Words longer than width are split
func Wrap(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 || width <= 0 {
		return nil
	}
	var lines []string
	var cur []rune
	for _, w := range words {
		wr := []rune(w)
		for len(wr) > width {
			if len(cur) > 0 {
				lines = append(lines, string(cur))
				cur = cur[:0]
			}
			lines = append(lines, string(wr[:width]))
			wr = wr[width:]
		}
		switch {
		case len(cur) == 0:
			cur = append(cur, wr...)
		case len(cur)+1+len(wr) <= width:
			cur = append(cur, ' ')
			cur = append(cur, wr...)
		default:
			lines = append(lines, string(cur))
			cur = append(cur[:0], wr...)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, string(cur))
	}
	return lines
}
