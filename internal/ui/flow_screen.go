package ui

import (
	"fmt"
	"time"

	"github.com/timapple/writeapp/internal/flow"
	"github.com/timapple/writeapp/internal/term"
)

// Timed flow sessions selectable from the flow screen.
var flowDurations = []time.Duration{
	5 * time.Minute,
	10 * time.Minute,
	15 * time.Minute,
}

func (u *UI) handleFlowKey(ev term.KeyEvent) {
	if ev.Key == term.KeyEscape {
		u.navigate(ScreenMenu)
		return
	}

	switch ev.Rune {
	case '1', '2', '3':
		u.startTimedFlow(flowDurations[ev.Rune-'1'])
	case 'q':
		u.navigate(ScreenMenu)
	}
}

// startTimedFlow opens a fresh draft with a countdown. The session record
// is the ordinary word-count session; the timer only decides when to close
// it.
func (u *UI) startTimedFlow(d time.Duration) {
	u.newDraft("")
	if u.active != ScreenWriting {
		return
	}
	u.writing.deadline = u.now().Add(d)
}

func (u *UI) drawFlow() {
	w, h := u.backend.Size()

	u.drawText(2, 1, u.accentStyle(), "Flow")
	u.drawText(2, h-1, u.dimStyle(), "1/2/3 timed session (5/10/15 min) · esc back")

	history := u.tracker.History()
	totals := flow.Summarize(history)
	u.drawText(2, 3, u.dimStyle(), fmt.Sprintf(
		"%d sessions · %+d words · %s total",
		totals.Sessions, totals.NetWords, totals.Time.Round(time.Minute)))

	if len(history) == 0 {
		u.drawText(4, 5, u.dimStyle(), "no sessions yet")
		return
	}

	for i, s := range history {
		y := 5 + i
		if y >= h-2 {
			break
		}
		line := fmt.Sprintf("%s  %6s  %+5d words",
			s.StartTime.Format("2006-01-02 15:04"),
			s.Duration().Round(time.Second),
			s.WordDelta())
		u.drawText(4, y, term.Style{}, truncate(line, w-6))
	}
}
