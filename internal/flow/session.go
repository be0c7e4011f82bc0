// Package flow records writing sessions: contiguous intervals of work on a
// draft with the word count at each end. Closed sessions are appended to the
// flow.json log and never mutated afterwards.
package flow

import "time"

// Session is one writing interval. DraftID is a weak reference: the draft may
// be deleted later and the record remains as historical fact.
type Session struct {
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	WordsStart int       `json:"words_start"`
	WordsEnd   int       `json:"words_end"`
	DraftID    string    `json:"draft_id"`
}

// WordDelta returns the net words written during the session.
// Negative when the session ended with fewer words than it started.
func (s Session) WordDelta() int {
	return s.WordsEnd - s.WordsStart
}

// Duration returns the session length.
func (s Session) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// Totals summarizes a set of sessions for the flow screen.
type Totals struct {
	Sessions int
	NetWords int
	Time     time.Duration
}

// Summarize computes totals over the given sessions.
func Summarize(sessions []Session) Totals {
	var t Totals
	for _, s := range sessions {
		t.Sessions++
		t.NetWords += s.WordDelta()
		t.Time += s.Duration()
	}
	return t
}
