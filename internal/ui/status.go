package ui

import "time"

// messageTTL is how long a transient status message stays visible.
const messageTTL = 3 * time.Second

// status is the transient message slot shown in the status line.
type status struct {
	text     string
	deadline time.Time
}

func (s *status) set(text string, deadline time.Time) {
	s.text = text
	s.deadline = deadline
}

func (s *status) expire(now time.Time) {
	if s.text != "" && now.After(s.deadline) {
		s.text = ""
	}
}

func (s *status) message() string { return s.text }
