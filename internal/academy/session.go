package academy

import "fmt"

// transitions lists the allowed moves of the session state machine.
// Completed is terminal.
var transitions = map[SessionStatus][]SessionStatus{
	SessionScheduled:  {SessionReady, SessionInProgress},
	SessionReady:      {SessionInProgress},
	SessionInProgress: {SessionCompleted},
}

// CanTransition reports whether a session may move from one status to another.
func CanTransition(from, to SessionStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Joinable reports whether participants can join the session right now.
func (s Session) Joinable() bool {
	return s.Status == SessionInProgress
}

func (s *Session) moveTo(to SessionStatus) error {
	if !CanTransition(s.Status, to) {
		return fmt.Errorf("session %q: %s -> %s: %w", s.ID, s.Status, to, ErrInvalidTransition)
	}
	s.Status = to
	return nil
}

func (s *Session) complete(notes string) error {
	if err := s.moveTo(SessionCompleted); err != nil {
		return err
	}
	attended := true
	s.Notes = notes
	s.Attendance = &attended
	return nil
}
