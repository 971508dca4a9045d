package academy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Level is the outcome reported to the user for an operation.
type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is user-facing feedback produced by a store operation.
type Notification struct {
	Level    Level     `json:"level"`
	Message  string    `json:"message"`
	Entity   string    `json:"entity"`
	EntityID string    `json:"entityId,omitempty"`
	Op       string    `json:"op"`
	At       time.Time `json:"at"`
}

// Notifier delivers notifications to whoever presents them.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Recorder observes the outcome of every operation.
type Recorder interface {
	Observe(entity, op string, err error)
}

// Service runs store operations and reports their outcome. The store holds
// the state; the service owns every side effect.
type Service struct {
	store    *Store
	notifier Notifier
	recorder Recorder
	log      *zap.Logger
	now      func() time.Time
}

// NewService creates a service over store. Nil collaborators are replaced by no-ops.
func NewService(store *Store, notifier Notifier, recorder Recorder, log *zap.Logger) *Service {
	if notifier == nil {
		notifier = nopNotifier{}
	}
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: store, notifier: notifier, recorder: recorder, log: log, now: time.Now}
}

// Store exposes the underlying store for read-only views.
func (s *Service) Store() *Store { return s.store }

// Students returns the current students.
func (s *Service) Students() []Student { return s.store.Students() }

// Staff returns the current staff members.
func (s *Service) Staff() []StaffMember { return s.store.Staff() }

// Sessions returns the current sessions.
func (s *Service) Sessions() []Session { return s.store.Sessions() }

// AddStudent adds a student and reports it.
func (s *Service) AddStudent(ctx context.Context, in NewStudent) (Student, error) {
	st, err := s.store.AddStudent(in)
	s.report(ctx, "student", "add", st.ID, err, fmt.Sprintf("Student %q added successfully", in.Name))
	return st, err
}

// UpdateStudent updates a student and reports it.
func (s *Service) UpdateStudent(ctx context.Context, id string, upd StudentUpdate) (Student, error) {
	st, err := s.store.UpdateStudent(id, upd)
	s.report(ctx, "student", "update", id, err, "Student updated successfully")
	return st, err
}

// DeleteStudent removes a student and reports it.
func (s *Service) DeleteStudent(ctx context.Context, id string) error {
	_, err := s.store.DeleteStudent(id)
	s.report(ctx, "student", "delete", id, err, "Student removed successfully")
	return err
}

// AddStaff adds a staff member and reports it.
func (s *Service) AddStaff(ctx context.Context, in NewStaffMember) (StaffMember, error) {
	m, err := s.store.AddStaff(in)
	s.report(ctx, "staff", "add", m.ID, err, fmt.Sprintf("Staff member %q added successfully", in.Name))
	return m, err
}

// UpdateStaff updates a staff member and reports it.
func (s *Service) UpdateStaff(ctx context.Context, id string, upd StaffUpdate) (StaffMember, error) {
	m, err := s.store.UpdateStaff(id, upd)
	s.report(ctx, "staff", "update", id, err, "Staff member updated successfully")
	return m, err
}

// DeleteStaff removes a staff member and reports it.
func (s *Service) DeleteStaff(ctx context.Context, id string) error {
	_, err := s.store.DeleteStaff(id)
	s.report(ctx, "staff", "delete", id, err, "Staff member removed successfully")
	return err
}

// AddSession schedules a session and reports it.
func (s *Service) AddSession(ctx context.Context, in NewSession) (Session, error) {
	sess, err := s.store.AddSession(in)
	s.report(ctx, "session", "add", sess.ID, err, "Session scheduled successfully")
	return sess, err
}

// UpdateSession edits a session and reports it.
func (s *Service) UpdateSession(ctx context.Context, id string, upd SessionUpdate) (Session, error) {
	sess, err := s.store.UpdateSession(id, upd)
	s.report(ctx, "session", "update", id, err, "Session updated")
	return sess, err
}

// MarkSessionReady marks a session ready and reports it.
func (s *Service) MarkSessionReady(ctx context.Context, id string) (Session, error) {
	sess, err := s.store.MarkSessionReady(id)
	s.report(ctx, "session", "ready", id, err, "Session ready")
	return sess, err
}

// StartSession starts a session and reports it.
func (s *Service) StartSession(ctx context.Context, id string) (Session, error) {
	sess, err := s.store.StartSession(id)
	s.report(ctx, "session", "start", id, err, "Session started")
	return sess, err
}

// EndSession completes a session and reports it.
func (s *Service) EndSession(ctx context.Context, id, notes string) (Session, error) {
	sess, err := s.store.EndSession(id, notes)
	s.report(ctx, "session", "end", id, err, "Session completed")
	return sess, err
}

// JoinSession acknowledges a join. It fails unless the session is in progress.
func (s *Service) JoinSession(ctx context.Context, id string) (Session, error) {
	sess, err := s.store.JoinSession(id)
	s.report(ctx, "session", "join", id, err, fmt.Sprintf("Joined session with %s", sess.Student))
	return sess, err
}

func (s *Service) report(ctx context.Context, entity, op, id string, err error, okMsg string) {
	s.recorder.Observe(entity, op, err)

	n := Notification{Entity: entity, EntityID: id, Op: op, At: s.now().UTC()}
	if err != nil {
		n.Level = LevelError
		n.Message = failureMessage(entity, op, err)
		s.log.Warn("operation failed",
			zap.String("entity", entity), zap.String("op", op), zap.String("id", id), zap.Error(err))
	} else {
		n.Level = LevelSuccess
		n.Message = okMsg
		s.log.Info("operation applied",
			zap.String("entity", entity), zap.String("op", op), zap.String("id", id))
	}

	if nerr := s.notifier.Notify(ctx, n); nerr != nil {
		s.log.Warn("notify failed", zap.String("op", op), zap.Error(nerr))
	}
}

func failureMessage(entity, op string, err error) string {
	switch {
	case op == "join" && errors.Is(err, ErrInvalidTransition):
		return "Cannot join - session is not in progress"
	case errors.Is(err, ErrNotFound):
		return fmt.Sprintf("Cannot %s %s - not found", op, entity)
	case errors.Is(err, ErrInvalidTransition):
		return fmt.Sprintf("Cannot %s session - %v", op, err)
	default:
		return fmt.Sprintf("Cannot %s %s - %v", op, entity, err)
	}
}

type nopNotifier struct{}

func (nopNotifier) Notify(context.Context, Notification) error { return nil }

type nopRecorder struct{}

func (nopRecorder) Observe(string, string, error) {}
