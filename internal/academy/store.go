package academy

import (
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// Snapshot is a point-in-time copy of every collection in the store.
type Snapshot struct {
	Students []Student     `json:"students" yaml:"students"`
	Staff    []StaffMember `json:"staff" yaml:"staff"`
	Sessions []Session     `json:"sessions" yaml:"sessions"`
}

// Store owns the student, staff and session collections.
// Collections keep insertion order; updates never reorder them.
// All reads return copies, all writes go through the mutation methods.
type Store struct {
	mu       sync.RWMutex
	students []Student
	staff    []StaffMember
	sessions []Session
	newID    func(kind string) string
}

// NewStore creates a store seeded with the given snapshot. Seed records must
// carry unique ids, known statuses and in-range numbers; descriptive fields
// may be blank.
func NewStore(seed Snapshot) (*Store, error) {
	if err := checkSeed(seed); err != nil {
		return nil, err
	}
	return &Store{
		students: slices.Clone(seed.Students),
		staff:    slices.Clone(seed.Staff),
		sessions: slices.Clone(seed.Sessions),
		newID:    func(kind string) string { return kind + "-" + uuid.NewString() },
	}, nil
}

func checkSeed(seed Snapshot) error {
	seen := map[string]bool{}
	check := func(kind, id string, v any, skip ...string) error {
		if id == "" {
			return fmt.Errorf("seed %s without id: %w", kind, ErrValidation)
		}
		key := kind + "/" + id
		if seen[key] {
			return fmt.Errorf("seed %s %q: duplicate id: %w", kind, id, ErrValidation)
		}
		seen[key] = true
		if err := validateSeed(v, skip...); err != nil {
			return fmt.Errorf("seed %s %q: %w", kind, id, err)
		}
		return nil
	}
	for _, st := range seed.Students {
		if err := check("student", st.ID, st, "Name", "Email"); err != nil {
			return err
		}
	}
	for _, m := range seed.Staff {
		if err := check("staff", m.ID, m, "Name", "Email", "Role"); err != nil {
			return err
		}
	}
	for _, s := range seed.Sessions {
		if err := check("session", s.ID, s, "Student", "Tutor", "Time"); err != nil {
			return err
		}
	}
	return nil
}

// Students returns the current students in insertion order.
func (s *Store) Students() []Student {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.students)
}

// Staff returns the current staff members in insertion order.
func (s *Store) Staff() []StaffMember {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.staff)
}

// Sessions returns the current sessions in insertion order.
func (s *Store) Sessions() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.sessions)
	for i := range out {
		out[i].Attendance = cloneBool(out[i].Attendance)
	}
	return out
}

// Snapshot returns all three collections read under a single lock.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sessions := slices.Clone(s.sessions)
	for i := range sessions {
		sessions[i].Attendance = cloneBool(sessions[i].Attendance)
	}
	return Snapshot{
		Students: slices.Clone(s.students),
		Staff:    slices.Clone(s.staff),
		Sessions: sessions,
	}
}

// Student returns a single student by id.
func (s *Store) Student(id string) (Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.studentIndex(id)
	if i < 0 {
		return Student{}, notFound("student", id)
	}
	return s.students[i], nil
}

// StaffMember returns a single staff member by id.
func (s *Store) StaffMember(id string) (StaffMember, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.staffIndex(id)
	if i < 0 {
		return StaffMember{}, notFound("staff member", id)
	}
	return s.staff[i], nil
}

// Session returns a single session by id.
func (s *Store) Session(id string) (Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.sessionIndex(id)
	if i < 0 {
		return Session{}, notFound("session", id)
	}
	out := s.sessions[i]
	out.Attendance = cloneBool(out.Attendance)
	return out, nil
}

// -------- Students --------

// AddStudent appends a student under a freshly generated id.
func (s *Store) AddStudent(in NewStudent) (Student, error) {
	st := Student{
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		CurrentSurah:   in.CurrentSurah,
		Progress:       in.Progress,
		Status:         in.Status,
		Tutor:          in.Tutor,
		EnrollmentDate: in.EnrollmentDate,
	}
	if st.Status == "" {
		st.Status = StatusActive
	}
	if err := validateEntity(st); err != nil {
		return Student{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	st.ID = s.newID("student")
	s.students = append(s.students, st)
	return st, nil
}

// UpdateStudent merges the set fields of upd into the student.
// The store is left untouched when the merged record is invalid.
func (s *Store) UpdateStudent(id string, upd StudentUpdate) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.studentIndex(id)
	if i < 0 {
		return Student{}, notFound("student", id)
	}
	st := s.students[i]
	upd.apply(&st)
	if err := validateEntity(st); err != nil {
		return Student{}, err
	}
	s.students[i] = st
	return st, nil
}

// DeleteStudent removes the student. Sessions naming the student are kept.
func (s *Store) DeleteStudent(id string) (Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.studentIndex(id)
	if i < 0 {
		return Student{}, notFound("student", id)
	}
	st := s.students[i]
	s.students = slices.Delete(s.students, i, i+1)
	return st, nil
}

// -------- Staff --------

// AddStaff appends a staff member under a freshly generated id.
func (s *Store) AddStaff(in NewStaffMember) (StaffMember, error) {
	m := StaffMember{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Role:     in.Role,
		Students: in.Students,
		Status:   in.Status,
	}
	if m.Status == "" {
		m.Status = StatusActive
	}
	if err := validateEntity(m); err != nil {
		return StaffMember{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.newID("staff")
	s.staff = append(s.staff, m)
	return m, nil
}

// UpdateStaff merges the set fields of upd into the staff member.
func (s *Store) UpdateStaff(id string, upd StaffUpdate) (StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.staffIndex(id)
	if i < 0 {
		return StaffMember{}, notFound("staff member", id)
	}
	m := s.staff[i]
	upd.apply(&m)
	if err := validateEntity(m); err != nil {
		return StaffMember{}, err
	}
	s.staff[i] = m
	return m, nil
}

// DeleteStaff removes the staff member. Students and sessions naming them are kept.
func (s *Store) DeleteStaff(id string) (StaffMember, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.staffIndex(id)
	if i < 0 {
		return StaffMember{}, notFound("staff member", id)
	}
	m := s.staff[i]
	s.staff = slices.Delete(s.staff, i, i+1)
	return m, nil
}

// -------- Sessions --------

// AddSession schedules a new session. Its status is always scheduled.
func (s *Store) AddSession(in NewSession) (Session, error) {
	sess := Session{
		Student:  in.Student,
		Tutor:    in.Tutor,
		Time:     in.Time,
		Duration: in.Duration,
		Surah:    in.Surah,
		Status:   SessionScheduled,
	}
	if sess.Duration == "" {
		sess.Duration = DefaultDuration
	}
	if err := validateEntity(sess); err != nil {
		return Session{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = s.newID("session")
	s.sessions = append(s.sessions, sess)
	return sess, nil
}

// UpdateSession edits the descriptive fields of a session. Status only
// changes through the transition methods.
func (s *Store) UpdateSession(id string, upd SessionUpdate) (Session, error) {
	return s.mutateSession(id, func(sess *Session) error {
		upd.apply(sess)
		return validateEntity(*sess)
	})
}

// MarkSessionReady moves a scheduled session to ready.
func (s *Store) MarkSessionReady(id string) (Session, error) {
	return s.mutateSession(id, func(sess *Session) error {
		return sess.moveTo(SessionReady)
	})
}

// StartSession moves a scheduled or ready session to in progress.
func (s *Store) StartSession(id string) (Session, error) {
	return s.mutateSession(id, func(sess *Session) error {
		return sess.moveTo(SessionInProgress)
	})
}

// EndSession completes an in-progress session, recording notes and attendance.
func (s *Store) EndSession(id, notes string) (Session, error) {
	return s.mutateSession(id, func(sess *Session) error {
		return sess.complete(notes)
	})
}

// JoinSession checks that a session can be joined. It never mutates state.
func (s *Store) JoinSession(id string) (Session, error) {
	sess, err := s.Session(id)
	if err != nil {
		return Session{}, err
	}
	if !sess.Joinable() {
		return sess, fmt.Errorf("session %q is not in progress: %w", id, ErrInvalidTransition)
	}
	return sess, nil
}

// mutateSession applies fn to a copy and commits it only when fn succeeds.
func (s *Store) mutateSession(id string, fn func(*Session) error) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.sessionIndex(id)
	if i < 0 {
		return Session{}, notFound("session", id)
	}
	sess := s.sessions[i]
	sess.Attendance = cloneBool(sess.Attendance)
	if err := fn(&sess); err != nil {
		return Session{}, err
	}
	s.sessions[i] = sess
	out := sess
	out.Attendance = cloneBool(sess.Attendance)
	return out, nil
}

func (s *Store) studentIndex(id string) int {
	return slices.IndexFunc(s.students, func(st Student) bool { return st.ID == id })
}

func (s *Store) staffIndex(id string) int {
	return slices.IndexFunc(s.staff, func(m StaffMember) bool { return m.ID == id })
}

func (s *Store) sessionIndex(id string) int {
	return slices.IndexFunc(s.sessions, func(sess Session) bool { return sess.ID == id })
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
