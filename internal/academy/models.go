package academy

// Status is the activity flag shared by students and staff.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// SessionStatus is the lifecycle state of a learning session.
type SessionStatus string

const (
	SessionScheduled  SessionStatus = "scheduled"
	SessionReady      SessionStatus = "ready"
	SessionInProgress SessionStatus = "in_progress"
	SessionCompleted  SessionStatus = "completed"
)

// CoordinatorRole is the staff role that never takes students.
const CoordinatorRole = "Coordinator"

// DefaultDuration is used when a session is scheduled without a duration.
const DefaultDuration = "45 min"

// Student represents an enrolled learner.
type Student struct {
	ID             string `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name" validate:"required"`
	Email          string `json:"email" yaml:"email" validate:"required"`
	Phone          string `json:"phone,omitempty" yaml:"phone"`
	CurrentSurah   string `json:"currentSurah" yaml:"currentSurah"`
	Progress       int    `json:"progress" yaml:"progress" validate:"min=0,max=100"`
	Status         Status `json:"status" yaml:"status" validate:"oneof=active inactive"`
	Tutor          string `json:"tutor" yaml:"tutor"`
	EnrollmentDate string `json:"enrollmentDate,omitempty" yaml:"enrollmentDate"`
}

// StaffMember represents a tutor, coordinator or administrator.
type StaffMember struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name" validate:"required"`
	Email    string `json:"email" yaml:"email" validate:"required"`
	Phone    string `json:"phone" yaml:"phone"`
	Role     string `json:"role" yaml:"role" validate:"required"`
	Students int    `json:"students" yaml:"students" validate:"min=0"`
	Status   Status `json:"status" yaml:"status" validate:"oneof=active inactive"`
}

// Session is a scheduled learning session between a student and a tutor.
// Student and Tutor are display names, not ids.
type Session struct {
	ID         string        `json:"id" yaml:"id"`
	Student    string        `json:"student" yaml:"student" validate:"required"`
	Tutor      string        `json:"tutor" yaml:"tutor" validate:"required"`
	Time       string        `json:"time" yaml:"time" validate:"required"`
	Duration   string        `json:"duration" yaml:"duration"`
	Surah      string        `json:"surah" yaml:"surah"`
	Status     SessionStatus `json:"status" yaml:"status" validate:"oneof=scheduled ready in_progress completed"`
	Notes      string        `json:"notes,omitempty" yaml:"notes"`
	Attendance *bool         `json:"attendance,omitempty" yaml:"attendance"`
}

// NewStudent carries the fields of a student about to be added.
type NewStudent struct {
	Name           string
	Email          string
	Phone          string
	CurrentSurah   string
	Progress       int
	Status         Status
	Tutor          string
	EnrollmentDate string
}

// StudentUpdate lists the mutable student fields. Nil fields are left unchanged.
type StudentUpdate struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	Phone          *string `json:"phone"`
	CurrentSurah   *string `json:"currentSurah"`
	Progress       *int    `json:"progress"`
	Status         *Status `json:"status"`
	Tutor          *string `json:"tutor"`
	EnrollmentDate *string `json:"enrollmentDate"`
}

// NewStaffMember carries the fields of a staff member about to be added.
type NewStaffMember struct {
	Name     string
	Email    string
	Phone    string
	Role     string
	Students int
	Status   Status
}

// StaffUpdate lists the mutable staff fields. Nil fields are left unchanged.
type StaffUpdate struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Role     *string `json:"role"`
	Students *int    `json:"students"`
	Status   *Status `json:"status"`
}

// NewSession carries the fields of a session about to be scheduled.
// There is no status: new sessions always start out scheduled.
type NewSession struct {
	Student  string
	Tutor    string
	Time     string
	Duration string
	Surah    string
}

// SessionUpdate lists the session fields editable outside of transitions.
type SessionUpdate struct {
	Student  *string `json:"student"`
	Tutor    *string `json:"tutor"`
	Time     *string `json:"time"`
	Duration *string `json:"duration"`
	Surah    *string `json:"surah"`
	Notes    *string `json:"notes"`
}

func (u StudentUpdate) apply(st *Student) {
	setIf(&st.Name, u.Name)
	setIf(&st.Email, u.Email)
	setIf(&st.Phone, u.Phone)
	setIf(&st.CurrentSurah, u.CurrentSurah)
	setIf(&st.Progress, u.Progress)
	setIf(&st.Status, u.Status)
	setIf(&st.Tutor, u.Tutor)
	setIf(&st.EnrollmentDate, u.EnrollmentDate)
}

func (u StaffUpdate) apply(m *StaffMember) {
	setIf(&m.Name, u.Name)
	setIf(&m.Email, u.Email)
	setIf(&m.Phone, u.Phone)
	setIf(&m.Role, u.Role)
	setIf(&m.Students, u.Students)
	setIf(&m.Status, u.Status)
}

func (u SessionUpdate) apply(s *Session) {
	setIf(&s.Student, u.Student)
	setIf(&s.Tutor, u.Tutor)
	setIf(&s.Time, u.Time)
	setIf(&s.Duration, u.Duration)
	setIf(&s.Surah, u.Surah)
	setIf(&s.Notes, u.Notes)
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}
