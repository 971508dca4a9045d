package academy

import (
	"cmp"
	"math"
	"slices"
)

// Role distinguishes the organisation view from a staff member's own view.
type Role string

const (
	RoleCompany Role = "company"
	RoleStaff   Role = "staff"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleCompany || r == RoleStaff
}

// Actor is whoever a view is computed for.
type Actor struct {
	ID   string
	Name string
	Role Role
}

// UpcomingSessions returns sessions that are not completed, in store order,
// truncated to n. n <= 0 means no limit.
func UpcomingSessions(sessions []Session, n int) []Session {
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if s.Status != SessionCompleted {
			out = append(out, s)
		}
	}
	return truncate(out, n)
}

// TopStudents returns active students ordered by progress, highest first.
// Ties keep store order.
func TopStudents(students []Student, n int) []Student {
	out := ActiveStudents(students)
	slices.SortStableFunc(out, func(a, b Student) int {
		return cmp.Compare(b.Progress, a.Progress)
	})
	return truncate(out, n)
}

// Ranked is a student with a 1-based leaderboard position.
type Ranked struct {
	Rank    int     `json:"rank"`
	Student Student `json:"student"`
}

// Leaderboard ranks every active student by progress, highest first.
func Leaderboard(students []Student) []Ranked {
	top := TopStudents(students, 0)
	out := make([]Ranked, len(top))
	for i, st := range top {
		out[i] = Ranked{Rank: i + 1, Student: st}
	}
	return out
}

// ActiveStudents returns the students with an active status.
func ActiveStudents(students []Student) []Student {
	out := make([]Student, 0, len(students))
	for _, st := range students {
		if st.Status == StatusActive {
			out = append(out, st)
		}
	}
	return out
}

// ActiveTutors returns active staff who can take students.
func ActiveTutors(staff []StaffMember) []StaffMember {
	out := make([]StaffMember, 0, len(staff))
	for _, m := range staff {
		if m.Status == StatusActive && m.Role != CoordinatorRole {
			out = append(out, m)
		}
	}
	return out
}

// CanSee reports whether the actor may see and act on s. Staff see the
// sessions they tutor; the company sees everything.
func (a Actor) CanSee(s Session) bool {
	return a.Role == RoleCompany || s.Tutor == a.Name
}

// ScopeSessions restricts sessions to what the actor may see.
func ScopeSessions(sessions []Session, actor Actor) []Session {
	if actor.Role == RoleCompany {
		return slices.Clone(sessions)
	}
	out := make([]Session, 0, len(sessions))
	for _, s := range sessions {
		if actor.CanSee(s) {
			out = append(out, s)
		}
	}
	return out
}

// ScopeStudents restricts students to what the actor may see.
func ScopeStudents(students []Student, actor Actor) []Student {
	if actor.Role == RoleCompany {
		return slices.Clone(students)
	}
	out := make([]Student, 0, len(students))
	for _, st := range students {
		if st.Tutor == actor.Name {
			out = append(out, st)
		}
	}
	return out
}

// CompletionRate is the rounded percentage of completed sessions.
// An empty collection yields 0.
func CompletionRate(sessions []Session) int {
	return Percent(countStatus(sessions, SessionCompleted), len(sessions))
}

// Percent returns round(part/total*100), or 0 when total is 0.
func Percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// CompanyStats are the organisation-wide dashboard figures.
type CompanyStats struct {
	TotalStudents  int `json:"totalStudents"`
	ActiveStaff    int `json:"activeStaff"`
	TodaySessions  int `json:"todaySessions"`
	CompletionRate int `json:"completionRate"`
}

// StaffStats are the figures shown to a single staff member.
type StaffStats struct {
	AssignedStudents int `json:"assignedStudents"`
	TodaySessions    int `json:"todaySessions"`
	CompletedToday   int `json:"completedToday"`
	PendingNotes     int `json:"pendingNotes"`
}

// ComputeCompanyStats derives organisation figures from a snapshot.
func ComputeCompanyStats(snap Snapshot) CompanyStats {
	active := 0
	for _, m := range snap.Staff {
		if m.Status == StatusActive {
			active++
		}
	}
	return CompanyStats{
		TotalStudents:  len(snap.Students),
		ActiveStaff:    active,
		TodaySessions:  len(snap.Sessions),
		CompletionRate: CompletionRate(snap.Sessions),
	}
}

// ComputeStaffStats derives a staff member's figures from a snapshot.
func ComputeStaffStats(snap Snapshot, actor Actor) StaffStats {
	sessions := ScopeSessions(snap.Sessions, actor)
	pending := 0
	for _, s := range sessions {
		if s.Status == SessionCompleted && s.Notes == "" {
			pending++
		}
	}
	return StaffStats{
		AssignedStudents: len(ScopeStudents(snap.Students, actor)),
		TodaySessions:    len(sessions),
		CompletedToday:   countStatus(sessions, SessionCompleted),
		PendingNotes:     pending,
	}
}

// Dashboard is the landing page projection for an actor.
type Dashboard struct {
	Role         Role          `json:"role"`
	CompanyStats *CompanyStats `json:"companyStats,omitempty"`
	StaffStats   *StaffStats   `json:"staffStats,omitempty"`
	Sessions     []Session     `json:"sessions"`
	Students     []Student     `json:"students"`
}

// BuildDashboard assembles the dashboard for actor. The company sees upcoming
// sessions and top students; staff see their own schedule and students.
func BuildDashboard(snap Snapshot, actor Actor, n int) Dashboard {
	d := Dashboard{Role: actor.Role}
	switch actor.Role {
	case RoleCompany:
		stats := ComputeCompanyStats(snap)
		d.CompanyStats = &stats
		d.Sessions = UpcomingSessions(snap.Sessions, n)
		d.Students = TopStudents(snap.Students, n)
	default:
		stats := ComputeStaffStats(snap, actor)
		d.StaffStats = &stats
		d.Sessions = ScopeSessions(snap.Sessions, actor)
		d.Students = truncate(ScopeStudents(snap.Students, actor), n)
	}
	return d
}

func countStatus(sessions []Session, status SessionStatus) int {
	n := 0
	for _, s := range sessions {
		if s.Status == status {
			n++
		}
	}
	return n
}

func truncate[T any](xs []T, n int) []T {
	if n > 0 && len(xs) > n {
		return xs[:n]
	}
	return xs
}
