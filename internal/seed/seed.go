// Package seed provides the initial roster the in-memory store starts from.
package seed

import (
	"context"
	"database/sql"
	"fmt"

	"tutordesk/internal/academy"
)

// Load resolves a seed source by name: "builtin", "file" (path) or
// "postgres" (db).
func Load(ctx context.Context, source, path string, db *sql.DB) (academy.Snapshot, error) {
	switch source {
	case "", "builtin":
		return Builtin(), nil
	case "file":
		return FromFile(path)
	case "postgres":
		if db == nil {
			return academy.Snapshot{}, fmt.Errorf("seed: postgres source without database")
		}
		return FromDB(ctx, db)
	default:
		return academy.Snapshot{}, fmt.Errorf("seed: unknown source %q", source)
	}
}

// Builtin returns the demo roster.
func Builtin() academy.Snapshot {
	attended := true
	return academy.Snapshot{
		Students: []academy.Student{
			{ID: "1", Name: "Ahmed Ali", Email: "ahmed@email.com", CurrentSurah: "Al-Baqarah", Progress: 45, Status: academy.StatusActive, Tutor: "Ahmad Hassan", Phone: "+1 234 567 001", EnrollmentDate: "2024-01-15"},
			{ID: "2", Name: "Fatima Hassan", Email: "fatima@email.com", CurrentSurah: "Al-Imran", Progress: 32, Status: academy.StatusActive, Tutor: "Ahmad Hassan", Phone: "+1 234 567 002", EnrollmentDate: "2024-02-20"},
			{ID: "3", Name: "Omar Khalid", Email: "omar@email.com", CurrentSurah: "An-Nisa", Progress: 78, Status: academy.StatusActive, Tutor: "Sara Ahmed", Phone: "+1 234 567 003", EnrollmentDate: "2024-01-10"},
			{ID: "4", Name: "Maryam Yusuf", Email: "maryam@email.com", CurrentSurah: "Al-Maidah", Progress: 15, Status: academy.StatusInactive, Tutor: "Ahmad Hassan", Phone: "+1 234 567 004", EnrollmentDate: "2024-03-05"},
			{ID: "5", Name: "Aisha Rahman", Email: "aisha@email.com", CurrentSurah: "Al-Kahf", Progress: 92, Status: academy.StatusActive, Tutor: "Sara Ahmed", Phone: "+1 234 567 005", EnrollmentDate: "2023-12-01"},
		},
		Staff: []academy.StaffMember{
			{ID: "1", Name: "Ahmad Hassan", Email: "ahmad@academy.com", Phone: "+1 234 567 890", Role: "Senior Tutor", Students: 18, Status: academy.StatusActive},
			{ID: "2", Name: "Sara Ahmed", Email: "sara@academy.com", Phone: "+1 234 567 891", Role: "Tutor", Students: 15, Status: academy.StatusActive},
			{ID: "3", Name: "Khalid Noor", Email: "khalid@academy.com", Phone: "+1 234 567 892", Role: "Tutor", Students: 12, Status: academy.StatusActive},
			{ID: "4", Name: "Amina Yusuf", Email: "amina@academy.com", Phone: "+1 234 567 893", Role: "Coordinator", Students: 0, Status: academy.StatusActive},
			{ID: "5", Name: "Omar Farooq", Email: "omar@academy.com", Phone: "+1 234 567 894", Role: "Tutor", Students: 10, Status: academy.StatusInactive},
		},
		Sessions: []academy.Session{
			{ID: "1", Student: "Ahmed Ali", Tutor: "Ahmad Hassan", Time: "09:00 AM", Duration: "45 min", Surah: "Al-Baqarah (142-150)", Status: academy.SessionCompleted, Attendance: &attended, Notes: "Good progress on memorization"},
			{ID: "2", Student: "Fatima Hassan", Tutor: "Ahmad Hassan", Time: "10:30 AM", Duration: "45 min", Surah: "Al-Imran (1-20)", Status: academy.SessionInProgress},
			{ID: "3", Student: "Omar Khalid", Tutor: "Sara Ahmed", Time: "02:00 PM", Duration: "45 min", Surah: "An-Nisa (23-35)", Status: academy.SessionReady},
			{ID: "4", Student: "Maryam Yusuf", Tutor: "Ahmad Hassan", Time: "03:30 PM", Duration: "45 min", Surah: "Al-Maidah (1-10)", Status: academy.SessionScheduled},
		},
	}
}
