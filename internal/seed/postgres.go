package seed

import (
	"context"
	"database/sql"
	"fmt"

	"tutordesk/internal/academy"
)

// FromDB reads the roster from Postgres. It only reads: the store never
// writes back, so the tables are a starting point rather than storage.
func FromDB(ctx context.Context, db *sql.DB) (academy.Snapshot, error) {
	students, err := loadStudents(ctx, db)
	if err != nil {
		return academy.Snapshot{}, fmt.Errorf("seed: students: %w", err)
	}
	staff, err := loadStaff(ctx, db)
	if err != nil {
		return academy.Snapshot{}, fmt.Errorf("seed: staff: %w", err)
	}
	sessions, err := loadSessions(ctx, db)
	if err != nil {
		return academy.Snapshot{}, fmt.Errorf("seed: sessions: %w", err)
	}
	return academy.Snapshot{Students: students, Staff: staff, Sessions: sessions}, nil
}

func loadStudents(ctx context.Context, db *sql.DB) ([]academy.Student, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), COALESCE(current_surah, ''), progress,
		       status, COALESCE(tutor, ''), COALESCE(TO_CHAR(enrollment_date, 'YYYY-MM-DD'), '')
		FROM students
		ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []academy.Student
	for rows.Next() {
		var st academy.Student
		if err := rows.Scan(&st.ID, &st.Name, &st.Email, &st.Phone, &st.CurrentSurah, &st.Progress,
			&st.Status, &st.Tutor, &st.EnrollmentDate); err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}

func loadStaff(ctx context.Context, db *sql.DB) ([]academy.StaffMember, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, email, COALESCE(phone, ''), role, students, status
		FROM staff
		ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []academy.StaffMember
	for rows.Next() {
		var m academy.StaffMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.Phone, &m.Role, &m.Students, &m.Status); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func loadSessions(ctx context.Context, db *sql.DB) ([]academy.Session, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, student, tutor, time_label, duration, COALESCE(surah, ''), status,
		       COALESCE(notes, ''), attendance
		FROM sessions
		ORDER BY position, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []academy.Session
	for rows.Next() {
		var s academy.Session
		var attendance sql.NullBool
		if err := rows.Scan(&s.ID, &s.Student, &s.Tutor, &s.Time, &s.Duration, &s.Surah, &s.Status,
			&s.Notes, &attendance); err != nil {
			return nil, err
		}
		if attendance.Valid {
			v := attendance.Bool
			s.Attendance = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
