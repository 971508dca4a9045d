package academy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, seed Snapshot) *Store {
	t.Helper()
	s, err := NewStore(seed)
	require.NoError(t, err)
	return s
}

func intPtr(v int) *int          { return &v }
func strPtr(v string) *string    { return &v }
func statusPtr(v Status) *Status { return &v }

func TestAddStudentAssignsFreshID(t *testing.T) {
	s := newTestStore(t, Snapshot{})

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		st, err := s.AddStudent(NewStudent{Name: "Ahmed Ali", Email: "ahmed@email.com", Tutor: "Ahmad Hassan"})
		require.NoError(t, err)
		require.NotEmpty(t, st.ID)
		assert.False(t, seen[st.ID], "id %s reused", st.ID)
		seen[st.ID] = true

		count := 0
		for _, got := range s.Students() {
			if got.ID == st.ID {
				count++
			}
		}
		assert.Equal(t, 1, count)
	}
}

func TestAddStudentKeepsInsertionOrder(t *testing.T) {
	s := newTestStore(t, Snapshot{})
	names := []string{"Zaid", "Amina", "Bilal"}
	for _, n := range names {
		_, err := s.AddStudent(NewStudent{Name: n, Email: n + "@email.com"})
		require.NoError(t, err)
	}
	got := s.Students()
	require.Len(t, got, 3)
	for i, n := range names {
		assert.Equal(t, n, got[i].Name)
		assert.Equal(t, StatusActive, got[i].Status)
	}
}

func TestAddStudentValidation(t *testing.T) {
	s := newTestStore(t, Snapshot{})

	_, err := s.AddStudent(NewStudent{Email: "x@email.com"})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.AddStudent(NewStudent{Name: "X", Email: "x@email.com", Progress: 101})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.AddStudent(NewStudent{Name: "X", Email: "x@email.com", Status: "paused"})
	assert.ErrorIs(t, err, ErrValidation)

	assert.Empty(t, s.Students())
}

func TestUpdateStudentMergesOnlySetFields(t *testing.T) {
	s := newTestStore(t, Snapshot{Students: []Student{
		{ID: "1", Name: "Ahmed Ali", Email: "ahmed@email.com", CurrentSurah: "Al-Baqarah", Progress: 45, Status: StatusActive, Tutor: "Ahmad Hassan"},
		{ID: "2", Name: "Fatima Hassan", Email: "fatima@email.com", Progress: 32, Status: StatusActive},
	}})
	before, err := s.Student("1")
	require.NoError(t, err)

	got, err := s.UpdateStudent("1", StudentUpdate{Progress: intPtr(55)})
	require.NoError(t, err)

	want := before
	want.Progress = 55
	assert.Equal(t, want, got)

	after, err := s.Student("1")
	require.NoError(t, err)
	assert.Equal(t, want, after)
	assert.Equal(t, "1", s.Students()[0].ID, "update must not reorder")
}

func TestUpdateStudentRejectsInvalidMerge(t *testing.T) {
	s := newTestStore(t, Snapshot{Students: []Student{
		{ID: "1", Name: "Ahmed Ali", Email: "ahmed@email.com", Progress: 45, Status: StatusActive},
	}})

	_, err := s.UpdateStudent("1", StudentUpdate{Progress: intPtr(-1), Name: strPtr("Changed")})
	require.ErrorIs(t, err, ErrValidation)

	st, err := s.Student("1")
	require.NoError(t, err)
	assert.Equal(t, 45, st.Progress)
	assert.Equal(t, "Ahmed Ali", st.Name)
}

func TestUpdateStudentUnknownID(t *testing.T) {
	s := newTestStore(t, Snapshot{})
	_, err := s.UpdateStudent("missing", StudentUpdate{Status: statusPtr(StatusInactive)})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteStudentIsStateIdempotent(t *testing.T) {
	s := newTestStore(t, Snapshot{
		Students: []Student{
			{ID: "1", Name: "Ahmed Ali", Email: "ahmed@email.com", Status: StatusActive},
			{ID: "2", Name: "Fatima Hassan", Email: "fatima@email.com", Status: StatusActive},
		},
		Sessions: []Session{
			{ID: "s1", Student: "Ahmed Ali", Tutor: "Ahmad Hassan", Time: "09:00 AM", Status: SessionScheduled},
		},
	})

	_, err := s.DeleteStudent("1")
	require.NoError(t, err)
	got := s.Students()
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)

	_, err = s.DeleteStudent("1")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Len(t, s.Students(), 1)

	assert.Len(t, s.Sessions(), 1, "delete does not cascade to sessions")
}

func TestStaffCRUD(t *testing.T) {
	s := newTestStore(t, Snapshot{})

	m, err := s.AddStaff(NewStaffMember{Name: "Sara Ahmed", Email: "sara@academy.com", Role: "Tutor", Students: 15})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, m.Status)

	_, err = s.AddStaff(NewStaffMember{Name: "No Role", Email: "x@academy.com"})
	assert.ErrorIs(t, err, ErrValidation)

	upd, err := s.UpdateStaff(m.ID, StaffUpdate{Role: strPtr("Senior Tutor")})
	require.NoError(t, err)
	assert.Equal(t, "Senior Tutor", upd.Role)
	assert.Equal(t, 15, upd.Students)

	_, err = s.DeleteStaff(m.ID)
	require.NoError(t, err)
	assert.Empty(t, s.Staff())

	_, err = s.DeleteStaff(m.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReadsReturnCopies(t *testing.T) {
	s := newTestStore(t, Snapshot{Students: []Student{
		{ID: "1", Name: "Ahmed Ali", Email: "ahmed@email.com", Status: StatusActive},
	}})

	got := s.Students()
	got[0].Name = "mutated"
	assert.Equal(t, "Ahmed Ali", s.Students()[0].Name)
}

func TestNewStoreRejectsBadSeed(t *testing.T) {
	_, err := NewStore(Snapshot{Students: []Student{
		{ID: "1", Name: "A", Email: "a@email.com", Status: StatusActive},
		{ID: "1", Name: "B", Email: "b@email.com", Status: StatusActive},
	}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewStore(Snapshot{Sessions: []Session{{ID: "1", Student: "A", Tutor: "B", Time: "09:00 AM", Status: "paused"}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewStore(Snapshot{Staff: []StaffMember{{Name: "No ID", Email: "x@academy.com", Role: "Tutor", Status: StatusActive}}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNewStoreAcceptsBareSessions(t *testing.T) {
	s := newTestStore(t, Snapshot{Sessions: []Session{
		{ID: "1", Status: SessionCompleted},
		{ID: "2", Status: SessionInProgress},
		{ID: "3", Status: SessionReady},
	}})

	sessions := s.Sessions()
	assert.Equal(t, 33, CompletionRate(sessions))
	assert.Equal(t, []string{"2", "3"}, sessionIDs(UpcomingSessions(sessions, 3)))

	_, err := s.StartSession("3")
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, sessionIDs(UpcomingSessions(s.Sessions(), 3)))
}

func TestNewStoreSeedStillChecksRanges(t *testing.T) {
	_, err := NewStore(Snapshot{Students: []Student{{ID: "1", Progress: 101, Status: StatusActive}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewStore(Snapshot{Staff: []StaffMember{{ID: "1", Students: -1, Status: StatusActive}}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = NewStore(Snapshot{Sessions: []Session{{ID: "1"}}})
	assert.ErrorIs(t, err, ErrValidation)
}
