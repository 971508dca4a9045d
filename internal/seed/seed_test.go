package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutordesk/internal/academy"
)

func TestBuiltinSeedsAValidStore(t *testing.T) {
	snap := Builtin()
	assert.Len(t, snap.Students, 5)
	assert.Len(t, snap.Staff, 5)
	assert.Len(t, snap.Sessions, 4)

	s, err := academy.NewStore(snap)
	require.NoError(t, err)
	assert.Equal(t, 25, academy.CompletionRate(s.Sessions()))
}

const fixture = `
students:
  - id: s1
    name: Ahmed Ali
    email: ahmed@email.com
    currentSurah: Al-Baqarah
    progress: 45
    status: active
    tutor: Ahmad Hassan
staff:
  - id: t1
    name: Ahmad Hassan
    email: ahmad@academy.com
    role: Senior Tutor
    students: 18
    status: active
sessions:
  - id: x1
    student: Ahmed Ali
    tutor: Ahmad Hassan
    time: 09:00 AM
    duration: 45 min
    status: completed
    notes: Good progress
    attendance: true
`

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestFromFile(t *testing.T) {
	snap, err := Load(context.Background(), "file", writeFile(t, fixture), nil)
	require.NoError(t, err)

	require.Len(t, snap.Students, 1)
	assert.Equal(t, "Al-Baqarah", snap.Students[0].CurrentSurah)
	assert.Equal(t, academy.StatusActive, snap.Students[0].Status)
	require.Len(t, snap.Staff, 1)
	assert.Equal(t, 18, snap.Staff[0].Students)
	require.Len(t, snap.Sessions, 1)
	require.NotNil(t, snap.Sessions[0].Attendance)
	assert.True(t, *snap.Sessions[0].Attendance)

	_, err = academy.NewStore(snap)
	assert.NoError(t, err)
}

func TestFromFileErrors(t *testing.T) {
	_, err := FromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = FromFile(writeFile(t, "students:\n  - id: 1\n    nmae: typo\n"))
	assert.Error(t, err)

	snap, err := FromFile(writeFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, snap.Students)
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := Load(context.Background(), "s3", "", nil)
	assert.Error(t, err)
	_, err = Load(context.Background(), "postgres", "", nil)
	assert.Error(t, err)
}
