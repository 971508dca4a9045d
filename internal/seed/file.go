package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tutordesk/internal/academy"
)

// FromFile reads a roster fixture in YAML with students, staff and sessions
// lists. Unknown keys are rejected so typos do not silently drop data.
func FromFile(path string) (academy.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return academy.Snapshot{}, fmt.Errorf("seed: read %s: %w", path, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var snap academy.Snapshot
	if err := dec.Decode(&snap); err != nil && !errors.Is(err, io.EOF) {
		return academy.Snapshot{}, fmt.Errorf("seed: parse %s: %w", path, err)
	}
	return snap, nil
}
