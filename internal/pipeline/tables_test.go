package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func TestLoadTables_EmptyPathReturnsDefaults(t *testing.T) {
	t.Parallel()

	tables, err := LoadTables("")
	require.NoError(t, err)
	assert.NotEmpty(t, tables.Archetypes)
	assert.NotEmpty(t, tables.BenchmarkNames)
	assert.Len(t, tables.FlavorBank, 9)
	assert.Contains(t, tables.Overrides, "JT")
}

func TestLoadTables_PartialFileInheritsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tables.yaml")
	content := "archetypes:\n  benchmark: Custom benchmark line.\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tables, err := LoadTables(path)
	require.NoError(t, err)

	assert.Equal(t, "Custom benchmark line.", tables.Archetypes["benchmark"])
	// Sections the file omits keep their compiled defaults.
	assert.NotEmpty(t, tables.FlavorBank)
	assert.NotEmpty(t, tables.Overrides)
}

func TestLoadTables_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadTables(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestArchetypeFor(t *testing.T) {
	t.Parallel()

	tables := DefaultTables()

	tests := []struct {
		name string
		rec  model.WorkoutRecord
		want string
	}{
		{
			name: "benchmark category",
			rec:  model.WorkoutRecord{Name: "Whatever", Category: "Benchmark"},
			want: tables.Archetypes["benchmark"],
		},
		{
			name: "benchmark by name",
			rec:  model.WorkoutRecord{Name: "Fran", Category: "Metcon"},
			want: tables.Archetypes["benchmark"],
		},
		{
			name: "amrap format",
			rec:  model.WorkoutRecord{Name: "Nameless", Category: "Metcon", FormatDuration: "AMRAP 20"},
			want: tables.Archetypes["amrap"],
		},
		{
			name: "emom format",
			rec:  model.WorkoutRecord{Name: "Nameless", Category: "Metcon", FormatDuration: "EMOM 10"},
			want: tables.Archetypes["emom"],
		},
		{
			name: "strength with sets",
			rec:  model.WorkoutRecord{Name: "Back Squat Day", Category: "Strength", FormatDuration: "5 sets of 5"},
			want: tables.Archetypes["strength"],
		},
		{
			name: "strength without rep scheme",
			rec:  model.WorkoutRecord{Name: "Back Squat Day", Category: "Strength", FormatDuration: "Heavy Day"},
			want: "",
		},
		{
			name: "no archetype",
			rec:  model.WorkoutRecord{Name: "Nameless", Category: "Metcon", FormatDuration: "For Time"},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tables.ArchetypeFor(&tt.rec))
		})
	}
}
