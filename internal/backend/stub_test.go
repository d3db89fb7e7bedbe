package backend

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgefit-hq/wodforge/internal/model"
)

func TestStubIsDeterministic(t *testing.T) {
	t.Parallel()

	stub := NewStub()
	req := Request{
		Record: model.WorkoutRecord{
			Name:      "Helen",
			Category:  "Benchmark",
			ScoreType: "Time",
		},
		Field: model.FieldDescription,
	}

	first, err := stub.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := stub.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first, "Helen")
	assert.Greater(t, len(first), 40)
	assert.False(t, model.IsPlaceholder(first))
}

func TestStubInferMovementTypes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		instructions string
		want         string
	}{
		{
			name:         "runs and pull-ups",
			instructions: "3 rounds: 400m run, 21 kettlebell swings, 12 pull-ups",
			want:         "Monostructural, Weightlifting, Gymnastics",
		},
		{
			name:         "barbell only",
			instructions: "5x5 back squat",
			want:         "Weightlifting",
		},
		{
			name:         "nothing recognizable",
			instructions: "coach's choice",
			want:         "Mixed Modal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := inferMovementTypes(model.WorkoutRecord{Instructions: tt.instructions})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStubInferDifficultyTier(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Beginner", inferDifficultyTier(model.WorkoutRecord{Level: "beginner"}))
	assert.Equal(t, "Advanced", inferDifficultyTier(model.WorkoutRecord{Level: "Elite"}))
	assert.Equal(t, "Intermediate", inferDifficultyTier(model.WorkoutRecord{}))
}

func TestStubUnknownField(t *testing.T) {
	t.Parallel()

	_, err := NewStub().Generate(context.Background(), Request{Field: "Warmup"})
	assert.Error(t, err)
}
