package seed_test

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fittrack/internal/adapter/memory"
	"fittrack/internal/repository"
	"fittrack/internal/seed"
	"fittrack/internal/store"
)

func TestRunIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := repository.New(store.New(memory.New()))
	quiet := log.New(io.Discard, "", 0)

	first, err := seed.Run(ctx, db, quiet)
	require.NoError(t, err)
	require.NotNil(t, first.Program)
	assert.Equal(t, 7, first.ExerciseTypes)
	assert.True(t, first.Program.IsDefault)

	second, err := seed.Run(ctx, db, quiet)
	require.NoError(t, err)
	assert.Zero(t, second.ExerciseTypes)
	assert.Nil(t, second.Program)

	programs, err := db.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, programs, 1)
	types, err := db.ListExerciseTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 7)
}

func TestDefaultSchedule(t *testing.T) {
	ctx := context.Background()
	db := repository.New(store.New(memory.New()))
	res, err := seed.Run(ctx, db, log.New(io.Discard, "", 0))
	require.NoError(t, err)

	for day, want := range map[int]int{1: 4, 2: 0, 3: 4, 4: 0, 5: 4, 6: 0, 7: 0} {
		exercises, err := db.ExercisesForDay(ctx, res.Program.ID, day)
		require.NoError(t, err)
		assert.Len(t, exercises, want, "day %d", day)
		for i, pe := range exercises {
			assert.Equal(t, i+1, pe.OrderInDay)
			assert.NotEmpty(t, pe.ExerciseTypeID)
			assert.Positive(t, pe.WorkSeconds())
		}
	}
}
