package storage

import (
	"context"
	"testing"

	"github.com/go-redis/redismock/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	db, mock := redismock.NewClientMock()
	s := NewRedisStore(db)
	defer s.Close()
	ctx := context.Background()

	mock.ExpectGet("@fitness:user_workout").RedisNil()
	mock.ExpectSet("@fitness:user_workout", `{"id":"1"}`, 0).SetVal("OK")
	mock.ExpectGet("@fitness:user_workout").SetVal(`{"id":"1"}`)
	mock.ExpectDel("@fitness:user_workout").SetVal(1)
	mock.ExpectGet("@fitness:workout_progress").SetErr(assert.AnError)

	_, err := s.Get(ctx, "@fitness:user_workout")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Set(ctx, "@fitness:user_workout", `{"id":"1"}`))

	v, err := s.Get(ctx, "@fitness:user_workout")
	require.NoError(t, err)
	assert.Equal(t, `{"id":"1"}`, v)

	require.NoError(t, s.Remove(ctx, "@fitness:user_workout"))

	_, err = s.Get(ctx, "@fitness:workout_progress")
	assert.ErrorIs(t, err, assert.AnError)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
