package mutation_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/mutation"
)

type params struct{ Name string }

func TestDo_Success(t *testing.T) {
	t.Parallel()

	var (
		calls    int
		events   []string
		statuses []mutation.Status
	)
	m := mutation.New(
		func(_ context.Context, p params) (string, error) {
			calls++
			return "hi " + p.Name, nil
		},
		mutation.Observe[params](func(s mutation.State[string]) { statuses = append(statuses, s.Status) }),
		mutation.OnSuccess(func(_ context.Context, data string, p params) { events = append(events, "success:"+data) }),
		mutation.OnError[params, string](func(context.Context, error, params) { events = append(events, "error") }),
		mutation.OnSettled(func(_ context.Context, s mutation.State[string], _ params) {
			events = append(events, "settled:"+s.Status.String())
		}),
	)

	st := m.Do(context.Background(), params{Name: "john"})
	require.True(t, st.IsSuccess())
	assert.Equal(t, "hi john", st.Data)
	assert.NoError(t, st.Err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []mutation.Status{mutation.Pending, mutation.Success}, statuses)
	assert.Equal(t, []string{"success:hi john", "settled:success"}, events)
}

func TestDo_ErrorNoRetry(t *testing.T) {
	t.Parallel()

	boom := errors.New("Network Error")
	var (
		calls  int
		events []string
	)
	m := mutation.New(
		func(context.Context, params) (int, error) {
			calls++
			return 0, boom
		},
		mutation.OnSuccess(func(context.Context, int, params) { events = append(events, "success") }),
		mutation.OnError[params, int](func(_ context.Context, err error, _ params) { events = append(events, "error:"+err.Error()) }),
		mutation.OnSettled(func(context.Context, mutation.State[int], params) { events = append(events, "settled") }),
	)

	st := m.Do(context.Background(), params{})
	require.True(t, st.IsError())
	assert.ErrorIs(t, st.Err, boom)
	assert.Equal(t, 1, calls)
	assert.Equal(t, []string{"error:Network Error", "settled"}, events)
}

func TestDo_PanicBecomesError(t *testing.T) {
	t.Parallel()

	m := mutation.New(func(context.Context, params) (int, error) {
		panic("kaboom")
	})
	st := m.Do(context.Background(), params{})
	require.True(t, st.IsError())
	assert.Contains(t, st.Err.Error(), "kaboom")
}

func TestDo_IndependentCalls(t *testing.T) {
	t.Parallel()

	m := mutation.New(func(_ context.Context, p params) (string, error) {
		if p.Name == "" {
			return "", errors.New("empty")
		}
		return p.Name, nil
	})

	first := m.Do(context.Background(), params{Name: "a"})
	second := m.Do(context.Background(), params{})
	assert.True(t, first.IsSuccess())
	assert.True(t, second.IsError())
	assert.Equal(t, "a", first.Data)
}

func TestStatus_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", mutation.Idle.String())
	assert.Equal(t, "pending", mutation.Pending.String())
	assert.Equal(t, "status(9)", mutation.Status(9).String())
	assert.False(t, mutation.State[int]{}.IsPending())
}
