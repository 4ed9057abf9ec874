package toast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/blogfront/pkg/toast"
)

func TestPushAndDrain(t *testing.T) {
	t.Parallel()

	q := &toast.Queue{}
	ctx := toast.WithQueue(context.Background(), q)

	toast.Success(ctx, "Registered")
	toast.Error(ctx, "Email taken")
	toast.Error(ctx, "")

	require.Equal(t, 2, q.Len())
	got := q.Drain()
	assert.Equal(t, []toast.Toast{
		{Kind: toast.KindSuccess, Message: "Registered"},
		{Kind: toast.KindError, Message: "Email taken"},
	}, got)
	assert.Empty(t, q.Drain())
}

func TestPushWithoutQueue(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { toast.Success(context.Background(), "ignored") })
	assert.Nil(t, toast.FromContext(context.Background()))
}

func TestTimeout(t *testing.T) {
	t.Parallel()

	assert.Equal(t, toast.DefaultDuration, toast.Toast{}.Timeout())
	assert.Equal(t, time.Second, toast.Toast{Duration: time.Second}.Timeout())
}
