package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cascadeprotocol/cascade/internal/domain"
)

func TestRingEviction(t *testing.T) {
	r := NewRing(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Send(ctx, domain.Notification{
			ID:      fmt.Sprintf("n-%d", i),
			Kind:    domain.NotifyInfo,
			Message: fmt.Sprintf("msg %d", i),
		}))
	}

	got := r.Recent(0)
	require.Len(t, got, 3)
	// Newest first, oldest two evicted.
	assert.Equal(t, "n-4", got[0].ID)
	assert.Equal(t, "n-3", got[1].ID)
	assert.Equal(t, "n-2", got[2].ID)

	got = r.Recent(1)
	require.Len(t, got, 1)
	assert.Equal(t, "n-4", got[0].ID)
}

func TestNotifierKindFilter(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRing(10)
	n := New([]Sink{r}, []string{"error"}, logger)

	ctx := context.Background()
	n.Publish(ctx, domain.NotifySuccess, "ok")
	n.Publish(ctx, domain.NotifyError, "boom %d", 1)

	got := r.Recent(0)
	require.Len(t, got, 1)
	assert.Equal(t, domain.NotifyError, got[0].Kind)
	assert.Equal(t, "boom 1", got[0].Message)
	assert.NotEmpty(t, got[0].ID)
}

func TestNotifierEmptyFilterAllowsAll(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRing(10)
	n := New([]Sink{r}, nil, logger)

	ctx := context.Background()
	n.Publish(ctx, domain.NotifySuccess, "a")
	n.Publish(ctx, domain.NotifyInfo, "b")
	n.Publish(ctx, domain.NotifyError, "c")

	assert.Len(t, r.Recent(0), 3)
}
