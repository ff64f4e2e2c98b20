package async

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCell_SetAndGet(t *testing.T) {
	c := NewCell[int]()
	assert.Equal(t, Idle, c.Get().State)
	assert.Equal(t, uint64(0), c.Get().Version)

	snap := c.Set(Success, 42, nil)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, 42, c.Get().Value)
	assert.Equal(t, Success, c.Get().State)
}

func TestCell_CompareAndSet(t *testing.T) {
	c := NewCell[string]()
	first := c.Set(Loading, "", nil)

	_, ok := c.CompareAndSet(first.Version, Success, "done", nil)
	require.True(t, ok)

	_, ok = c.CompareAndSet(first.Version, Error, "", errors.New("late"))
	assert.False(t, ok)
	assert.Equal(t, "done", c.Get().Value)
}

func TestCell_SubscribeLatestWins(t *testing.T) {
	c := NewCell[int]()
	ch, cancel := c.Subscribe()
	defer cancel()

	initial := <-ch
	assert.Equal(t, Idle, initial.State)

	c.Set(Loading, 1, nil)
	c.Set(Success, 2, nil)

	latest := <-ch
	assert.Equal(t, 2, latest.Value)
	assert.Equal(t, Success, latest.State)
}

func TestCell_CancelStopsDelivery(t *testing.T) {
	c := NewCell[int]()
	ch, cancel := c.Subscribe()
	<-ch
	cancel()
	cancel()

	c.Set(Success, 1, nil)
	select {
	case <-ch:
		t.Fatal("unexpected delivery after cancel")
	default:
	}
}

func TestCell_Wait(t *testing.T) {
	c := NewCell[int]()
	go func() {
		time.Sleep(10 * time.Millisecond)
		c.Set(Loading, 0, nil)
		time.Sleep(10 * time.Millisecond)
		c.Set(Success, 9, nil)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	snap, err := c.Wait(ctx, Settled[int])
	require.NoError(t, err)
	assert.Equal(t, 9, snap.Value)
}

func TestCell_WaitContextDone(t *testing.T) {
	c := NewCell[int]()
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Wait(ctx, Settled[int])
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
