package wm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lattice-wm/lattice/internal/stack"
)

func TestSafelyRollsBackOnReturnedError(t *testing.T) {
	c := newTestCore(t)
	c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.InsertUp(ws, 0x100) })
	before := c.State.WindowSet.Clone()

	c.safely("test", func() error {
		c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.InsertUp(ws, 0x999) })
		return errors.New("boom")
	})

	assert.Equal(t, before.Current.Workspace.Stack, c.State.WindowSet.Current.Workspace.Stack)
}

func TestSafelyRollsBackOnPanic(t *testing.T) {
	c := newTestCore(t)
	c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.InsertUp(ws, 0x100) })
	before := c.State.WindowSet.Clone()

	assert.NotPanics(t, func() {
		c.safely("test", func() error {
			c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.InsertUp(ws, 0x999) })
			panic("kaboom")
		})
	})

	assert.Equal(t, before.Current.Workspace.Stack, c.State.WindowSet.Current.Workspace.Stack)
}

func TestSafelyPropagatesExitRequest(t *testing.T) {
	c := newTestCore(t)
	defer func() {
		r := recover()
		require.NotNil(t, r)
		exit, ok := r.(ExitRequest)
		require.True(t, ok)
		assert.Equal(t, 7, exit.Code)
	}()
	c.safely("test", func() error { return ExitRequest{Code: 7} })
	t.Fatal("safely should have re-panicked with ExitRequest")
}

func TestSafelyLeavesStateAloneOnSuccess(t *testing.T) {
	c := newTestCore(t)
	c.safely("test", func() error {
		c.apply(func(ws stack.WindowSet) stack.WindowSet { return stack.InsertUp(ws, 0x100) })
		return nil
	})
	focus, ok := c.State.WindowSet.PeekFocus()
	require.True(t, ok)
	assert.Equal(t, stack.WindowID(0x100), focus)
}
