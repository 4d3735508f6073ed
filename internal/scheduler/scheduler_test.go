package scheduler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsDuplicateNames(t *testing.T) {
	s := New()
	task := Task{
		Name:     "sweep",
		Interval: time.Hour,
		Handler:  func() error { return nil },
	}

	require.NoError(t, s.Register(task))
	require.Error(t, s.Register(task))
}

func TestRunNow(t *testing.T) {
	s := New()

	ran := 0
	require.NoError(t, s.Register(Task{
		Name:     "sweep",
		Interval: time.Hour,
		Handler: func() error {
			ran++
			return nil
		},
	}))

	require.NoError(t, s.RunNow("sweep"))
	require.Equal(t, 1, ran)

	require.Error(t, s.RunNow("unknown"))
	require.Equal(t, 1, ran)
}

func TestRunNowPropagatesHandlerError(t *testing.T) {
	s := New()

	boom := errors.New("sweep failed")
	require.NoError(t, s.Register(Task{
		Name:     "sweep",
		Interval: time.Hour,
		Handler:  func() error { return boom },
	}))

	require.ErrorIs(t, s.RunNow("sweep"), boom)
}
