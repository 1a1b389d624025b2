package systems

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobSystemValidation(t *testing.T) {
	_, err := NewJobSystem(0, 1)
	assert.ErrorIs(t, err, ErrNoWorkers)
	_, err = NewJobSystem(1, -1)
	assert.ErrorIs(t, err, ErrNegativeChannelSize)
}

func TestParallelForVisitsEveryIndexOnce(t *testing.T) {
	js, err := NewJobSystem(4, 8)
	require.NoError(t, err)
	defer js.Shutdown()

	const n = 1000
	var hits [n]int32
	js.ParallelFor(n, func(i int) {
		atomic.AddInt32(&hits[i], 1)
	})
	for i := range hits {
		require.Equal(t, int32(1), hits[i], "index %d", i)
	}
}

func TestSubmitCallbacks(t *testing.T) {
	js, err := NewJobSystem(2, 0)
	require.NoError(t, err)

	var completed, failed atomic.Int32
	boom := errors.New("boom")
	require.NoError(t, js.Submit(JobTask{
		Run:        func() error { return nil },
		OnComplete: func() { completed.Add(1) },
	}))
	require.NoError(t, js.Submit(JobTask{
		Run:       func() error { return boom },
		OnFailure: func(err error) { assert.ErrorIs(t, err, boom); failed.Add(1) },
	}))
	require.NoError(t, js.Shutdown())

	assert.Equal(t, int32(1), completed.Load())
	assert.Equal(t, int32(1), failed.Load())
	assert.ErrorIs(t, js.Submit(JobTask{Run: func() error { return nil }}), ErrJobSystemShutdown)
}

func TestParallelForAfterShutdownRunsInline(t *testing.T) {
	js, err := NewJobSystem(1, 0)
	require.NoError(t, err)
	require.NoError(t, js.Shutdown())

	sum := 0
	js.ParallelFor(10, func(i int) { sum += i })
	assert.Equal(t, 45, sum)
}
