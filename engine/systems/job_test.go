package systems

import (
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/spaghettifunk/exhibit/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	core.SetLogOutput(io.Discard)
	os.Exit(m.Run())
}

func TestNewJobSystem(t *testing.T) {
	cases := []struct {
		name    string
		workers int
		queue   int
		err     error
	}{
		{name: "no workers", workers: 0, queue: 4, err: ErrNoWorkers},
		{name: "negative queue", workers: 1, queue: -1, err: ErrNegativeChannelSize},
		{name: "unbuffered", workers: 1, queue: 0},
		{name: "buffered", workers: 4, queue: 16},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			js, err := NewJobSystem(c.workers, c.queue)
			if c.err != nil {
				assert.ErrorIs(t, err, c.err)
				assert.Nil(t, js)
				return
			}
			require.NoError(t, err)
			assert.NoError(t, js.Shutdown())
		})
	}
}

func TestJobSystemCallbacks(t *testing.T) {
	js, err := NewJobSystem(2, 8)
	require.NoError(t, err)

	var wg sync.WaitGroup
	var completed, failed, callbacks atomic.Int32
	boom := errors.New("boom")

	for i := 0; i < 10; i++ {
		wg.Add(1)
		fail := i%2 == 0
		require.NoError(t, js.Submit(JobTask{
			JobType:     JOB_TYPE_GENERAL,
			InputParams: i,
			OnStart: func(params interface{}) (interface{}, error) {
				if fail {
					return nil, boom
				}
				return params.(int) * 2, nil
			},
			OnComplete: func(result interface{}) {
				assert.Equal(t, 0, result.(int)%2)
				completed.Add(1)
			},
			OnFailure: func(err error) {
				assert.ErrorIs(t, err, boom)
				failed.Add(1)
			},
			OnCompletionCallback: func() {
				callbacks.Add(1)
				wg.Done()
			},
		}))
	}
	wg.Wait()

	assert.EqualValues(t, 5, completed.Load())
	assert.EqualValues(t, 5, failed.Load())
	assert.EqualValues(t, 10, callbacks.Load())
	assert.NoError(t, js.Shutdown())
}

func TestJobSystemSubmitErrors(t *testing.T) {
	js, err := NewJobSystem(1, 1)
	require.NoError(t, err)

	assert.ErrorIs(t, js.Submit(JobTask{}), ErrNoEntryPoint)

	require.NoError(t, js.Shutdown())
	require.NoError(t, js.Shutdown())

	err = js.Submit(JobTask{OnStart: func(interface{}) (interface{}, error) { return nil, nil }})
	assert.ErrorIs(t, err, ErrJobSystemClosed)
}
