package systems

import (
	"errors"
	"sync"

	"github.com/spaghettifunk/softraster/engine/core"
)

var (
	ErrNoWorkers           = errors.New("attempting to create worker pool with less than 1 worker")
	ErrNegativeChannelSize = errors.New("attempting to create worker pool with a negative channel size")
	ErrJobSystemShutdown   = errors.New("job system is shut down")
)

// JobTask is a unit of work run on one of the workers.
type JobTask struct {
	Run        func() error
	OnFailure  func(err error)
	OnComplete func()
}

type JobSystem struct {
	numWorkers int
	jobQueue   chan JobTask
	wg         sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewJobSystem(numWorkers int, channelSize int) (*JobSystem, error) {
	if numWorkers <= 0 {
		return nil, ErrNoWorkers
	}
	if channelSize < 0 {
		return nil, ErrNegativeChannelSize
	}

	js := &JobSystem{
		numWorkers: numWorkers,
		jobQueue:   make(chan JobTask, channelSize),
	}
	js.start()

	core.LogDebug("job system started with %d workers", numWorkers)
	return js, nil
}

func (js *JobSystem) start() {
	for i := 0; i < js.numWorkers; i++ {
		js.wg.Add(1)
		go func() {
			defer js.wg.Done()
			for job := range js.jobQueue {
				if err := job.Run(); err != nil {
					core.LogError(err.Error())
					if job.OnFailure != nil {
						job.OnFailure(err)
					}
					continue
				}
				if job.OnComplete != nil {
					job.OnComplete()
				}
			}
		}()
	}
}

// Workers returns the number of worker goroutines.
func (js *JobSystem) Workers() int {
	return js.numWorkers
}

/**
 * @brief Shuts the job system down. Queued jobs are drained first.
 */
func (js *JobSystem) Shutdown() error {
	js.mu.Lock()
	if js.closed {
		js.mu.Unlock()
		return nil
	}
	js.closed = true
	close(js.jobQueue)
	js.mu.Unlock()

	js.wg.Wait()
	return nil
}

/**
 * @brief Submits the provided job to be queued for execution. Blocks while
 * the queue is full.
 * @param jt The description of the job to be executed.
 */
func (js *JobSystem) Submit(jt JobTask) error {
	js.mu.RLock()
	defer js.mu.RUnlock()
	if js.closed {
		return ErrJobSystemShutdown
	}
	js.jobQueue <- jt
	return nil
}

// ParallelFor calls fn for every i in [0, count) across the workers and
// returns once all calls finished. It must not be called from inside a job.
func (js *JobSystem) ParallelFor(count int, fn func(i int)) {
	if count <= 0 {
		return
	}
	chunks := js.numWorkers * 4
	if chunks > count {
		chunks = count
	}
	size := (count + chunks - 1) / chunks

	var wg sync.WaitGroup
	for start := 0; start < count; start += size {
		start, end := start, min(start+size, count)
		wg.Add(1)
		err := js.Submit(JobTask{
			Run: func() error {
				defer wg.Done()
				for i := start; i < end; i++ {
					fn(i)
				}
				return nil
			},
		})
		if err != nil {
			// run inline once the pool is gone
			wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}
	}
	wg.Wait()
}
