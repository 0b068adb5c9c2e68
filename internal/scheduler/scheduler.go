package scheduler

import (
	"runtime"
	"sync"

	"github.com/dl/readfile/internal/input"
	"github.com/dl/readfile/internal/output"
)

// Job is a single path to read. SeqNum orders the output and starts at 1.
type Job struct {
	Path   string
	SeqNum int
}

// Scheduler manages a pool of workers that read files concurrently.
// Reads are independent; workers share nothing but the Reader, which
// must be safe for concurrent use (all readers in package input are).
type Scheduler struct {
	workers int
	reader  input.Reader
}

// New creates a Scheduler with the given number of workers.
// If workers is 0, defaults to NumCPU * 2.
func New(workers int, r input.Reader) *Scheduler {
	if workers <= 0 {
		workers = runtime.NumCPU() * 2
	}
	return &Scheduler{
		workers: workers,
		reader:  r,
	}
}

// Run processes jobs from the channel and returns results on the result channel.
// The receiver owns each result's buffer and must release it.
func (s *Scheduler) Run(jobs <-chan Job) <-chan output.Result {
	resultCh := make(chan output.Result, s.workers*2)

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				result := s.read(job.Path)
				result.SeqNum = job.SeqNum
				resultCh <- result
			}
		}()
	}

	go func() {
		wg.Wait()
		close(resultCh)
	}()

	return resultCh
}

// Jobs numbers paths in order and feeds them into a closed channel for Run.
func Jobs(paths []string) <-chan Job {
	ch := make(chan Job, len(paths))
	for i, p := range paths {
		ch <- Job{Path: p, SeqNum: i + 1}
	}
	close(ch)
	return ch
}

func (s *Scheduler) read(path string) output.Result {
	result := output.Result{FilePath: path}
	result.Buffer, result.Err = s.reader.Read(path)
	return result
}
