package parallel

import (
	"sync"
)

// Parallel runs fn for indexes [0, times) with at most concurrency calls in
// flight and returns the results in index order. It blocks until every call
// has settled; callers bound individual calls with their own contexts.
func Parallel[T any](fn func(int) T, times, concurrency int) []T {
	var wg sync.WaitGroup
	results := make([]T, times)
	c := make(chan struct{}, concurrency)
	for i := 0; i < times; i++ {
		wg.Add(1)
		c <- struct{}{}
		go func(index int) {
			defer wg.Done()
			results[index] = fn(index)
			<-c
		}(i)
	}

	wg.Wait()
	close(c)
	return results
}
