package tautrope

import "sync"

// task splits items into contiguous chunks, one goroutine per chunk, and waits for all of them.
// fn must only touch its own item.
func task[T any](workers int, items []T, fn func(item T)) {
	if len(items) == 0 {
		return
	}
	workers = max(1, min(workers, len(items)))
	if workers == 1 {
		for _, item := range items {
			fn(item)
		}
		return
	}

	var wg sync.WaitGroup
	chunk := (len(items) + workers - 1) / workers
	for start := 0; start < len(items); start += chunk {
		wg.Add(1)
		go func(part []T) {
			defer wg.Done()
			for _, item := range part {
				fn(item)
			}
		}(items[start:min(start+chunk, len(items))])
	}
	wg.Wait()
}
