package stream

import (
	"context"
	"encoding/json"
	"io"
	"sort"
)

// Slice, et al., taken from:
// https://betterprogramming.pub/writing-a-stream-api-in-go-afbc3c4350e2

func Slice[T any](ctx context.Context, in []T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for _, element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

func NDJSON[T any](ctx context.Context, in io.Reader) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		dec := json.NewDecoder(in)
		for {
			var element T
			if err := dec.Decode(&element); err != nil {
				if err == io.EOF {
					return
				}
				continue
			}
			select {
			case <-ctx.Done():
				return
			case out <- element:
			}
		}
	}()
	return out
}

func Filter[T any](ctx context.Context, predicate func(T) bool, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		for element := range in {
			if predicate(element) {
				select {
				case <-ctx.Done():
					return
				case out <- element:
				}
			}
		}
	}()
	return out
}

func Transform[I any, O any](ctx context.Context, transformer func(I) O, in <-chan I) <-chan O {
	out := make(chan O)
	go func() {
		defer close(out)
		for element := range in {
			select {
			case <-ctx.Done():
				return
			case out <- transformer(element):
			}
		}
	}()
	return out
}

func Collect[T any](ctx context.Context, in <-chan T) []T {
	out := make([]T, 0)
	for element := range in {
		select {
		case <-ctx.Done():
			return out
		default:
			out = append(out, element)
		}
	}
	return out
}

func Sink[T any](ctx context.Context, fn func(T), in <-chan T) {
	for element := range in {
		select {
		case <-ctx.Done():
			return
		default:
			fn(element)
		}
	}
}

// BatchSort emits all elements of in, in batches of size, each batch
// sorted by less. Useful for mostly-chronological sources whose
// out-of-order points are near each other.
func BatchSort[T any](ctx context.Context, size int, less func(a, b T) bool, in <-chan T) <-chan T {
	out := make(chan T)
	go func() {
		defer close(out)
		batch := make([]T, 0, size)
		flush := func() {
			if less != nil {
				sort.SliceStable(batch, func(i, j int) bool {
					return less(batch[i], batch[j])
				})
			}
			for _, element := range batch {
				select {
				case <-ctx.Done():
					return
				case out <- element:
				}
			}
			batch = batch[:0]
		}
		for element := range in {
			batch = append(batch, element)
			if len(batch) >= size {
				flush()
			}
		}
		flush()
	}()
	return out
}
