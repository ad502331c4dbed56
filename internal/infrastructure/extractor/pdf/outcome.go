package pdf

import "fmt"

// outcome is the result of processing one page or image: a value or the
// reason it was skipped.
type outcome[T any] struct {
	value T
	err   error
}

// attempt runs fn and converts a panic inside the PDF libraries into a
// skipped outcome.
func attempt[T any](fn func() (T, error)) (out outcome[T]) {
	defer func() {
		if r := recover(); r != nil {
			out = outcome[T]{err: fmt.Errorf("recovered panic: %v", r)}
		}
	}()
	value, err := fn()
	return outcome[T]{value: value, err: err}
}

// collect keeps successful values in order and reports every skipped index.
func collect[T any](outcomes []outcome[T], onSkip func(index int, err error)) []T {
	out := make([]T, 0, len(outcomes))
	for i, o := range outcomes {
		if o.err != nil {
			if onSkip != nil {
				onSkip(i, o.err)
			}
			continue
		}
		out = append(out, o.value)
	}
	return out
}
