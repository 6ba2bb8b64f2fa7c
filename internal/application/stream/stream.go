// Package stream provides reactive query-result streams: possibly-infinite
// sequences of "current result" values that re-emit whenever the underlying
// data changes, with latest-value-wins buffering.
package stream

import "context"

// Stream is a live sequence of values of type T with a side channel for
// query errors. Both channels hold at most the latest value: a slow consumer
// only ever observes the most recent emission. Streams never close their
// channels; cancelling the context passed at construction releases the
// producer, after which no further values are emitted.
type Stream[T any] struct {
	vals chan T
	errs chan error
}

// Values returns the value channel.
func (s *Stream[T]) Values() <-chan T {
	return s.vals
}

// Errs returns the error channel. A value arriving here means the latest
// re-query failed; the stream stays alive and the previous value remains
// the most recent good one.
func (s *Stream[T]) Errs() <-chan error {
	return s.errs
}

func newStream[T any]() *Stream[T] {
	return &Stream[T]{
		vals: make(chan T, 1),
		errs: make(chan error, 1),
	}
}

func (s *Stream[T]) emit(v T) {
	put(s.vals, v)
}

func (s *Stream[T]) emitErr(err error) {
	put(s.errs, err)
}

// put delivers v with latest-value-wins semantics: if the single-slot buffer
// is full, the stale value is dropped. The producer is the sole sender, so
// the drain-retry loop terminates.
func put[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// Query starts a stream that runs query immediately and again on every
// signal tick, emitting each result. Query failures are emitted on the
// error channel and do not stop the stream. The stream runs until ctx is
// cancelled.
func Query[T any](ctx context.Context, signal <-chan struct{}, query func(context.Context) (T, error)) *Stream[T] {
	s := newStream[T]()
	go func() {
		run := func() {
			v, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					s.emitErr(err)
				}
				return
			}
			s.emit(v)
		}
		run()
		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				run()
			}
		}
	}()
	return s
}

// Of returns a stream with a single pre-loaded value. Useful in tests and
// for adapting one-shot results to stream-consuming code.
func Of[T any](v T) *Stream[T] {
	s := newStream[T]()
	s.emit(v)
	return s
}
