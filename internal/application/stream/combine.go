package stream

import "context"

// CombineLatest3 joins three streams with combine-latest semantics: the
// first combined value is emitted only once all three sources have produced
// at least one value, and every subsequent emission from any source
// produces a new combined value from the latest of each. Errors from any
// source are forwarded to the combined stream's error channel. The combined
// stream runs until ctx is cancelled.
func CombineLatest3[A, B, C, R any](
	ctx context.Context,
	sa *Stream[A],
	sb *Stream[B],
	sc *Stream[C],
	combine func(A, B, C) R,
) *Stream[R] {
	out := newStream[R]()
	go func() {
		var (
			a A
			b B
			c C

			seenA, seenB, seenC bool
		)
		maybeEmit := func() {
			if seenA && seenB && seenC {
				out.emit(combine(a, b, c))
			}
		}
		for {
			select {
			case <-ctx.Done():
				return
			case a = <-sa.vals:
				seenA = true
				maybeEmit()
			case b = <-sb.vals:
				seenB = true
				maybeEmit()
			case c = <-sc.vals:
				seenC = true
				maybeEmit()
			case err := <-sa.errs:
				out.emitErr(err)
			case err := <-sb.errs:
				out.emitErr(err)
			case err := <-sc.errs:
				out.emitErr(err)
			}
		}
	}()
	return out
}
