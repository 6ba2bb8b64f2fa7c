package stream

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func recv[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for emission")
		panic("unreachable")
	}
}

func expectQuiet[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected emission: %v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestQuery(t *testing.T) {
	t.Run("emits the initial result without a signal", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		s := Query(ctx, nil, func(context.Context) (int, error) { return 42, nil })
		if got := recv(t, s.Values()); got != 42 {
			t.Errorf("expected 42, got %d", got)
		}
	})

	t.Run("re-queries on each signal", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var n atomic.Int64
		signal := make(chan struct{}, 1)
		s := Query(ctx, signal, func(context.Context) (int64, error) {
			return n.Add(1), nil
		})

		if got := recv(t, s.Values()); got != 1 {
			t.Fatalf("expected 1, got %d", got)
		}
		signal <- struct{}{}
		if got := recv(t, s.Values()); got != 2 {
			t.Errorf("expected 2, got %d", got)
		}
	})

	t.Run("latest value wins over unconsumed emissions", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		var n atomic.Int64
		signal := make(chan struct{})
		s := Query(ctx, signal, func(context.Context) (int64, error) {
			return n.Add(1), nil
		})

		// Let the initial emission sit unconsumed, then force two more.
		signal <- struct{}{}
		signal <- struct{}{}

		// The stale initial value must have been dropped; the newest value
		// must arrive.
		got := recv(t, s.Values())
		if got == 1 {
			t.Fatal("stale value 1 should have been dropped")
		}
		for got != 3 {
			got = recv(t, s.Values())
		}
	})

	t.Run("query failure surfaces on the error channel", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		boom := errors.New("query failed")
		s := Query(ctx, nil, func(context.Context) (int, error) { return 0, boom })

		if got := recv(t, s.Errs()); !errors.Is(got, boom) {
			t.Errorf("expected %v, got %v", boom, got)
		}
		expectQuiet(t, s.Values())
	})

	t.Run("stops emitting after cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		signal := make(chan struct{}, 1)
		s := Query(ctx, signal, func(context.Context) (int, error) { return 1, nil })
		recv(t, s.Values())

		cancel()
		// Give the producer a moment to observe cancellation.
		time.Sleep(20 * time.Millisecond)
		select {
		case signal <- struct{}{}:
		default:
		}
		expectQuiet(t, s.Values())
	})
}

func TestCombineLatest3(t *testing.T) {
	t.Run("emits only after all sources produced a value", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		a := newStream[int]()
		b := newStream[int]()
		c := newStream[int]()
		out := CombineLatest3(ctx, a, b, c, func(x, y, z int) int { return x + y + z })

		a.emit(1)
		b.emit(2)
		expectQuiet(t, out.Values())

		c.emit(3)
		if got := recv(t, out.Values()); got != 6 {
			t.Errorf("expected 6, got %d", got)
		}
	})

	t.Run("re-emits on any single source update", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		a := newStream[int]()
		b := newStream[int]()
		c := newStream[int]()
		out := CombineLatest3(ctx, a, b, c, func(x, y, z int) int { return x + y + z })

		a.emit(1)
		b.emit(2)
		c.emit(3)
		if got := recv(t, out.Values()); got != 6 {
			t.Fatalf("expected 6, got %d", got)
		}

		b.emit(20)
		if got := recv(t, out.Values()); got != 24 {
			t.Errorf("expected 24, got %d", got)
		}
	})

	t.Run("forwards source errors", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		a := newStream[int]()
		b := newStream[int]()
		c := newStream[int]()
		out := CombineLatest3(ctx, a, b, c, func(x, y, z int) int { return 0 })

		boom := errors.New("source failed")
		b.emitErr(boom)
		if got := recv(t, out.Errs()); !errors.Is(got, boom) {
			t.Errorf("expected %v, got %v", boom, got)
		}
	})
}
