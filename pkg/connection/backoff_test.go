package connection

import (
	"testing"
	"time"
)

func TestBackoff(t *testing.T) {
	t.Run("DefaultSequence", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{})

		expected := []time.Duration{
			1 * time.Second,
			2 * time.Second,
			4 * time.Second,
			8 * time.Second,
			16 * time.Second,
			32 * time.Second,
			60 * time.Second,
			60 * time.Second,
		}

		for i, exp := range expected {
			if got := b.Next(); got != exp {
				t.Errorf("step %d: delay = %v, want %v", i, got, exp)
			}
		}
		if b.Steps() != len(expected) {
			t.Errorf("Steps() = %d, want %d", b.Steps(), len(expected))
		}
	})

	t.Run("Jitter", func(t *testing.T) {
		b := NewBackoff(DefaultBackoffConfig())
		upper := time.Duration(float64(InitialBackoff) * (1 + JitterFactor))

		for i := 0; i < 20; i++ {
			b.Reset()
			d := b.Next()
			if d < InitialBackoff || d > upper {
				t.Errorf("sample %d: %v outside [%v, %v]", i, d, InitialBackoff, upper)
			}
		}
	})

	t.Run("Reset", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{})
		b.Next()
		b.Next()
		b.Reset()

		if b.Current() != InitialBackoff {
			t.Errorf("Current() = %v, want %v", b.Current(), InitialBackoff)
		}
		if b.Steps() != 0 {
			t.Errorf("Steps() = %d, want 0", b.Steps())
		}
	})

	t.Run("CustomConfig", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{
			Initial:    100 * time.Millisecond,
			Max:        300 * time.Millisecond,
			Multiplier: 3,
		})

		want := []time.Duration{100 * time.Millisecond, 300 * time.Millisecond, 300 * time.Millisecond}
		for i, exp := range want {
			if got := b.Next(); got != exp {
				t.Errorf("step %d: delay = %v, want %v", i, got, exp)
			}
		}
	})

	t.Run("MaxBelowInitial", func(t *testing.T) {
		b := NewBackoff(BackoffConfig{Initial: 5 * time.Second, Max: time.Second})
		b.Next()
		if b.Current() != 5*time.Second {
			t.Errorf("Current() = %v, want 5s", b.Current())
		}
	})
}
