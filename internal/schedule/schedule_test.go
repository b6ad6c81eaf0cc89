package schedule

import (
	"reflect"
	"testing"
	"time"
)

func TestManualRunsInDeadlineOrder(t *testing.T) {
	m := NewManual()
	var got []string
	m.Schedule(3*time.Second, func() { got = append(got, "c") })
	m.Schedule(1*time.Second, func() { got = append(got, "a") })
	m.Schedule(2*time.Second, func() { got = append(got, "b") })
	m.Schedule(2*time.Second, func() { got = append(got, "b2") })

	m.Advance(1500 * time.Millisecond)
	if !reflect.DeepEqual(got, []string{"a"}) {
		t.Fatalf("after 1.5s got %v", got)
	}
	m.Advance(2 * time.Second)
	if !reflect.DeepEqual(got, []string{"a", "b", "b2", "c"}) {
		t.Fatalf("after 3.5s got %v", got)
	}
	if m.Now() != 3500*time.Millisecond {
		t.Fatalf("now = %v", m.Now())
	}
	if m.Pending() != 0 {
		t.Fatalf("pending = %d", m.Pending())
	}
}

func TestManualCancel(t *testing.T) {
	m := NewManual()
	ran := false
	cancel := m.Schedule(time.Second, func() { ran = true })
	if !cancel() {
		t.Fatal("first cancel should report stopped")
	}
	if cancel() {
		t.Fatal("second cancel should report false")
	}
	m.Advance(time.Minute)
	if ran {
		t.Fatal("cancelled task ran")
	}
}

func TestManualCancelAfterRun(t *testing.T) {
	m := NewManual()
	cancel := m.Schedule(time.Second, func() {})
	m.Advance(time.Second)
	if cancel() {
		t.Fatal("cancel after run should report false")
	}
}

func TestManualChainedTasksWithinWindow(t *testing.T) {
	m := NewManual()
	var at []time.Duration
	m.Schedule(time.Second, func() {
		at = append(at, m.Now())
		m.Schedule(time.Second, func() { at = append(at, m.Now()) })
	})
	m.Advance(5 * time.Second)
	want := []time.Duration{time.Second, 2 * time.Second}
	if !reflect.DeepEqual(at, want) {
		t.Fatalf("ran at %v, want %v", at, want)
	}
}

func TestClockRunsAndCancels(t *testing.T) {
	var c Clock
	done := make(chan struct{})
	c.Schedule(time.Millisecond, func() { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("clock task did not run")
	}

	fired := make(chan struct{}, 1)
	cancel := c.Schedule(time.Hour, func() { fired <- struct{}{} })
	if !cancel() {
		t.Fatal("cancel should stop a pending timer")
	}
}
