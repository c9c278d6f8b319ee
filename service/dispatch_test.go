package service

import (
	"testing"
	"time"
)

func TestDispatcherRunsTasksInOrder(t *testing.T) {
	d := NewDispatcher(4)

	var got []int
	for i := 1; i <= 3; i++ {
		i := i
		d.Enqueue(func() { got = append(got, i) })
	}
	d.Stop()

	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("tasks ran out of order: %v", got)
	}
}

func TestEnqueueDoesNotBlockWhenFull(t *testing.T) {
	d := NewDispatcher(1)

	started := make(chan struct{})
	release := make(chan struct{})
	d.Enqueue(func() {
		close(started)
		<-release
	})
	<-started

	// Worker is busy; this one occupies the single buffer slot.
	d.Enqueue(func() {})

	done := make(chan struct{})
	go func() {
		d.Enqueue(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("enqueue blocked on a full queue")
	}

	close(release)
	d.Stop()
}

func TestStopIsIdempotent(t *testing.T) {
	d := NewDispatcher(1)
	d.Enqueue(func() {})
	d.Stop()
	d.Stop()
}
