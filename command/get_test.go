package command

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestWaitMirroredDrains(t *testing.T) {
	var mirrored sync.WaitGroup
	mirrored.Add(1)

	go func() {
		time.Sleep(10 * time.Millisecond)
		mirrored.Done()
	}()

	if err := waitMirrored(&mirrored, make(chan error, 1)); err != nil {
		t.Fatal(err)
	}
}

func TestWaitMirroredReturnsWorkerError(t *testing.T) {
	var mirrored sync.WaitGroup
	// An upload that will never be announced as handled
	// because the worker died first.
	mirrored.Add(1)

	errC := make(chan error, 1)
	errC <- errors.New("bucket gone")

	done := make(chan error, 1)
	go func() {
		done <- waitMirrored(&mirrored, errC)
	}()

	select {
	case err := <-done:
		if err == nil || err.Error() != "bucket gone" {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("waiting on a dead mirror worker hung")
	}
}
