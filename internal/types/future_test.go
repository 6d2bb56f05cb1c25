package types

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestFuture_Wait(t *testing.T) {
	t.Run("successful completion", func(t *testing.T) {
		future := NewFuture()

		go func() {
			time.Sleep(50 * time.Millisecond)
			future.Complete(nil)
		}()

		if err := future.Wait(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("error completion", func(t *testing.T) {
		future := NewFuture()
		expectedErr := errors.New("drain failed")

		go future.Complete(expectedErr)

		if err := future.Wait(); err != expectedErr {
			t.Errorf("expected error %v, got %v", expectedErr, err)
		}
	})

	t.Run("only first completion counts", func(t *testing.T) {
		future := NewFuture()
		future.Complete(nil)
		future.Complete(errors.New("late"))

		if err := future.Wait(); err != nil {
			t.Errorf("expected first completion to win, got %v", err)
		}
	})
}

func TestFuture_WaitContext(t *testing.T) {
	t.Run("completes before deadline", func(t *testing.T) {
		future := NewFuture()
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()

		go func() {
			time.Sleep(20 * time.Millisecond)
			future.Complete(nil)
		}()

		if err := future.WaitContext(ctx); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("deadline before completion", func(t *testing.T) {
		future := NewFuture()
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
		defer cancel()

		if err := future.WaitContext(ctx); err != context.DeadlineExceeded {
			t.Errorf("expected context.DeadlineExceeded, got %v", err)
		}
	})
}

func TestFuture_WaitTimeout(t *testing.T) {
	future := NewFuture()
	if err := future.WaitTimeout(20 * time.Millisecond); err != ErrWaitTimeout {
		t.Errorf("expected ErrWaitTimeout, got %v", err)
	}

	future.Complete(nil)
	if err := future.WaitTimeout(20 * time.Millisecond); err != nil {
		t.Errorf("expected no error after completion, got %v", err)
	}
	if err := future.WaitTimeout(0); err != nil {
		t.Errorf("expected no error waiting forever on done future, got %v", err)
	}
}

func TestFuture_IsReady(t *testing.T) {
	future := NewFuture()
	if future.IsReady() {
		t.Error("expected IsReady to be false")
	}

	future.Complete(nil)
	if !future.IsReady() {
		t.Error("expected IsReady to be true")
	}

	if !Completed(nil).IsReady() {
		t.Error("Completed future should be ready")
	}
}

func TestFuture_ConcurrentWaiters(t *testing.T) {
	future := NewFuture()
	done := make(chan bool, 10)

	for range 10 {
		go func() {
			done <- future.Wait() == nil
		}()
	}

	time.Sleep(20 * time.Millisecond)
	future.Complete(nil)

	for range 10 {
		select {
		case ok := <-done:
			if !ok {
				t.Error("unexpected error from waiter")
			}
		case <-time.After(500 * time.Millisecond):
			t.Fatal("timeout waiting for concurrent waiters")
		}
	}
}
