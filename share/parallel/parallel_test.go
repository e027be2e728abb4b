package parallel

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/pkg/errors"
)

func TestPoolRunsEverything(t *testing.T) {
	p := New(3)

	var ran int32
	for i := 0; i < 10; i++ {
		p.Add(func(context.Context) error {
			atomic.AddInt32(&ran, 1)
			return nil
		})
	}

	if err := p.Wait(); err != nil {
		t.Fatalf("Wait() error = %v", err)
	}
	if n := atomic.LoadInt32(&ran); n != 10 {
		t.Errorf("ran = %d, want 10", n)
	}
}

func TestPoolFirstErrorWins(t *testing.T) {
	p := New(1)

	boom := errors.New("boom")
	p.Add(func(context.Context) error { return boom })
	p.Add(func(context.Context) error { return errors.New("later") })

	if err := p.Wait(); err != boom {
		t.Errorf("Wait() error = %v, want the first failure", err)
	}
}

func TestPoolErrorCancelsContext(t *testing.T) {
	p := New(1)

	p.Add(func(context.Context) error { return errors.New("boom") })

	canceled := make(chan bool, 1)
	p.Add(func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			canceled <- true
		default:
			canceled <- false
		}
		return nil
	})

	if err := p.Wait(); err == nil {
		t.Fatal("Wait() error = nil, want the failure")
	}
	if !<-canceled {
		t.Error("pool context not canceled after a failure")
	}
}
