package services

import (
	"sync"
	"testing"
)

func TestKeyedMutexSerializesPerKey(t *testing.T) {
	var km keyedMutex
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := km.Lock("itn_a")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Fatalf("lost updates under the same key: %d", counter)
	}
	km.mu.Lock()
	defer km.mu.Unlock()
	if len(km.locks) != 0 {
		t.Fatalf("lock table leaked %d entries", len(km.locks))
	}
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	var km keyedMutex

	unlockA := km.Lock("itn_a")
	done := make(chan struct{})
	go func() {
		unlockB := km.Lock("itn_b")
		unlockB()
		close(done)
	}()
	<-done // key B never blocks on key A
	unlockA()
}
