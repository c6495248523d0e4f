package quiz

import (
	"sync"
	"testing"
)

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	k := newKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := k.lock("a")
			counter++
			unlock()
		}()
	}
	wg.Wait()

	if counter != 50 {
		t.Errorf("counter = %d, want 50", counter)
	}
	if k.size() != 0 {
		t.Errorf("size = %d after all unlocks", k.size())
	}
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	k := newKeyedMutex()
	unlockA := k.lock("a")
	done := make(chan struct{})
	go func() {
		unlockB := k.lock("b")
		unlockB()
		close(done)
	}()
	<-done // would deadlock if keys shared a lock
	unlockA()
}
