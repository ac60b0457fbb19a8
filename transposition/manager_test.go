package transposition

import (
	"sync"
	"testing"

	"github.com/matryer/is"
)

func TestManagerAdvancesOnInterval(t *testing.T) {
	is := is.New(t)
	m := NewManager(100)
	is.Equal(m.Age(), uint32(0))

	m.IncrementAge(99)
	is.Equal(m.Age(), uint32(0))
	m.IncrementAge(1)
	is.Equal(m.Age(), uint32(1))
	m.IncrementAge(350)
	is.Equal(m.Age(), uint32(4))
}

func TestManagerDefaultInterval(t *testing.T) {
	is := is.New(t)
	m := NewManager(0)
	m.IncrementAge(DefaultAgeInterval)
	is.Equal(m.Age(), uint32(1))
}

func TestManagerReset(t *testing.T) {
	is := is.New(t)
	m := NewManager(10)
	m.IncrementAge(100)
	is.Equal(m.Age(), uint32(10))
	m.Reset()
	is.Equal(m.Age(), uint32(0))
}

func TestManagerConcurrentIncrement(t *testing.T) {
	is := is.New(t)
	m := NewManager(10)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				m.IncrementAge(1)
			}
		}()
	}
	wg.Wait()
	// 8000 events at interval 10; the clock never loses ticks.
	is.Equal(m.Age(), uint32(800))
}
