package store

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jsphweid/dosrevive/model"
	"github.com/stretchr/testify/assert"
)

func TestAddAndGet(t *testing.T) {
	s := New()
	chart := model.NewChart(5)
	id := s.Add(chart)

	assert := assert.New(t)
	_, err := uuid.Parse(id)
	assert.NoError(err)
	got, ok := s.Get(id)
	assert.True(ok)
	assert.Same(chart, got)
	_, ok = s.Get("nope")
	assert.False(ok)
}

func TestConcurrentAdds(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(model.NewChart(5))
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, s.Len())
}
