package ai

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnableDebugLogging(t *testing.T) {
	t.Cleanup(func() { EnableDebugLogging(false) })

	tests := []struct {
		name     string
		enabled  bool
		expected bool
	}{
		{"enable", true, true},
		{"disable", false, false},
		{"enable again", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			EnableDebugLogging(tt.enabled)
			assert.Equal(t, tt.expected, IsDebugEnabled())
		})
	}
}

func TestIsDebugEnabled_Concurrent(t *testing.T) {
	EnableDebugLogging(true)
	t.Cleanup(func() { EnableDebugLogging(false) })

	// Concurrent readers while brains tick must be race-free.
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 1000 {
				_ = IsDebugEnabled()
			}
		}()
	}
	wg.Wait()
}
