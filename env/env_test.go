//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package env

import (
	"bytes"
	"crypto/rand"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestDefaults(t *testing.T) {
	for _, config := range []*Config{nil, {}} {
		assert.Equal(t, rand.Reader, config.GetRandom())
		assert.NotNil(t, config.GetLogger())
		assert.Equal(t, int64(DefaultMemoryBudget), config.GetMemoryBudget())
		assert.Equal(t, runtime.GOMAXPROCS(0), config.GetWorkers())
		assert.Equal(t, 26, config.MaxQubits())
	}
}

func TestOverrides(t *testing.T) {
	r := bytes.NewReader([]byte{1, 2, 3})
	logger := zap.NewExample()
	config := &Config{
		Rand:         r,
		Logger:       logger,
		MemoryBudget: 1 << 20,
		Workers:      3,
	}
	assert.Equal(t, r, config.GetRandom())
	assert.Equal(t, logger, config.GetLogger())
	assert.Equal(t, int64(1<<20), config.GetMemoryBudget())
	assert.Equal(t, 3, config.GetWorkers())
	assert.Equal(t, 16, config.MaxQubits())
}

func TestMaxQubits(t *testing.T) {
	tests := []struct {
		budget int64
		result int
	}{
		{0, 0},
		{16, 0},
		{32, 1},
		{63, 1},
		{64, 2},
		{1 << 62, HardMaxQubits},
	}
	for _, test := range tests {
		assert.Equal(t, test.result, MaxQubits(test.budget),
			"budget=%d", test.budget)
	}
}
