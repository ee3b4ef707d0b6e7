//
// Copyright (c) 2025-2026 Markku Rossi
//
// All rights reserved.
//

// Package env implements global environment for the simulator.
package env

import (
	"crypto/rand"
	"io"
	"runtime"

	"go.uber.org/zap"
)

const (
	// DefaultMemoryBudget is the default maximum size of one
	// amplitude vector in bytes.
	DefaultMemoryBudget = 1 << 30

	// AmplitudeSize is the size of one complex128 amplitude in bytes.
	AmplitudeSize = 16

	// HardMaxQubits caps the register size regardless of the memory
	// budget so that basis indices always fit in int.
	HardMaxQubits = 40
)

// Config defines the global system configuration for the
// simulator. It configures system operation for all simulator
// modules. Config must not be modified after being passed to any
// module. It is safe for concurrent use by multiple modules as they
// do not modify it. The zero value and a nil *Config are valid and
// select the defaults.
type Config struct {
	Rand         io.Reader
	Logger       *zap.Logger
	MemoryBudget int64
	Workers      int
}

// GetRandom returns the source of entropy for unseeded measurement
// sampling.
func (config *Config) GetRandom() io.Reader {
	if config != nil && config.Rand != nil {
		return config.Rand
	}
	return rand.Reader
}

// GetLogger returns the logger. The default logger discards all
// output.
func (config *Config) GetLogger() *zap.Logger {
	if config != nil && config.Logger != nil {
		return config.Logger
	}
	return zap.NewNop()
}

// GetMemoryBudget returns the maximum amplitude vector size in bytes.
func (config *Config) GetMemoryBudget() int64 {
	if config != nil && config.MemoryBudget > 0 {
		return config.MemoryBudget
	}
	return DefaultMemoryBudget
}

// GetWorkers returns the number of parallel workers.
func (config *Config) GetWorkers() int {
	if config != nil && config.Workers > 0 {
		return config.Workers
	}
	return runtime.GOMAXPROCS(0)
}

// MaxQubits returns the largest register size that fits in the
// memory budget.
func (config *Config) MaxQubits() int {
	return MaxQubits(config.GetMemoryBudget())
}

// MaxQubits returns the largest register size whose amplitude vector
// fits in budget bytes.
func MaxQubits(budget int64) int {
	var n int
	for n < HardMaxQubits && int64(AmplitudeSize)<<(n+1) <= budget {
		n++
	}
	return n
}
