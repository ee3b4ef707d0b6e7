//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package qsim

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/markkurossi/qsim/circuit"
	"github.com/markkurossi/qsim/env"
	"github.com/markkurossi/qsim/qerr"
	"github.com/markkurossi/qsim/register"
	"github.com/markkurossi/qsim/sampler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func bell(t *testing.T) *circuit.Circuit {
	c, err := circuit.New(2)
	require.NoError(t, err)
	require.NoError(t, c.Append(circuit.Hadamard(0)))
	require.NoError(t, c.Append(circuit.CNOT(0, 1)))
	require.NoError(t, c.AddRange("pair", 0, 2))
	c.Finalize()
	return c
}

func TestRun(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	config := &env.Config{
		Logger:  zap.New(core),
		Workers: 3,
	}
	circ := bell(t)
	result, err := Run(config, circ, 10000, sampler.FixedSeed(8))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, result.ID)
	assert.Equal(t, uint64(8), result.Seed)
	assert.Equal(t, 10000, result.Shots)
	assert.Equal(t, 2, result.Histogram.Width)
	assert.Equal(t, 0, result.Histogram.Count(0b01)+result.Histogram.Count(0b10))
	assert.InDelta(t, 0.5, result.Histogram.Frequency(0b11), 0.05)
	assert.NotEmpty(t, logs.FilterMessage("run").All())
	assert.Empty(t, logs.Filter(func(e observer.LoggedEntry) bool {
		return e.Level > zap.DebugLevel
	}).All())

	again, err := Run(config, circ, 10000, sampler.FixedSeed(8))
	require.NoError(t, err)
	assert.Equal(t, result.Histogram.Counts(), again.Histogram.Counts())
	assert.NotEqual(t, result.ID, again.ID)

	// The circuit is not modified by runs.
	assert.Equal(t, 2, circ.NumGates())
}

func TestRunRandomSeed(t *testing.T) {
	config := &env.Config{
		Rand: bytes.NewReader([]byte{0, 0, 0, 0, 0, 0, 0, 42}),
	}
	result, err := Run(config, bell(t), 16, sampler.Seed{})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), result.Seed)

	_, err = Run(config, bell(t), 16, sampler.Seed{})
	assert.Error(t, err)
}

func TestRunErrors(t *testing.T) {
	c, err := circuit.New(2)
	require.NoError(t, err)
	_, err = Run(nil, c, 1, sampler.FixedSeed(0))
	assert.ErrorIs(t, err, qerr.ErrNotFinalized)

	c.Finalize()
	_, err = Run(nil, c, 0, sampler.FixedSeed(0))
	assert.ErrorIs(t, err, qerr.ErrEmptyShotCount)

	big, err := circuit.New(30)
	require.NoError(t, err)
	big.Finalize()
	result, err := Run(nil, big, 1, sampler.FixedSeed(0))
	assert.ErrorIs(t, err, qerr.ErrInvalidSize)
	assert.Nil(t, result)
}

func TestRunInvariant(t *testing.T) {
	// A broken gate kernel that collapses two basis states.
	collapse := func(reg *register.Register, g circuit.Gate) error {
		return reg.ApplyPermutation(func(i int) int {
			return i &^ 1
		})
	}
	result, err := execute(nil, bell(t), 10, sampler.FixedSeed(0), collapse)
	require.Error(t, err)
	assert.True(t, qerr.IsFatal(err))
	assert.Nil(t, result)
}

func TestSimulate(t *testing.T) {
	c, err := circuit.New(3)
	require.NoError(t, err)
	require.NoError(t, c.Append(circuit.NOT(0)))
	require.NoError(t, c.Append(circuit.Toffoli(0, 1, 2)))
	require.NoError(t, c.Append(circuit.CNOT(0, 1)))

	reg, err := Simulate(nil, c)
	require.NoError(t, err)
	assert.Equal(t, complex128(1), reg.Amplitude(0b011))
	assert.NoError(t, reg.Check())
	assert.False(t, c.Frozen())
}

func TestPrint(t *testing.T) {
	result, err := Run(nil, bell(t), 100, sampler.FixedSeed(1))
	require.NoError(t, err)

	var buf bytes.Buffer
	result.Print(&buf)
	out := buf.String()
	assert.Contains(t, out, result.ID.String())
	assert.Contains(t, out, "Outcome")
	assert.Contains(t, out, "pair")
	assert.Contains(t, out, "11")

	buf.Reset()
	result.Timing.Print(&buf)
	assert.Contains(t, buf.String(), "Gates")
	assert.Contains(t, buf.String(), "Total")
	assert.Contains(t, buf.String(), "64B")
}

func TestFileSize(t *testing.T) {
	assert.Equal(t, "64B", FileSize(64).String())
	assert.Equal(t, "2kB", FileSize(2048).String())
	assert.Equal(t, "16MB", FileSize(16*1000*1000+1).String())
}
