//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

package sampler

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20"
)

// Seed selects the random stream of a sampling run. The zero value
// draws a fresh seed from the configured entropy source.
type Seed struct {
	value uint64
	fixed bool
}

// FixedSeed returns a seed with the value v. Runs with equal fixed
// seeds produce equal histograms.
func FixedSeed(v uint64) Seed {
	return Seed{
		value: v,
		fixed: true,
	}
}

// Fixed tests if the seed has a fixed value.
func (s Seed) Fixed() bool {
	return s.fixed
}

// Resolve returns the seed value. Unfixed seeds read 8 bytes from
// rand.
func (s Seed) Resolve(rand io.Reader) (uint64, error) {
	if s.fixed {
		return s.value, nil
	}
	var buf [8]byte
	if _, err := io.ReadFull(rand, buf[:]); err != nil {
		return 0, fmt.Errorf("sampler: read seed: %w", err)
	}
	return binary.BigEndian.Uint64(buf[:]), nil
}

func (s Seed) String() string {
	if s.fixed {
		return fmt.Sprintf("%d", s.value)
	}
	return "random"
}

// prg produces uniform float64 values from the ChaCha20 keystream of
// the seed and stream number.
type prg struct {
	cipher *chacha20.Cipher
	buf    [512]byte
	pos    int
}

func newPRG(seed uint64, stream uint64) *prg {
	key := make([]byte, chacha20.KeySize)
	binary.BigEndian.PutUint64(key, seed)
	nonce := make([]byte, chacha20.NonceSize)
	binary.BigEndian.PutUint64(nonce[4:], stream)

	// The key and nonce sizes are always valid.
	c, _ := chacha20.NewUnauthenticatedCipher(key, nonce)
	p := &prg{
		cipher: c,
	}
	p.pos = len(p.buf)
	return p
}

func (p *prg) Uint64() uint64 {
	if p.pos+8 > len(p.buf) {
		clear(p.buf[:])
		p.cipher.XORKeyStream(p.buf[:], p.buf[:])
		p.pos = 0
	}
	v := binary.BigEndian.Uint64(p.buf[p.pos:])
	p.pos += 8
	return v
}

// Float64 returns a uniform value in [0, 1).
func (p *prg) Float64() float64 {
	return float64(p.Uint64()>>11) / (1 << 53)
}
