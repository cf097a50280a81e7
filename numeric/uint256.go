// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package numeric provides the fixed-width 256-bit integer operations the
// kernel needs: hash<->integer conversion and Bitcoin-style compact target
// encoding, built on github.com/holiman/uint256 rather than math/big for
// its documented, explicit overflow behavior.
package numeric

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/holiman/uint256"
)

// HashToUint256 interprets a chainhash.Hash as a big-endian 256-bit
// integer. chainhash.Hash stores its bytes in internal (little-endian)
// byte order, so this reverses them first.
func HashToUint256(hash *chainhash.Hash) *uint256.Int {
	var buf [chainhash.HashSize]byte
	copy(buf[:], hash[:])
	reverse(buf[:])
	return new(uint256.Int).SetBytes32(buf[:])
}

// Uint256ToHash converts a 256-bit integer back into a chainhash.Hash using
// the inverse of HashToUint256.
func Uint256ToHash(v *uint256.Int) *chainhash.Hash {
	buf := v.Bytes32()
	reverse(buf[:])
	var hash chainhash.Hash
	copy(hash[:], buf[:])
	return &hash
}

func reverse(b []byte) {
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// ExpandCompact expands a Bitcoin-style compact target (3-byte mantissa,
// 1-byte exponent, bit 0x00800000 as the sign flag) into a 256-bit integer.
// A negative-flagged or overflowing value expands to zero, matching the
// upstream convention that such targets never satisfy any proof.
func ExpandCompact(compact uint32) *uint256.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := compact >> 24

	result := new(uint256.Int)
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		result.SetUint64(uint64(mantissa))
	} else {
		result.SetUint64(uint64(mantissa))
		shift := uint(8 * (exponent - 3))
		if shift >= 256 || result.BitLen()+int(shift) > 256 {
			return new(uint256.Int)
		}
		result.Lsh(result, shift)
	}

	if isNegative && mantissa != 0 {
		return new(uint256.Int)
	}
	return result
}

// CompactFromUint256 is the inverse of ExpandCompact: it re-encodes a 256-bit
// integer into Bitcoin's minimal compact form.
func CompactFromUint256(v *uint256.Int) uint32 {
	if v.IsZero() {
		return 0
	}

	bytes := v.Bytes() // big-endian, no leading zero byte
	size := uint32(len(bytes))

	var mantissa uint32
	switch {
	case size <= 3:
		for _, b := range bytes {
			mantissa = mantissa<<8 | uint32(b)
		}
		mantissa <<= 8 * (3 - size)
	default:
		mantissa = uint32(bytes[0])<<16 | uint32(bytes[1])<<8 | uint32(bytes[2])
	}

	// The mantissa's high bit doubles as the encoding's sign flag; shift
	// right and bump the exponent if it's set so a positive value never
	// reads back as negative.
	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		size++
	}

	return mantissa | size<<24
}

// MulOverflow multiplies two non-negative 256-bit operands and reports
// overflow explicitly, since a fixed-width type (unlike math/big) can
// wrap silently otherwise.
func MulOverflow(a, b *uint256.Int) (*uint256.Int, error) {
	product, overflow := new(uint256.Int).MulOverflow(a, b)
	if overflow {
		return nil, fmt.Errorf("numeric: target multiplication overflowed 256 bits")
	}
	return product, nil
}
