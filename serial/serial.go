// Copyright (c) 2014-2014 PPCD developers.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package serial provides the little-endian, unframed element serialization
// the kernel's hash preimages require, as a standalone package since every
// consensus-hashing package (modifier, kernel) needs it.
package serial

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// WriteElement writes the canonical little-endian, unframed representation
// of element to w. No type tags, no length prefixes: the preimage format is
// fixed by position, not self-describing.
func WriteElement(w io.Writer, element interface{}) error {
	var scratch [8]byte

	switch e := element.(type) {
	case uint32:
		binary.LittleEndian.PutUint32(scratch[:4], e)
		_, err := w.Write(scratch[:4])
		return err

	case int32:
		binary.LittleEndian.PutUint32(scratch[:4], uint32(e))
		_, err := w.Write(scratch[:4])
		return err

	case uint64:
		binary.LittleEndian.PutUint64(scratch[:8], e)
		_, err := w.Write(scratch[:8])
		return err

	case int64:
		binary.LittleEndian.PutUint64(scratch[:8], uint64(e))
		_, err := w.Write(scratch[:8])
		return err

	case *chainhash.Hash:
		_, err := w.Write(e[:])
		return err

	case chainhash.Hash:
		_, err := w.Write(e[:])
		return err

	default:
		return fmt.Errorf("serial: unsupported element type %T", element)
	}
}
