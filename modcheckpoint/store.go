// Copyright (c) 2013-2015 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package modcheckpoint persists stake-modifier checksums keyed by height,
// the durable half of the hard-checkpoint mechanism: checksums are looked
// up by height against posparams.Params.StakeModifierCheckpoints.
package modcheckpoint

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/database"
)

var modifierChecksumBucketName = []byte("posmodifierchecksum")

// Store persists stake-modifier checksums in a database.DB metadata bucket.
type Store struct {
	db database.DB
}

// NewStore wraps db. Init must be called once before Put/Get on a fresh
// database.
func NewStore(db database.DB) *Store {
	return &Store{db: db}
}

// Init creates the checksum bucket if it does not already exist.
func (s *Store) Init() error {
	return s.db.Update(func(dbTx database.Tx) error {
		_, err := dbTx.Metadata().CreateBucketIfNotExists(modifierChecksumBucketName)
		return err
	})
}

func heightToKey(height int32) []byte {
	key := make([]byte, 4)
	binary.BigEndian.PutUint32(key, uint32(height))
	return key
}

// PutChecksum records the checksum computed for the block at height.
func (s *Store) PutChecksum(height int32, checksum uint32) error {
	return s.db.Update(func(dbTx database.Tx) error {
		bucket := dbTx.Metadata().Bucket(modifierChecksumBucketName)
		var buf [4]byte
		binary.LittleEndian.PutUint32(buf[:], checksum)
		return bucket.Put(heightToKey(height), buf[:])
	})
}

// GetChecksum returns the checksum recorded for height, if any.
func (s *Store) GetChecksum(height int32) (checksum uint32, found bool, err error) {
	err = s.db.View(func(dbTx database.Tx) error {
		bucket := dbTx.Metadata().Bucket(modifierChecksumBucketName)
		buf := bucket.Get(heightToKey(height))
		if buf == nil {
			return nil
		}
		if len(buf) != 4 {
			return fmt.Errorf("modcheckpoint: corrupt checksum record at height %d", height)
		}
		checksum = binary.LittleEndian.Uint32(buf)
		found = true
		return nil
	})
	return checksum, found, err
}
