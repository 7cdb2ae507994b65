// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/stackedmap"
)

// Error is the error caused by state access failure.
type Error struct {
	cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("state: %v", e.cause)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.cause }

type storageKey struct {
	addr altava.Address
	key  altava.Bytes32
}

func (k storageKey) encode() []byte {
	return append(append(make([]byte, 0, 52), k.addr[:]...), k.key[:]...)
}

// State is a revertable view of contract storage.
type State struct {
	stater *Stater
	sm     *stackedmap.StackedMap[storageKey, []byte]
}

func newState(stater *Stater) *State {
	s := &State{stater: stater}
	s.sm = stackedmap.New(func(key storageKey) ([]byte, bool, error) {
		v, err := stater.getCommitted(key)
		if err != nil {
			return nil, false, err
		}
		return v, true, nil
	})
	return s
}

// GetRawStorage returns the raw value of the slot. An empty slot returns nil.
func (s *State) GetRawStorage(addr altava.Address, key altava.Bytes32) ([]byte, error) {
	v, _, err := s.sm.Get(storageKey{addr, key})
	if err != nil {
		return nil, &Error{err}
	}
	return v, nil
}

// SetRawStorage sets the raw value of the slot. An empty value clears it.
func (s *State) SetRawStorage(addr altava.Address, key altava.Bytes32, raw []byte) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// GetStorage returns the slot as a 32 byte word.
func (s *State) GetStorage(addr altava.Address, key altava.Bytes32) (altava.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil || len(raw) == 0 {
		return altava.Bytes32{}, err
	}
	var content []byte
	if err := rlp.DecodeBytes(raw, &content); err != nil {
		return altava.Bytes32{}, &Error{err}
	}
	return altava.BytesToBytes32(content), nil
}

// SetStorage stores a 32 byte word, leading zeros trimmed.
func (s *State) SetStorage(addr altava.Address, key, value altava.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// EncodeStorage sets the slot to the output of enc.
func (s *State) EncodeStorage(addr altava.Address, key altava.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return &Error{err}
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage reads the slot and hands it to dec.
func (s *State) DecodeStorage(addr altava.Address, key altava.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	if err := dec(raw); err != nil {
		return &Error{err}
	}
	return nil
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts to the checkpoint specified by revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Stage collects every change made since the state was created.
func (s *State) Stage() *Stage {
	changes := make(map[storageKey][]byte)
	order := make([]storageKey, 0)
	s.sm.Journal(func(k storageKey, v []byte) bool {
		if _, ok := changes[k]; !ok {
			order = append(order, k)
		}
		changes[k] = v
		return true
	})
	return &Stage{stater: s.stater, keys: order, changes: changes}
}
