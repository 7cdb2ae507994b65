// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
)

type Key interface {
	Bytes() []byte
}

// Uint64Key is a numeric mapping key.
type Uint64Key uint64

func (k Uint64Key) Bytes() []byte {
	return binary.BigEndian.AppendUint64(nil, uint64(k))
}

// IndexKey keys a value by address and a per address counter.
type IndexKey struct {
	Addr  altava.Address
	Index uint64
}

func (k IndexKey) Bytes() []byte {
	return binary.BigEndian.AppendUint64(k.Addr.Bytes(), k.Index)
}

// Mapping is a key/value storage abstraction for built-in contracts, similar to the mapping in Solidity.
// Values live at Blake2b(key, basePos).
type Mapping[K Key, V any] struct {
	context *Context
	basePos altava.Bytes32
}

func NewMapping[K Key, V any](context *Context, pos altava.Bytes32) *Mapping[K, V] {
	return &Mapping[K, V]{context: context, basePos: pos}
}

func (m *Mapping[K, V]) position(key K) altava.Bytes32 {
	return altava.Blake2b(key.Bytes(), m.basePos.Bytes())
}

func (m *Mapping[K, V]) Get(key K) (value V, err error) {
	err = m.context.state.DecodeStorage(m.context.address, m.position(key), func(raw []byte) error {
		return decodeInto(raw, &value)
	})
	return
}

// Exists reports whether a value was ever stored under key and not deleted.
func (m *Mapping[K, V]) Exists(key K) (bool, error) {
	raw, err := m.context.state.GetRawStorage(m.context.address, m.position(key))
	if err != nil {
		return false, err
	}
	return len(raw) > 0, nil
}

func (m *Mapping[K, V]) Set(key K, value V) error {
	return m.context.state.EncodeStorage(m.context.address, m.position(key), func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

func (m *Mapping[K, V]) Delete(key K) {
	m.context.state.SetRawStorage(m.context.address, m.position(key), nil)
}
