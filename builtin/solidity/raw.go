// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"reflect"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
)

// Raw stores an arbitrary RLP encodable value in a single position.
type Raw[T any] struct {
	context *Context
	pos     altava.Bytes32
}

func NewRaw[T any](context *Context, pos altava.Bytes32) *Raw[T] {
	return &Raw[T]{context: context, pos: pos}
}

// Get decodes the stored value. An empty position yields the zero value, or a
// freshly allocated one when T is a pointer.
func (r *Raw[T]) Get() (value T, err error) {
	err = r.context.state.DecodeStorage(r.context.address, r.pos, func(raw []byte) error {
		return decodeInto(raw, &value)
	})
	return
}

func (r *Raw[T]) Set(value T) error {
	return r.context.state.EncodeStorage(r.context.address, r.pos, func() ([]byte, error) {
		return rlp.EncodeToBytes(value)
	})
}

// Clear empties the position.
func (r *Raw[T]) Clear() {
	r.context.state.SetRawStorage(r.context.address, r.pos, nil)
}

func decodeInto[T any](raw []byte, value *T) error {
	if t := reflect.TypeOf(*value); t != nil && t.Kind() == reflect.Ptr {
		*value = reflect.New(t.Elem()).Interface().(T)
	}
	if len(raw) == 0 {
		return nil
	}
	return rlp.DecodeBytes(raw, value)
}
