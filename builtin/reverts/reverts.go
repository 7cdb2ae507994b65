// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Kind classifies why a call was rejected.
type Kind string

const (
	ZeroAddress                    Kind = "ZeroAddress"
	NotOwner                       Kind = "NotOwner"
	Unauthorized                   Kind = "Unauthorized"
	InvalidInput                   Kind = "InvalidInput"
	InvalidOrdering                Kind = "InvalidOrdering"
	OverflowMax                    Kind = "OverflowMax"
	CapacityExceeded               Kind = "CapacityExceeded"
	NotFound                       Kind = "NotFound"
	NotStaked                      Kind = "NotStaked"
	AlreadyExists                  Kind = "AlreadyExists"
	AlreadyInitialized             Kind = "AlreadyInitialized"
	InvalidPeriod                  Kind = "InvalidPeriod"
	TierNotLive                    Kind = "TierNotLive"
	StillLocked                    Kind = "StillLocked"
	AlreadyUnlocked                Kind = "AlreadyUnlocked"
	InsufficientAllowanceOrBalance Kind = "InsufficientAllowanceOrBalance"
	Paused                         Kind = "Paused"
	PoolAlreadyStarted             Kind = "PoolAlreadyStarted"
	NotAllowed                     Kind = "NotAllowed"
	Overflow                       Kind = "Overflow"
)

// errorSelector is the 4-byte selector of Error(string).
var errorSelector = []byte{0x08, 0xc3, 0x79, 0xa0}

// ErrRevert rejects a call. Every state change of the call is rolled back.
type ErrRevert struct {
	Kind   Kind
	Reason string
}

// New returns a revert of the given kind.
func New(kind Kind, reason string) *ErrRevert {
	return &ErrRevert{Kind: kind, Reason: reason}
}

// Newf is New with a formatted reason.
func Newf(kind Kind, format string, args ...any) *ErrRevert {
	return New(kind, fmt.Sprintf(format, args...))
}

func (e *ErrRevert) Error() string {
	if e.Reason == "" {
		return string(e.Kind)
	}
	return string(e.Kind) + ": " + e.Reason
}

// Bytes returns the reason ABI encoded as Error(string).
func (e *ErrRevert) Bytes() []byte {
	if e == nil {
		return nil
	}
	msg := []byte(e.Reason)
	padded := (len(msg) + 31) / 32 * 32

	encoded := make([]byte, 4+32+32+padded)
	copy(encoded, errorSelector)
	binary.BigEndian.PutUint64(encoded[4+24:], 32)
	binary.BigEndian.PutUint64(encoded[4+32+24:], uint64(len(msg)))
	copy(encoded[4+64:], msg)
	return encoded
}

// IsRevertErr reports whether err, or anything it wraps, is a revert.
func IsRevertErr(err any) bool {
	e, ok := err.(error)
	if !ok || e == nil {
		return false
	}
	var re *ErrRevert
	return errors.As(e, &re) && re != nil
}

// KindOf returns the kind of a revert error, or "" for other errors.
func KindOf(err error) Kind {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re.Kind
	}
	return ""
}

// ReasonOf returns the reason of a revert error, or "" for other errors.
func ReasonOf(err error) string {
	var re *ErrRevert
	if errors.As(err, &re) && re != nil {
		return re.Reason
	}
	return ""
}
