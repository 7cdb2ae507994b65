// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"fmt"
	"math"

	ethmath "github.com/ethereum/go-ethereum/common/math"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
)

type Range struct {
	Unit logdb.RangeType `json:"unit"`
	From *uint64         `json:"from,omitempty"`
	To   *uint64         `json:"to,omitempty"`
}

type Options struct {
	Offset uint64 `json:"offset"`
	Limit  uint64 `json:"limit"`
}

// LogMeta locates a log within the call that emitted it.
type LogMeta struct {
	CallNumber  uint32         `json:"callNumber"`
	Index       uint32         `json:"index"`
	BlockNumber uint64         `json:"blockNumber"`
	BlockTime   uint64         `json:"blockTime"`
	Caller      altava.Address `json:"caller"`
}

// ConvertRange translates an API range, where a missing bound means unbounded.
// Bounds are capped to the signed range sqlite stores.
func ConvertRange(r *Range) (*logdb.Range, error) {
	if r == nil {
		return nil, nil
	}
	unit := r.Unit
	switch unit {
	case "":
		unit = logdb.Block
	case logdb.Block, logdb.Time:
	default:
		return nil, fmt.Errorf("range.unit: unknown unit %q", r.Unit)
	}
	out := &logdb.Range{Unit: unit, To: math.MaxInt64}
	if r.From != nil {
		out.From = min(*r.From, math.MaxInt64)
	}
	if r.To != nil {
		out.To = min(*r.To, math.MaxInt64)
	}
	if out.From > out.To {
		return nil, errors.New("range.to must be greater than or equal to range.from")
	}
	return out, nil
}

// LogLimits checks the paging options of a log query against limit. A nil
// options is replaced by one that fetches a single log past the limit, so an
// oversized result can be detected.
func LogLimits(opts *Options, limit uint64) (*logdb.Options, error) {
	if opts == nil {
		return &logdb.Options{Limit: limit + 1}, nil
	}
	if opts.Limit > limit {
		return nil, Forbidden(fmt.Errorf("options.limit exceeds the maximum allowed value of %d", limit))
	}
	if opts.Offset > math.MaxInt64 {
		return nil, BadRequest(fmt.Errorf("options.offset exceeds the maximum allowed value of %d", int64(math.MaxInt64)))
	}
	return &logdb.Options{Offset: opts.Offset, Limit: opts.Limit}, nil
}

// CheckLogCount rejects a result larger than limit.
func CheckLogCount(n int, limit uint64) error {
	if uint64(n) > limit {
		return Forbidden(fmt.Errorf("the number of filtered logs exceeds the maximum allowed value of %d, please use pagination", limit))
	}
	return nil
}

type EventCriteria struct {
	Address *altava.Address `json:"address"`
	Topic0  *altava.Bytes32 `json:"topic0"`
	Topic1  *altava.Bytes32 `json:"topic1"`
	Topic2  *altava.Bytes32 `json:"topic2"`
	Topic3  *altava.Bytes32 `json:"topic3"`
	Topic4  *altava.Bytes32 `json:"topic4"`
}

func (c *EventCriteria) Convert() *logdb.EventCriteria {
	return &logdb.EventCriteria{
		Address: c.Address,
		Topics:  [5]*altava.Bytes32{c.Topic0, c.Topic1, c.Topic2, c.Topic3, c.Topic4},
	}
}

type FilteredEvent struct {
	Address altava.Address   `json:"address"`
	Name    string           `json:"name"`
	Method  string           `json:"method"`
	Topics  []altava.Bytes32 `json:"topics"`
	Data    json.RawMessage  `json:"data"`
	Meta    LogMeta          `json:"meta"`
}

func ConvertFilteredEvent(e *logdb.Event) *FilteredEvent {
	fe := &FilteredEvent{
		Address: e.Address,
		Name:    e.Name,
		Method:  e.Method,
		Topics:  []altava.Bytes32{},
		Data:    e.Data,
		Meta: LogMeta{
			CallNumber:  e.CallNumber,
			Index:       e.Index,
			BlockNumber: e.BlockNumber,
			BlockTime:   e.BlockTime,
			Caller:      e.Caller,
		},
	}
	for _, topic := range e.Topics {
		if topic != nil {
			fe.Topics = append(fe.Topics, *topic)
		}
	}
	if len(fe.Data) == 0 {
		fe.Data = json.RawMessage("null")
	}
	return fe
}

type TransferCriteria struct {
	Caller    *altava.Address `json:"caller"`
	Token     *altava.Address `json:"token"`
	Sender    *altava.Address `json:"sender"`
	Recipient *altava.Address `json:"recipient"`
}

type FilteredTransfer struct {
	Token     altava.Address           `json:"token"`
	Sender    altava.Address           `json:"sender"`
	Recipient altava.Address           `json:"recipient"`
	Amount    *ethmath.HexOrDecimal256 `json:"amount"`
	NFT       bool                     `json:"nft"`
	Meta      LogMeta                  `json:"meta"`
}

func ConvertFilteredTransfer(t *logdb.Transfer) *FilteredTransfer {
	return &FilteredTransfer{
		Token:     t.Token,
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    Amount(t.Amount),
		NFT:       t.NFT,
		Meta: LogMeta{
			CallNumber:  t.CallNumber,
			Index:       t.Index,
			BlockNumber: t.BlockNumber,
			BlockTime:   t.BlockTime,
			Caller:      t.Caller,
		},
	}
}
