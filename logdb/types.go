// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"encoding/json"
	"math/big"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// CallInfo identifies the committed call a batch of logs belongs to.
type CallInfo struct {
	Number      uint32 // sequential call number, starting at 1
	BlockNumber uint64
	BlockTime   uint64
	Method      string
	Caller      altava.Address
}

// Event represents xenv.Event that can be stored in db.
type Event struct {
	CallNumber  uint32
	Index       uint32
	BlockNumber uint64
	BlockTime   uint64
	Method      string
	Caller      altava.Address
	Address     altava.Address // always a contract address
	Name        string
	Topics      [5]*altava.Bytes32
	Data        json.RawMessage
}

func newEvent(info *CallInfo, index uint32, ev *xenv.Event) *Event {
	e := &Event{
		CallNumber:  info.Number,
		Index:       index,
		BlockNumber: info.BlockNumber,
		BlockTime:   info.BlockTime,
		Method:      info.Method,
		Caller:      info.Caller,
		Address:     ev.Address,
		Name:        ev.Name,
		Data:        ev.Data,
	}
	for i := 0; i < len(ev.Topics) && i < len(e.Topics); i++ {
		topic := ev.Topics[i]
		e.Topics[i] = &topic
	}
	return e
}

// Transfer represents xenv.Transfer that can be stored in db.
type Transfer struct {
	CallNumber  uint32
	Index       uint32
	BlockNumber uint64
	BlockTime   uint64
	Caller      altava.Address
	Token       altava.Address
	Sender      altava.Address
	Recipient   altava.Address
	Amount      *big.Int // token id if NFT
	NFT         bool
}

func newTransfer(info *CallInfo, index uint32, tr *xenv.Transfer) *Transfer {
	return &Transfer{
		CallNumber:  info.Number,
		Index:       index,
		BlockNumber: info.BlockNumber,
		BlockTime:   info.BlockTime,
		Caller:      info.Caller,
		Token:       tr.Token,
		Sender:      tr.Sender,
		Recipient:   tr.Recipient,
		Amount:      tr.Amount,
		NFT:         tr.NFT,
	}
}

type RangeType string

const (
	Block RangeType = "block"
	Time  RangeType = "time"
)

type Order string

const (
	ASC  Order = "asc"
	DESC Order = "desc"
)

type Range struct {
	Unit RangeType
	From uint64
	To   uint64
}

type Options struct {
	Offset uint64
	Limit  uint64
}

type EventCriteria struct {
	Address *altava.Address // always a contract address
	Topics  [5]*altava.Bytes32
}

// EventFilter filter
type EventFilter struct {
	CriteriaSet []*EventCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}

type TransferCriteria struct {
	Caller    *altava.Address // who made the call
	Token     *altava.Address
	Sender    *altava.Address // who transferred tokens
	Recipient *altava.Address // who received tokens
}

type TransferFilter struct {
	CallNumber  *uint32
	CriteriaSet []*TransferCriteria
	Range       *Range
	Options     *Options
	Order       Order // default asc
}
