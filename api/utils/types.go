// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"encoding/json"
	"math/big"
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// Amount converts x into its JSON form. nil is treated as zero.
func Amount(x *big.Int) *math.HexOrDecimal256 {
	if x == nil {
		return (*math.HexOrDecimal256)(new(big.Int))
	}
	return (*math.HexOrDecimal256)(new(big.Int).Set(x))
}

// BigInt converts a JSON amount, returning nil if absent.
func BigInt(x *math.HexOrDecimal256) *big.Int {
	if x == nil {
		return nil
	}
	return new(big.Int).Set((*big.Int)(x))
}

type Event struct {
	Address altava.Address   `json:"address"`
	Name    string           `json:"name"`
	Topics  []altava.Bytes32 `json:"topics"`
	Data    json.RawMessage  `json:"data"`
}

type Transfer struct {
	Token     altava.Address        `json:"token"`
	Sender    altava.Address        `json:"sender"`
	Recipient altava.Address        `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
	NFT       bool                  `json:"nft"`
}

// Receipt is the response of a committed call.
type Receipt struct {
	CallNumber  uint32         `json:"callNumber"`
	BlockNumber uint64         `json:"blockNumber"`
	BlockTime   uint64         `json:"blockTime"`
	Method      string         `json:"method"`
	Caller      altava.Address `json:"caller"`
	Events      []*Event       `json:"events"`
	Transfers   []*Transfer    `json:"transfers"`
}

func ConvertEvent(e *xenv.Event) *Event {
	return &Event{
		Address: e.Address,
		Name:    e.Name,
		Topics:  e.Topics,
		Data:    e.Data,
	}
}

func ConvertTransfer(t *xenv.Transfer) *Transfer {
	return &Transfer{
		Token:     t.Token,
		Sender:    t.Sender,
		Recipient: t.Recipient,
		Amount:    Amount(t.Amount),
		NFT:       t.NFT,
	}
}

func ConvertReceipt(r *runtime.Receipt) *Receipt {
	out := &Receipt{
		CallNumber:  r.CallNumber,
		BlockNumber: r.BlockNumber,
		BlockTime:   r.BlockTime,
		Method:      r.Method,
		Caller:      r.Caller,
		Events:      make([]*Event, 0, len(r.Events)),
		Transfers:   make([]*Transfer, 0, len(r.Transfers)),
	}
	for _, e := range r.Events {
		out.Events = append(out.Events, ConvertEvent(e))
	}
	for _, t := range r.Transfers {
		out.Transfers = append(out.Transfers, ConvertTransfer(t))
	}
	return out
}

// Execute runs a mutating call as the request caller and responds with its receipt.
func Execute(w http.ResponseWriter, rt *runtime.Runtime, method string, caller altava.Address, fn func(env *xenv.Environment) error) error {
	receipt, err := rt.Execute(method, caller, fn)
	if err != nil {
		return err
	}
	return WriteJSON(w, ConvertReceipt(receipt))
}
