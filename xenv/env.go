// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xenv

import (
	"encoding/json"
	"math/big"

	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
)

// BlockContext block context.
type BlockContext struct {
	Number uint64
	Time   uint64
}

// Event is a log emitted by a built-in contract.
// Topics[0] is the hash of Name, the rest are indexed subjects.
type Event struct {
	Address altava.Address
	Name    string
	Topics  []altava.Bytes32
	Data    json.RawMessage
}

// Transfer records a token or NFT movement. For NFTs Amount is the token id.
type Transfer struct {
	Token     altava.Address
	Sender    altava.Address
	Recipient altava.Address
	Amount    *big.Int
	NFT       bool
}

// Environment is the context a built-in contract method runs in.
type Environment struct {
	state     *state.State
	blockCtx  *BlockContext
	caller    altava.Address
	events    []*Event
	transfers []*Transfer
}

// New create a new env.
func New(state *state.State, blockCtx *BlockContext, caller altava.Address) *Environment {
	return &Environment{
		state:    state,
		blockCtx: blockCtx,
		caller:   caller,
	}
}

func (env *Environment) State() *state.State         { return env.state }
func (env *Environment) BlockContext() *BlockContext { return env.blockCtx }
func (env *Environment) Caller() altava.Address      { return env.caller }
func (env *Environment) Events() []*Event            { return env.events }
func (env *Environment) Transfers() []*Transfer      { return env.transfers }

// EventTopic returns topic0 of the named event.
func EventTopic(name string) altava.Bytes32 {
	return altava.Keccak256([]byte(name))
}

// AddressTopic left pads addr into a topic.
func AddressTopic(addr altava.Address) altava.Bytes32 {
	return altava.BytesToBytes32(addr.Bytes())
}

// Log appends an event. data is JSON encoded.
func (env *Environment) Log(address altava.Address, name string, subjects []altava.Bytes32, data any) {
	encoded, err := json.Marshal(data)
	if err != nil {
		panic(errors.WithMessage(err, "encode native event"))
	}
	topics := make([]altava.Bytes32, 0, len(subjects)+1)
	topics = append(topics, EventTopic(name))
	topics = append(topics, subjects...)
	env.events = append(env.events, &Event{
		Address: address,
		Name:    name,
		Topics:  topics,
		Data:    encoded,
	})
}

// Transfer appends a transfer record.
func (env *Environment) Transfer(token, sender, recipient altava.Address, amount *big.Int, nft bool) {
	env.transfers = append(env.transfers, &Transfer{
		Token:     token,
		Sender:    sender,
		Recipient: recipient,
		Amount:    new(big.Int).Set(amount),
		NFT:       nft,
	})
}
