// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// Builder helper to build genesis state.
type Builder struct {
	timestamp uint64
	calls     []call
}

type call struct {
	name string
	fn   func(env *xenv.Environment) error
}

// Output is the result of building genesis state.
type Output struct {
	Stage     *state.Stage
	Events    []*xenv.Event
	Transfers []*xenv.Transfer
}

// Timestamp set timestamp.
func (b *Builder) Timestamp(t uint64) *Builder {
	b.timestamp = t
	return b
}

// Call add a contract call. Calls run in order against block 0.
func (b *Builder) Call(name string, fn func(env *xenv.Environment) error) *Builder {
	b.calls = append(b.calls, call{name, fn})
	return b
}

// Build runs every call over a fresh state of stater.
func (b *Builder) Build(stater *state.Stater) (*Output, error) {
	st := stater.NewState()
	env := xenv.New(st, &xenv.BlockContext{Time: b.timestamp}, altava.Address{})

	for _, c := range b.calls {
		if err := c.fn(env); err != nil {
			return nil, errors.Wrap(err, c.name)
		}
	}
	return &Output{
		Stage:     st.Stage(),
		Events:    env.Events(),
		Transfers: env.Transfers(),
	}, nil
}
