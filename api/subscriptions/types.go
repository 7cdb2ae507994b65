// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type EventFilter struct {
	Address *altava.Address
	Topics  [5]*altava.Bytes32
}

func (f *EventFilter) match(ev *xenv.Event) bool {
	if f.Address != nil && *f.Address != ev.Address {
		return false
	}
	for i, topic := range f.Topics {
		if topic == nil {
			continue
		}
		if i >= len(ev.Topics) || ev.Topics[i] != *topic {
			return false
		}
	}
	return true
}

type TransferFilter struct {
	Caller    *altava.Address
	Token     *altava.Address
	Sender    *altava.Address
	Recipient *altava.Address
}

func (f *TransferFilter) match(caller altava.Address, tr *xenv.Transfer) bool {
	if f.Caller != nil && *f.Caller != caller {
		return false
	}
	if f.Token != nil && *f.Token != tr.Token {
		return false
	}
	if f.Sender != nil && *f.Sender != tr.Sender {
		return false
	}
	if f.Recipient != nil && *f.Recipient != tr.Recipient {
		return false
	}
	return true
}

func meta(r *runtime.Receipt, index int) utils.LogMeta {
	return utils.LogMeta{
		CallNumber:  r.CallNumber,
		Index:       uint32(index),
		BlockNumber: r.BlockNumber,
		BlockTime:   r.BlockTime,
		Caller:      r.Caller,
	}
}

// EventMessages returns the events of r matching the filter.
func (f *EventFilter) EventMessages(r *runtime.Receipt) []*utils.FilteredEvent {
	var out []*utils.FilteredEvent
	for i, ev := range r.Events {
		if !f.match(ev) {
			continue
		}
		msg := &utils.FilteredEvent{
			Address: ev.Address,
			Name:    ev.Name,
			Method:  r.Method,
			Topics:  append([]altava.Bytes32{}, ev.Topics...),
			Data:    ev.Data,
			Meta:    meta(r, i),
		}
		out = append(out, msg)
	}
	return out
}

// TransferMessages returns the transfers of r matching the filter.
func (f *TransferFilter) TransferMessages(r *runtime.Receipt) []*utils.FilteredTransfer {
	var out []*utils.FilteredTransfer
	for i, tr := range r.Transfers {
		if !f.match(r.Caller, tr) {
			continue
		}
		out = append(out, &utils.FilteredTransfer{
			Token:     tr.Token,
			Sender:    tr.Sender,
			Recipient: tr.Recipient,
			Amount:    utils.Amount(tr.Amount),
			NFT:       tr.NFT,
			Meta:      meta(r, i),
		})
	}
	return out
}

func parseAddress(req *http.Request, name string) (*altava.Address, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	addr, err := altava.ParseAddress(s)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	return &addr, nil
}

func parseBytes32(req *http.Request, name string) (*altava.Bytes32, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	b, err := altava.ParseBytes32(s)
	if err != nil {
		return nil, utils.BadRequest(errors.WithMessage(err, name))
	}
	return &b, nil
}

func parseEventFilter(req *http.Request) (*EventFilter, error) {
	addr, err := parseAddress(req, "addr")
	if err != nil {
		return nil, err
	}
	f := &EventFilter{Address: addr}
	for i, name := range []string{"t0", "t1", "t2", "t3", "t4"} {
		if f.Topics[i], err = parseBytes32(req, name); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func parseTransferFilter(req *http.Request) (*TransferFilter, error) {
	var (
		f   TransferFilter
		err error
	)
	if f.Caller, err = parseAddress(req, "caller"); err != nil {
		return nil, err
	}
	if f.Token, err = parseAddress(req, "token"); err != nil {
		return nil, err
	}
	if f.Sender, err = parseAddress(req, "sender"); err != nil {
		return nil, err
	}
	if f.Recipient, err = parseAddress(req, "recipient"); err != nil {
		return nil, err
	}
	return &f, nil
}
