// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package node

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
)

type Status struct {
	GenesisID     altava.Bytes32 `json:"genesisId"`
	Name          string         `json:"name"`
	LaunchTime    uint64         `json:"launchTime"`
	BlockInterval uint64         `json:"blockInterval"`
	CallNumber    uint32         `json:"callNumber"`
	BlockNumber   uint64         `json:"blockNumber"`
	BlockTime     uint64         `json:"blockTime"`
}

type Node struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Node {
	return &Node{rt}
}

func (n *Node) Status() *Status {
	gen := n.rt.Genesis()
	now := n.rt.Clock().Now()
	return &Status{
		GenesisID:     gen.ID(),
		Name:          gen.Name(),
		LaunchTime:    gen.LaunchTime(),
		BlockInterval: n.rt.Clock().Interval(),
		CallNumber:    n.rt.CallNumber(),
		BlockNumber:   now.Number,
		BlockTime:     now.Time,
	}
}

func (n *Node) handleStatus(w http.ResponseWriter, _ *http.Request) error {
	return utils.WriteJSON(w, n.Status())
}

func (n *Node) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("node_get_status").
		HandlerFunc(utils.WrapHandlerFunc(n.handleStatus))
}
