// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
)

type TransferFilter struct {
	CallNumber  *uint32                   `json:"callNumber"`
	CriteriaSet []*utils.TransferCriteria `json:"criteriaSet"`
	Range       *utils.Range              `json:"range"`
	Options     *utils.Options            `json:"options"`
	Order       logdb.Order               `json:"order"`
}

type Transfers struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Transfers {
	return &Transfers{
		db,
		logsLimit,
	}
}

func (t *Transfers) handleFilterTransferLogs(w http.ResponseWriter, req *http.Request) error {
	var filter TransferFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	opts, err := utils.LogLimits(filter.Options, t.limit)
	if err != nil {
		return err
	}
	rng, err := utils.ConvertRange(filter.Range)
	if err != nil {
		return utils.BadRequest(err)
	}
	criteria := make([]*logdb.TransferCriteria, 0, len(filter.CriteriaSet))
	for i, c := range filter.CriteriaSet {
		if c == nil {
			return utils.BadRequest(fmt.Errorf("criteriaSet[%d]: null not allowed", i))
		}
		criteria = append(criteria, &logdb.TransferCriteria{
			Caller:    c.Caller,
			Token:     c.Token,
			Sender:    c.Sender,
			Recipient: c.Recipient,
		})
	}

	transfers, err := t.db.FilterTransfers(req.Context(), &logdb.TransferFilter{
		CallNumber:  filter.CallNumber,
		CriteriaSet: criteria,
		Range:       rng,
		Options:     opts,
		Order:       filter.Order,
	})
	if err != nil {
		return err
	}
	if err := utils.CheckLogCount(len(transfers), t.limit); err != nil {
		return err
	}
	out := make([]*utils.FilteredTransfer, len(transfers))
	for i, tr := range transfers {
		out[i] = utils.ConvertFilteredTransfer(tr)
	}
	return utils.WriteJSON(w, out)
}

func (t *Transfers) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("logs_filter_transfer").
		HandlerFunc(utils.WrapHandlerFunc(t.handleFilterTransferLogs))
}
