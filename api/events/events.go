// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
)

type EventFilter struct {
	CriteriaSet []*utils.EventCriteria `json:"criteriaSet"`
	Range       *utils.Range           `json:"range"`
	Options     *utils.Options         `json:"options"`
	Order       logdb.Order            `json:"order"`
}

type Events struct {
	db    *logdb.LogDB
	limit uint64
}

func New(db *logdb.LogDB, logsLimit uint64) *Events {
	return &Events{
		db,
		logsLimit,
	}
}

func (e *Events) handleFilter(w http.ResponseWriter, req *http.Request) error {
	var filter EventFilter
	if err := utils.ParseJSON(req.Body, &filter); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	opts, err := utils.LogLimits(filter.Options, e.limit)
	if err != nil {
		return err
	}
	rng, err := utils.ConvertRange(filter.Range)
	if err != nil {
		return utils.BadRequest(err)
	}
	criteria := make([]*logdb.EventCriteria, 0, len(filter.CriteriaSet))
	// {} is accepted and matches everything, null is not
	for i, c := range filter.CriteriaSet {
		if c == nil {
			return utils.BadRequest(fmt.Errorf("criteriaSet[%d]: null not allowed", i))
		}
		criteria = append(criteria, c.Convert())
	}

	events, err := e.db.FilterEvents(req.Context(), &logdb.EventFilter{
		CriteriaSet: criteria,
		Range:       rng,
		Options:     opts,
		Order:       filter.Order,
	})
	if err != nil {
		return err
	}
	if err := utils.CheckLogCount(len(events), e.limit); err != nil {
		return err
	}
	out := make([]*utils.FilteredEvent, len(events))
	for i, ev := range events {
		out[i] = utils.ConvertFilteredEvent(ev)
	}
	return utils.WriteJSON(w, out)
}

func (e *Events) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").
		Methods(http.MethodPost).
		Name("logs_filter_event").
		HandlerFunc(utils.WrapHandlerFunc(e.handleFilter))
}
