// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"strconv"
	"strings"

	"github.com/0xdhu/ALTAVA-staking-contract/metrics"
)

var (
	metricRowsWritten    = metrics.LazyLoadCounterVec("logdb_rows_written_count", []string{"type"})
	metricCriteriaLength = metrics.LazyLoadHistogramVec("logdb_criteria_length_bucket", []string{"type"}, []int64{0, 1, 2, 5, 10, 25, 100})
	metricQueryParams    = metrics.LazyLoadCounterVec("logdb_query_parameters_count", []string{"type", "parameters"})
	metricQueryOrder     = metrics.LazyLoadCounterVec("logdb_query_order_count", []string{"type", "order"})
	metricLimitBucket    = metrics.LazyLoadHistogramVec("logdb_query_limit_bucket", []string{"type"}, []int64{
		0, 5, 10, 25, 50, 100, 250, 500, 1000,
	})
)

func metricsHandleWrite(events, transfers int) {
	if metrics.NoOp() {
		return
	}
	metricRowsWritten().AddWithLabel(int64(events), map[string]string{"type": "event"})
	metricRowsWritten().AddWithLabel(int64(transfers), map[string]string{"type": "transfer"})
}

func metricsHandleEventsFilter(filter *EventFilter) {
	if metrics.NoOp() {
		return
	}
	metricsHandleQuery("event", filter.Options, filter.Order, len(filter.CriteriaSet))

	for _, c := range filter.CriteriaSet {
		var used []string
		if c.Address != nil {
			used = append(used, "address")
		}
		for i, topic := range c.Topics {
			if topic != nil {
				used = append(used, "topic"+strconv.Itoa(i))
			}
		}
		metricsHandleParams("event", used)
	}
}

func metricsHandleTransfersFilter(filter *TransferFilter) {
	if metrics.NoOp() {
		return
	}
	metricsHandleQuery("transfer", filter.Options, filter.Order, len(filter.CriteriaSet))

	for _, c := range filter.CriteriaSet {
		var used []string
		for _, p := range []struct {
			name string
			set  bool
		}{
			{"caller", c.Caller != nil},
			{"token", c.Token != nil},
			{"sender", c.Sender != nil},
			{"recipient", c.Recipient != nil},
		} {
			if p.set {
				used = append(used, p.name)
			}
		}
		metricsHandleParams("transfer", used)
	}
}

func metricsHandleParams(kind string, used []string) {
	metricQueryParams().AddWithLabel(1, map[string]string{"type": kind, "parameters": strings.Join(used, ",")})
}

func metricsHandleQuery(kind string, options *Options, order Order, criteriaLen int) {
	metricCriteriaLength().ObserveWithLabels(int64(criteriaLen), map[string]string{"type": kind})

	dir := "asc"
	if order == DESC {
		dir = "desc"
	}
	metricQueryOrder().AddWithLabel(1, map[string]string{"type": kind, "order": dir})

	if options == nil {
		return
	}
	metricLimitBucket().ObserveWithLabels(int64(min(options.Limit, 1001)), map[string]string{"type": kind})
}
