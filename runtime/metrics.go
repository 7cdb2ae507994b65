// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import "github.com/0xdhu/ALTAVA-staking-contract/metrics"

var (
	metricCallCount    = metrics.LazyLoadCounterVec("runtime_calls_count", []string{"method", "status"})
	metricCallDuration = metrics.LazyLoadHistogramVec("runtime_call_duration_ms", []string{"method"}, metrics.BucketCallMillis)
	metricRevertKinds  = metrics.LazyLoadCounterVec("runtime_reverts_count", []string{"kind"})
	metricCallNumber   = metrics.LazyLoadGauge("runtime_call_number")
	metricBlockNumber  = metrics.LazyLoadGauge("runtime_block_number")
)
