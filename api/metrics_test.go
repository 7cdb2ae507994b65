// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/prometheus/common/expfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/subscriptions"
	"github.com/0xdhu/ALTAVA-staking-contract/api/tokens"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/metrics"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testchain"
)

func init() {
	metrics.InitializePrometheusMetrics()
}

func TestMetricsMiddleware(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	router := mux.NewRouter()
	tokens.New(chain.Runtime()).Mount(router, "/tokens")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	httpGet(t, ts.URL+"/tokens/"+genesis.DevStakedToken.String())
	_, code := httpGet(t, ts.URL+"/tokens/0x")
	assert.Equal(t, http.StatusBadRequest, code)
	_, code = httpGet(t, ts.URL+"/tokens/"+altava.BytesToAddress([]byte("none")).String())
	assert.Equal(t, http.StatusNotFound, code)

	body, _ := httpGet(t, ts.URL+"/metrics")
	parser := expfmt.TextParser{}
	families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
	assert.Nil(t, err)

	m := families["altava_chef_api_request_count"].GetMetric()
	require.Equal(t, 3, len(m), "should be 3 metric entries")

	for i, code := range []string{"200", "400", "404"} {
		assert.Equal(t, float64(1), m[i].GetCounter().GetValue())

		labels := m[i].GetLabel()
		require.Equal(t, 3, len(labels))
		assert.Equal(t, "code", labels[0].GetName())
		assert.Equal(t, code, labels[0].GetValue())
		assert.Equal(t, "method", labels[1].GetName())
		assert.Equal(t, "GET", labels[1].GetValue())
		assert.Equal(t, "name", labels[2].GetName())
		assert.Equal(t, "tokens_get_token", labels[2].GetValue())
	}
}

func TestWebsocketMetrics(t *testing.T) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)
	defer chain.Close()

	router := mux.NewRouter()
	sub := subscriptions.New(chain.Runtime(), []string{"*"}, 10)
	defer sub.Close()
	sub.Mount(router, "/subscriptions")
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	router.Use(metricsMiddleware)
	ts := httptest.NewServer(router)
	defer ts.Close()

	activeCount := func() []float64 {
		body, _ := httpGet(t, ts.URL+"/metrics")
		parser := expfmt.TextParser{}
		families, err := parser.TextToMetricFamilies(bytes.NewReader(body))
		require.NoError(t, err)
		var out []float64
		for _, m := range families["altava_chef_api_active_websocket_count"].GetMetric() {
			out = append(out, m.GetGauge().GetValue())
		}
		return out
	}

	u := url.URL{Scheme: "ws", Host: strings.TrimPrefix(ts.URL, "http://"), Path: "/subscriptions/call"}
	conn1, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn1.Close()
	assert.Equal(t, []float64{1}, activeCount())

	conn2, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn2.Close()
	assert.Equal(t, []float64{2}, activeCount())

	u.Path = "/subscriptions/transfer"
	conn3, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	require.NoError(t, err)
	defer conn3.Close()
	// sorted by subject label
	assert.Equal(t, []float64{2, 1}, activeCount())
}

func httpGet(t *testing.T, url string) ([]byte, int) {
	res, err := http.Get(url) //#nosec G107
	if err != nil {
		t.Fatal(err)
	}
	r, err := io.ReadAll(res.Body)
	res.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	return r, res.StatusCode
}
