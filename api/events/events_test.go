// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package events_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/events"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

const defaultLogLimit uint64 = 10

var (
	chef  = altava.BytesToAddress([]byte("chef"))
	alice = altava.BytesToAddress([]byte("alice"))
)

func initEventServer(t *testing.T, n int) *httptest.Server {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for i := 1; i <= n; i++ {
		ev := &xenv.Event{
			Address: chef,
			Name:    "Stake",
			Topics:  []altava.Bytes32{xenv.EventTopic("Stake"), xenv.AddressTopic(alice)},
			Data:    json.RawMessage(`{"amount":"1"}`),
		}
		require.NoError(t, db.Write(&logdb.CallInfo{
			Number:      uint32(i),
			BlockNumber: uint64(i),
			BlockTime:   uint64(1000 + i),
			Method:      "smartchef.stake",
			Caller:      alice,
		}, []*xenv.Event{ev}, nil))
	}

	router := mux.NewRouter()
	events.New(db, defaultLogLimit).Mount(router, "/logs/event")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func post(t *testing.T, url string, body any) (int, []byte) {
	data, err := json.Marshal(body)
	require.NoError(t, err)
	res, err := http.Post(url, "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return res.StatusCode, out
}

func TestEmptyFilter(t *testing.T) {
	ts := initEventServer(t, 5)

	status, body := post(t, ts.URL+"/logs/event", utils.M{})
	require.Equal(t, http.StatusOK, status, string(body))

	var evs []*utils.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &evs))
	require.Len(t, evs, 5)
	assert.Equal(t, chef, evs[0].Address)
	assert.Equal(t, "Stake", evs[0].Name)
	assert.Equal(t, "smartchef.stake", evs[0].Method)
	assert.Equal(t, uint32(1), evs[0].Meta.CallNumber)
	assert.Equal(t, alice, evs[0].Meta.Caller)
	assert.Len(t, evs[0].Topics, 2)
	assert.JSONEq(t, `{"amount":"1"}`, string(evs[0].Data))
}

func TestFilterCriteriaAndRange(t *testing.T) {
	ts := initEventServer(t, 5)

	from, to := uint64(2), uint64(4)
	topic := xenv.AddressTopic(alice)
	status, body := post(t, ts.URL+"/logs/event", &events.EventFilter{
		CriteriaSet: []*utils.EventCriteria{{Address: &chef, Topic1: &topic}},
		Range:       &utils.Range{Unit: logdb.Block, From: &from, To: &to},
		Order:       logdb.DESC,
	})
	require.Equal(t, http.StatusOK, status, string(body))

	var evs []*utils.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &evs))
	require.Len(t, evs, 3)
	assert.Equal(t, uint64(4), evs[0].Meta.BlockNumber)
	assert.Equal(t, uint64(2), evs[2].Meta.BlockNumber)

	other := altava.BytesToAddress([]byte("other"))
	status, body = post(t, ts.URL+"/logs/event", &events.EventFilter{
		CriteriaSet: []*utils.EventCriteria{{Address: &other}},
	})
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(body))
}

func TestLimits(t *testing.T) {
	ts := initEventServer(t, int(defaultLogLimit)+1)

	status, _ := post(t, ts.URL+"/logs/event", utils.M{})
	assert.Equal(t, http.StatusForbidden, status, "result larger than the limit")

	status, _ = post(t, ts.URL+"/logs/event", &events.EventFilter{Options: &utils.Options{Limit: defaultLogLimit + 1}})
	assert.Equal(t, http.StatusForbidden, status, "limit option larger than the limit")

	status, body := post(t, ts.URL+"/logs/event", &events.EventFilter{Options: &utils.Options{Offset: 10, Limit: 5}})
	require.Equal(t, http.StatusOK, status)
	var evs []*utils.FilteredEvent
	require.NoError(t, json.Unmarshal(body, &evs))
	assert.Len(t, evs, 1)
}

func TestBadRequests(t *testing.T) {
	ts := initEventServer(t, 1)

	from, to := uint64(5), uint64(1)
	for name, body := range map[string]any{
		"null criteria":  utils.M{"criteriaSet": []any{nil}},
		"inverted range": &events.EventFilter{Range: &utils.Range{From: &from, To: &to}},
		"unknown unit":   utils.M{"range": utils.M{"unit": "epoch"}},
		"unknown field":  utils.M{"foo": 1},
	} {
		t.Run(name, func(t *testing.T) {
			status, _ := post(t, ts.URL+"/logs/event", body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}
