// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package transfers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api/transfers"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

const defaultLogLimit uint64 = 10

var (
	tava  = altava.BytesToAddress([]byte("TAVA"))
	skin  = altava.BytesToAddress([]byte("SecondSkin"))
	alice = altava.BytesToAddress([]byte("alice"))
	chef  = altava.BytesToAddress([]byte("chef"))
)

func initTransferServer(t *testing.T) *httptest.Server {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for i := 1; i <= 4; i++ {
		require.NoError(t, db.Write(&logdb.CallInfo{
			Number:      uint32(i),
			BlockNumber: uint64(i),
			BlockTime:   uint64(1000 + i),
			Method:      "smartchef.stake",
			Caller:      alice,
		}, nil, []*xenv.Transfer{
			{Token: tava, Sender: alice, Recipient: chef, Amount: big.NewInt(int64(i) * 100)},
			{Token: skin, Sender: alice, Recipient: chef, Amount: big.NewInt(int64(i)), NFT: true},
		}))
	}

	router := mux.NewRouter()
	transfers.New(db, defaultLogLimit).Mount(router, "/logs/transfer")
	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)
	return ts
}

func filter(t *testing.T, ts *httptest.Server, f any) []*utils.FilteredTransfer {
	data, err := json.Marshal(f)
	require.NoError(t, err)
	res, err := http.Post(ts.URL+"/logs/transfer", "application/json", bytes.NewReader(data)) //#nosec G107
	require.NoError(t, err)
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode, string(body))

	var out []*utils.FilteredTransfer
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestFilterTransfers(t *testing.T) {
	ts := initTransferServer(t)

	all := filter(t, ts, utils.M{})
	require.Len(t, all, 8)
	assert.Equal(t, tava, all[0].Token)
	assert.Equal(t, big.NewInt(100), utils.BigInt(all[0].Amount))
	assert.False(t, all[0].NFT)
	assert.True(t, all[1].NFT)
	assert.Equal(t, uint32(1), all[1].Meta.Index)

	nfts := filter(t, ts, &transfers.TransferFilter{
		CriteriaSet: []*utils.TransferCriteria{{Token: &skin}},
	})
	require.Len(t, nfts, 4)
	for _, tr := range nfts {
		assert.True(t, tr.NFT)
		assert.Equal(t, chef, tr.Recipient)
	}

	call := uint32(3)
	one := filter(t, ts, &transfers.TransferFilter{CallNumber: &call})
	require.Len(t, one, 2)
	assert.Equal(t, uint32(3), one[0].Meta.CallNumber)
	assert.Equal(t, uint32(3), one[1].Meta.CallNumber)

	nobody := altava.BytesToAddress([]byte("nobody"))
	assert.Empty(t, filter(t, ts, &transfers.TransferFilter{
		CriteriaSet: []*utils.TransferCriteria{{Sender: &nobody}},
	}))
}

func TestFilterTransfersByTime(t *testing.T) {
	ts := initTransferServer(t)

	from := uint64(1003)
	out := filter(t, ts, &transfers.TransferFilter{
		Range: &utils.Range{Unit: logdb.Time, From: &from},
		Order: logdb.DESC,
	})
	require.Len(t, out, 4)
	assert.Equal(t, uint64(1004), out[0].Meta.BlockTime)
	assert.Equal(t, uint64(1003), out[3].Meta.BlockTime)
}
