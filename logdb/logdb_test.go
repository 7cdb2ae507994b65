// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb_test

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var (
	chef   = altava.BytesToAddress([]byte("chef"))
	other  = altava.BytesToAddress([]byte("other"))
	alice  = altava.BytesToAddress([]byte("alice"))
	bob    = altava.BytesToAddress([]byte("bob"))
	tava   = altava.BytesToAddress([]byte("TAVA"))
	stakeT = xenv.EventTopic("Stake")
)

func newEvent(addr altava.Address, name string, user altava.Address) *xenv.Event {
	return &xenv.Event{
		Address: addr,
		Name:    name,
		Topics:  []altava.Bytes32{xenv.EventTopic(name), xenv.AddressTopic(user)},
		Data:    []byte(`{"amount":"1"}`),
	}
}

// writeCalls writes n calls, one per block, each with a Stake event from chef and an Unlock event from other.
func writeCalls(t *testing.T, db *logdb.LogDB, n int) {
	for i := 1; i <= n; i++ {
		info := &logdb.CallInfo{
			Number:      uint32(i),
			BlockNumber: uint64(i * 10),
			BlockTime:   uint64(1000 + i*100),
			Method:      "stake",
			Caller:      alice,
		}
		events := []*xenv.Event{newEvent(chef, "Stake", alice), newEvent(other, "Unlock", bob)}
		transfers := []*xenv.Transfer{{Token: tava, Sender: alice, Recipient: chef, Amount: big.NewInt(int64(i))}}
		require.NoError(t, db.Write(info, events, transfers))
	}
}

func newMem(t *testing.T) *logdb.LogDB {
	db, err := logdb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestEvents(t *testing.T) {
	db := newMem(t)
	writeCalls(t, db, 10)
	ctx := context.Background()

	all, err := db.FilterEvents(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 20)
	assert.Equal(t, uint32(1), all[0].CallNumber)
	assert.Equal(t, uint32(0), all[0].Index)
	assert.Equal(t, uint32(1), all[1].Index)
	assert.Equal(t, "Stake", all[0].Name)
	assert.Equal(t, "stake", all[0].Method)
	assert.Equal(t, alice, all[0].Caller)
	assert.Equal(t, stakeT, *all[0].Topics[0])
	assert.Nil(t, all[0].Topics[2])
	assert.JSONEq(t, `{"amount":"1"}`, string(all[0].Data))

	byAddr, err := db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Address: &chef}},
	})
	require.NoError(t, err)
	assert.Len(t, byAddr, 10)

	bobTopic := xenv.AddressTopic(bob)
	either, err := db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{
			{Topics: [5]*altava.Bytes32{&stakeT}},
			{Topics: [5]*altava.Bytes32{nil, &bobTopic}},
		},
		Range: &logdb.Range{Unit: logdb.Block, From: 20, To: 40},
	})
	require.NoError(t, err)
	assert.Len(t, either, 6)

	byTime, err := db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Address: &chef}},
		Range:       &logdb.Range{Unit: logdb.Time, From: 1500},
	})
	require.NoError(t, err)
	assert.Len(t, byTime, 6)

	page, err := db.FilterEvents(ctx, &logdb.EventFilter{
		CriteriaSet: []*logdb.EventCriteria{{Address: &chef}},
		Order:       logdb.DESC,
		Options:     &logdb.Options{Offset: 1, Limit: 3},
	})
	require.NoError(t, err)
	require.Len(t, page, 3)
	assert.Equal(t, uint32(9), page[0].CallNumber)
	assert.Equal(t, uint32(7), page[2].CallNumber)
}

func TestTransfers(t *testing.T) {
	db := newMem(t)
	writeCalls(t, db, 5)
	ctx := context.Background()

	all, err := db.FilterTransfers(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, big.NewInt(3), all[2].Amount)
	assert.False(t, all[2].NFT)

	call := uint32(4)
	one, err := db.FilterTransfers(ctx, &logdb.TransferFilter{CallNumber: &call})
	require.NoError(t, err)
	require.Len(t, one, 1)
	assert.Equal(t, big.NewInt(4), one[0].Amount)

	none, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Sender: &bob}},
	})
	require.NoError(t, err)
	assert.Empty(t, none)

	toChef, err := db.FilterTransfers(ctx, &logdb.TransferFilter{
		CriteriaSet: []*logdb.TransferCriteria{{Token: &tava, Recipient: &chef}},
		Order:       logdb.DESC,
	})
	require.NoError(t, err)
	require.Len(t, toChef, 5)
	assert.Equal(t, uint32(5), toChef[0].CallNumber)
}

func TestNewestCallNumber(t *testing.T) {
	db := newMem(t)
	n, err := db.NewestCallNumber()
	require.NoError(t, err)
	assert.Zero(t, n)

	writeCalls(t, db, 3)
	require.NoError(t, db.Write(&logdb.CallInfo{Number: 7}, nil, []*xenv.Transfer{{Token: tava, Sender: bob, Recipient: alice, Amount: big.NewInt(1)}}))

	n, err = db.NewestCallNumber()
	require.NoError(t, err)
	assert.Equal(t, uint32(7), n)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs.db")
	db, err := logdb.New(path)
	require.NoError(t, err)
	writeCalls(t, db, 2)
	require.NoError(t, db.Close())

	db, err = logdb.New(path)
	require.NoError(t, err)
	defer db.Close()
	assert.Equal(t, path, db.Path())

	events, err := db.FilterEvents(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, events, 4)
}
