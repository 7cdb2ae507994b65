// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/api"
	"github.com/0xdhu/ALTAVA-staking-contract/api/events"
	"github.com/0xdhu/ALTAVA-staking-contract/api/smartchefs"
	"github.com/0xdhu/ALTAVA-staking-contract/api/tokens"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testchain"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

type client struct {
	t  *testing.T
	ts *httptest.Server
}

func newClient(t *testing.T) (*client, *testchain.Chain) {
	chain, err := testchain.NewDefault()
	require.NoError(t, err)

	handler, closeSubs := api.New(chain.Runtime(), api.Options{
		AllowedOrigins:   "*",
		LogsLimit:        100,
		MessageCacheSize: 10,
	})
	ts := httptest.NewServer(handler)
	t.Cleanup(func() {
		closeSubs()
		ts.Close()
		chain.Close()
	})
	return &client{t, ts}, chain
}

func (c *client) do(method, path string, caller *altava.Address, body any) (int, []byte, http.Header) {
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, c.ts.URL+path, r)
	require.NoError(c.t, err)
	if caller != nil {
		req.Header.Set(utils.CallerHeader, caller.String())
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer res.Body.Close()
	out, err := io.ReadAll(res.Body)
	require.NoError(c.t, err)
	return res.StatusCode, out, res.Header
}

func (c *client) ok(method, path string, caller *altava.Address, body any, out any) {
	status, data, _ := c.do(method, path, caller, body)
	require.Equal(c.t, http.StatusOK, status, string(data))
	if out != nil {
		require.NoError(c.t, json.Unmarshal(data, out))
	}
}

func (c *client) revert(method, path string, caller *altava.Address, body any) *utils.RevertBody {
	status, data, _ := c.do(method, path, caller, body)
	require.Equal(c.t, http.StatusBadRequest, status, string(data))
	var rb utils.RevertBody
	require.NoError(c.t, json.Unmarshal(data, &rb))
	return &rb
}

func ether(n int64) string {
	return new(big.Int).Mul(big.NewInt(n), big.NewInt(1e18)).String()
}

func TestSmartChefFlow(t *testing.T) {
	c, chain := newClient(t)
	admin := chain.Admin()
	alice := chain.Accounts()[1].Address

	deploy := utils.M{
		"id":             "pool-1",
		"rewardLabel":    "TNT",
		"stakedToken":    genesis.DevStakedToken,
		"rewardToken":    genesis.DevRewardToken,
		"rewardPerBlock": ether(1),
		"startBlock":     1,
		"endBlock":       1000000,
	}
	rb := c.revert(http.MethodPost, "/smartchefs", &alice, deploy)
	assert.Equal(t, reverts.NotOwner, rb.Kind)

	var deployed smartchefs.Deployed
	c.ok(http.MethodPost, "/smartchefs", &admin, deploy, &deployed)
	chef := deployed.Address
	require.False(t, chef.IsZero())
	assert.Equal(t, "masterchef.deploy", deployed.Method)

	var chefs []altava.Address
	c.ok(http.MethodGet, "/smartchefs", nil, nil, &chefs)
	assert.Equal(t, []altava.Address{chef}, chefs)

	var info smartchefs.Chef
	c.ok(http.MethodGet, "/smartchefs/"+chef.String(), nil, nil, &info)
	assert.Equal(t, "pool-1", info.ID)
	assert.Equal(t, admin, info.Owner)
	assert.Equal(t, uint64(1000000), info.Pool.EndBlock)

	c.ok(http.MethodPost, "/tokens/"+genesis.DevRewardToken.String()+"/transfer", &admin,
		utils.M{"to": chef, "amount": ether(100000)}, nil)
	c.ok(http.MethodPost, "/tokens/"+genesis.DevStakedToken.String()+"/approve", &alice,
		utils.M{"spender": chef, "amount": ether(100)}, nil)

	rb = c.revert(http.MethodPost, "/smartchefs/"+chef.String()+"/stake", &alice,
		utils.M{"amount": ether(100), "duration": 60})
	assert.Equal(t, reverts.InvalidPeriod, rb.Kind)

	var receipt utils.Receipt
	c.ok(http.MethodPost, "/smartchefs/"+chef.String()+"/stake", &alice,
		utils.M{"amount": ether(100), "duration": altava.MinLockDuration}, &receipt)
	assert.Equal(t, "smartchef.stake", receipt.Method)
	assert.Equal(t, alice, receipt.Caller)
	require.Len(t, receipt.Transfers, 1)
	assert.Equal(t, chef, receipt.Transfers[0].Recipient)

	chain.AdvanceBlocks(10)

	var user smartchefs.User
	c.ok(http.MethodGet, "/smartchefs/"+chef.String()+"/users/"+alice.String(), nil, nil, &user)
	assert.True(t, user.Locked)
	assert.Equal(t, ether(100), utils.BigInt(user.LockedAmount).String())
	assert.Positive(t, utils.BigInt(user.Pending).Sign())

	rb = c.revert(http.MethodPost, "/smartchefs/"+chef.String()+"/unlock", &alice, utils.M{"receiver": ""})
	assert.Equal(t, reverts.StillLocked, rb.Kind)

	chain.AdvanceTime(time.Duration(altava.MinLockDuration) * time.Second)
	c.ok(http.MethodPost, "/smartchefs/"+chef.String()+"/unlock", &alice, utils.M{"receiver": ""}, nil)

	var bal tokens.Balance
	c.ok(http.MethodGet, "/tokens/"+genesis.DevRewardToken.String()+"/balances/"+alice.String(), nil, nil, &bal)
	initial, _ := new(big.Int).SetString(ether(1000000), 10)
	assert.Positive(t, utils.BigInt(bal.Balance).Cmp(initial))

	var evs []*utils.FilteredEvent
	c.ok(http.MethodPost, "/logs/event", nil, &events.EventFilter{
		CriteriaSet: []*utils.EventCriteria{{Address: &chef}},
	}, &evs)
	var names []string
	for _, ev := range evs {
		names = append(names, ev.Name)
	}
	assert.Contains(t, names, "Stake")
	assert.Contains(t, names, "Unlock")
}

func TestRequestErrors(t *testing.T) {
	c, chain := newClient(t)
	alice := chain.Accounts()[1].Address

	status, _, header := c.do(http.MethodGet, "/node/status", nil, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, chain.Genesis().ID().String(), header.Get(api.GenesisIDHeader))

	status, _, _ = c.do(http.MethodPost, "/tokens/"+genesis.DevStakedToken.String()+"/transfer", nil,
		utils.M{"to": alice, "amount": "1"})
	assert.Equal(t, http.StatusBadRequest, status, "missing caller")

	status, _, _ = c.do(http.MethodPost, "/tokens/"+genesis.DevStakedToken.String()+"/transfer", &alice,
		utils.M{"to": alice})
	assert.Equal(t, http.StatusBadRequest, status, "missing amount")

	status, _, _ = c.do(http.MethodGet, "/tokens/0xzz", nil, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = c.do(http.MethodGet, "/tokens/"+altava.BytesToAddress([]byte("none")).String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	rb := c.revert(http.MethodGet, "/smartchefs/"+altava.BytesToAddress([]byte("none")).String(), nil, nil)
	assert.Equal(t, reverts.NotFound, rb.Kind)

	status, _, _ = c.do(http.MethodGet, "/nowhere", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestBoostersAndCollateral(t *testing.T) {
	c, chain := newClient(t)
	admin := chain.Admin()
	alice := chain.Accounts()[1].Address

	chef, err := chain.DeployNFTChef("nft-pool", genesis.DevRewardNFT, []uint64{100, 200})
	require.NoError(t, err)

	c.ok(http.MethodPut, "/boosters/"+chef.String(), &admin,
		utils.M{"pairs": []utils.M{{"key": 1, "value": 150}, {"key": 3, "value": 350}}}, nil)
	var value struct {
		Count uint64 `json:"count"`
		Value uint64 `json:"value"`
	}
	c.ok(http.MethodGet, "/boosters/"+chef.String()+"/value?count=3", nil, nil, &value)
	assert.Equal(t, uint64(350), value.Value)

	rb := c.revert(http.MethodPost, "/boosters/"+chef.String()+"/pairs", &alice, utils.M{"key": 2, "value": 250})
	assert.Equal(t, reverts.NotOwner, rb.Kind)

	// account 1 owns collection ids 4, 5 and 6
	var receipt utils.Receipt
	c.ok(http.MethodPost, "/nftchefs/"+chef.String()+"/collateral/stake", &alice, utils.M{"ids": []uint64{4, 5}}, &receipt)

	var staked struct {
		IDs   []uint64 `json:"ids"`
		Count uint64   `json:"count"`
	}
	c.ok(http.MethodGet, "/collateral/users/"+alice.String(), nil, nil, &staked)
	assert.ElementsMatch(t, []uint64{4, 5}, staked.IDs)
	assert.Equal(t, uint64(2), staked.Count)

	var byReward map[string]altava.Address
	c.ok(http.MethodGet, "/nftchefs/by-reward/"+genesis.DevRewardNFT.String(), nil, nil, &byReward)
	assert.Equal(t, chef, byReward["address"])

	var deployed []*utils.FilteredEvent
	c.ok(http.MethodPost, "/logs/event", nil, utils.M{
		"criteriaSet": []utils.M{{"topic0": xenv.EventTopic("ChefDeployed")}},
	}, &deployed)
	assert.Len(t, deployed, 1)
}
