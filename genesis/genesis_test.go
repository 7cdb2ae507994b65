// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/0xdhu/ALTAVA-staking-contract/builtin"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/token"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/lvldb"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

func buildAndCommit(t *testing.T, gen *genesis.Genesis) (*state.Stater, *genesis.Output) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	stater, err := state.NewStater(db, 1024)
	require.NoError(t, err)

	out, err := gen.Build(stater)
	require.NoError(t, err)

	batch := db.NewBatch()
	require.NoError(t, out.Stage.Commit(batch))
	require.NoError(t, batch.Write())
	out.Stage.Apply()
	return stater, out
}

func TestDevGenesis(t *testing.T) {
	gen := genesis.NewDevnet()
	stater, out := buildAndCommit(t, gen)

	assert.Equal(t, "devnet", gen.Name())
	assert.Equal(t, genesis.DevLaunchTime, gen.LaunchTime())
	assert.False(t, gen.ID().IsZero())
	assert.NotEmpty(t, out.Events)
	assert.NotEmpty(t, out.Transfers)

	env := xenv.New(stater.NewState(), &xenv.BlockContext{Time: genesis.DevLaunchTime}, genesis.DevAccounts()[0].Address)
	admin := genesis.DevAccounts()[0].Address
	user := genesis.DevAccounts()[3].Address

	bal, err := token.New(env, genesis.DevStakedToken).BalanceOf(user)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18)), bal)

	owner, err := nft.New(env, genesis.DevSecondSkin).OwnerOf(10)
	require.NoError(t, err)
	assert.Equal(t, user, owner)

	registry := builtin.NFTStaking.WithEnv(env)
	coll, err := registry.Collection()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevSecondSkin, coll)
	master, err := registry.MasterChef()
	require.NoError(t, err)
	assert.Equal(t, builtin.MasterChef.Address, master)
	nftMaster, err := registry.NFTMasterChef()
	require.NoError(t, err)
	assert.Equal(t, builtin.NFTMasterChef.Address, nftMaster)

	staked, err := builtin.NFTMasterChef.WithEnv(env).StakedToken()
	require.NoError(t, err)
	assert.Equal(t, genesis.DevStakedToken, staked)

	boosterOwner, err := builtin.BoosterController.WithEnv(env).Owner()
	require.NoError(t, err)
	assert.Equal(t, admin, boosterOwner)
}

func TestGenesisIDIsStable(t *testing.T) {
	a := genesis.NewDevnet()
	b := genesis.NewDevnet()
	assert.Equal(t, a.ID(), b.ID())

	cfg := genesis.DevConfig()
	cfg.LaunchTime++
	c, err := genesis.New(cfg)
	require.NoError(t, err)
	assert.NotEqual(t, a.ID(), c.ID())
}

func TestConfigValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*genesis.Config)
		errMsg string
	}{
		{"no name", func(c *genesis.Config) { c.Name = "" }, "name must be set"},
		{"no admin", func(c *genesis.Config) { c.Admin = [20]byte{} }, "admin must be set"},
		{"unknown collateral", func(c *genesis.Config) { c.Collateral = genesis.DevStakedToken }, "is not a configured collection"},
		{"unknown staked token", func(c *genesis.Config) { c.StakedToken = genesis.DevSecondSkin }, "is not a configured token"},
		{"duplicated token", func(c *genesis.Config) { c.Tokens[1].Address = c.Tokens[0].Address }, "address missing or duplicated"},
		{"collection reuses token address", func(c *genesis.Config) { c.Collections[0].Address = c.Tokens[0].Address }, "address missing or duplicated"},
		{"collateral not configured", func(c *genesis.Config) { c.Collateral = c.Admin }, "is not a configured collection"},
		{"zero balance", func(c *genesis.Config) {
			c.Tokens[0].Balances = []genesis.Balance{{Address: c.Admin, Amount: genesis.NewAmount(big.NewInt(0))}}
		}, "balance must be a non-zero integer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := genesis.DevConfig()
			tt.mutate(cfg)
			_, err := genesis.New(cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

const customGenesis = `
name: custom
launchTime: 1700000000
admin: "0x000000000000000000000000000000000000000a"
boosterOwner: "0x000000000000000000000000000000000000000b"
collateral: "0x00000000000000000000000000000000000000c0"
stakedToken: "0x00000000000000000000000000000000000000d0"
tokens:
  - address: "0x00000000000000000000000000000000000000d0"
    name: ALTAVA
    symbol: TAVA
    decimals: 18
    balances:
      - address: "0x0000000000000000000000000000000000000001"
        amount: "5000000000000000000000"
collections:
  - address: "0x00000000000000000000000000000000000000c0"
    name: Second Skin
    symbol: SKIN
    mints:
      - owner: "0x0000000000000000000000000000000000000001"
        ids: [1, 2]
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(customGenesis), 0o600))

	gen, err := genesis.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custom", gen.Name())
	assert.Equal(t, uint64(1700000000), gen.LaunchTime())

	cfg := gen.Config()
	require.Len(t, cfg.Tokens, 1)
	want, _ := new(big.Int).SetString("5000000000000000000000", 10)
	assert.Equal(t, want, cfg.Tokens[0].Balances[0].Amount.Int)
	require.NotNil(t, cfg.BoosterOwner)

	stater, _ := buildAndCommit(t, gen)
	env := xenv.New(stater.NewState(), &xenv.BlockContext{}, cfg.Admin)
	owner, err := builtin.BoosterController.WithEnv(env).Owner()
	require.NoError(t, err)
	assert.Equal(t, *cfg.BoosterOwner, owner)
}

func TestLoadInvalidAmount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "genesis.yaml")
	bad := "name: x\ntokens:\n  - balances:\n      - amount: \"12abc\"\n"
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	_, err := genesis.Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid amount")
}

func TestDevConfigYAMLRoundTrip(t *testing.T) {
	data, err := yaml.Marshal(genesis.DevConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "devnet.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	gen, err := genesis.Load(path)
	require.NoError(t, err)
	assert.Equal(t, genesis.NewDevnet().ID(), gen.ID())
	assert.Equal(t, genesis.DevAccounts()[0].Address, gen.Config().Admin)
}
