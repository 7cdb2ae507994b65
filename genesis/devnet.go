// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"crypto/ecdsa"
	"math/big"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/crypto"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
)

// DevAccount account for development.
type DevAccount struct {
	Address    altava.Address
	PrivateKey *ecdsa.PrivateKey
}

var devAccounts atomic.Value

// DevAccounts returns pre-alloced accounts for the dev network.
func DevAccounts() []DevAccount {
	if accs := devAccounts.Load(); accs != nil {
		return accs.([]DevAccount)
	}

	var accs []DevAccount
	privKeys := []string{
		"dce1443bd2ef0c2631adc1c67e5c93f13dc23a41c18b536effbbdcbcdb96fb65",
		"321d6443bc6177273b5abf54210fe806d451d6b7973bccc2384ef78bbcd0bf51",
		"2d7c882bad2a01105e36dda3646693bc1aaaa45b0ed63fb0ce23c060294f3af2",
		"593537225b037191d322c3b1df585fb1e5100811b71a6f7fc7e29cca1333483e",
		"ca7b25fc980c759df5f3ce17a3d881d6e19a38e651fc4315fc08917edab41058",
		"88d2d80b12b92feaa0da6d62309463d20408157723f2d7e799b6a74ead9a673b",
		"fbb9e7ba5fe9969a71c6599052237b91adeb1e5fc0c96727b66e56ff5d02f9d0",
		"547fb081e73dc2e22b4aae5c60e2970b008ac4fc3073aebc27d41ace9c4f53e9",
		"c8c53657e41a8d669349fc287f57457bd746cb1fcfc38cf94d235deb2cfca81b",
		"87e0eba9c86c494d98353800571089f316740b0cb84c9a7cdf2fe5c9997c7966",
	}
	for _, str := range privKeys {
		pk, err := crypto.HexToECDSA(str)
		if err != nil {
			panic(err)
		}
		addr := crypto.PubkeyToAddress(pk.PublicKey)
		accs = append(accs, DevAccount{altava.Address(addr), pk})
	}
	devAccounts.Store(accs)
	return accs
}

// Addresses of the dev network assets.
var (
	DevStakedToken = altava.BytesToAddress([]byte("TAVA"))
	DevRewardToken = altava.BytesToAddress([]byte("TNT"))
	DevSecondSkin  = altava.BytesToAddress([]byte("SecondSkin"))
	DevRewardNFT   = altava.BytesToAddress([]byte("RewardNFT"))
)

// DevLaunchTime 'Mon Jan 01 2024 00:00:00 GMT'.
const DevLaunchTime = uint64(1704067200)

// DevConfig returns the config of the dev network. The first dev account is the admin,
// every dev account holds 1,000,000 TAVA and TNT and three second skins.
func DevConfig() *Config {
	accs := DevAccounts()
	million := new(big.Int).Mul(big.NewInt(1_000_000), big.NewInt(1e18))

	var (
		balances []Balance
		mints    []Mint
	)
	for i, a := range accs {
		balances = append(balances, Balance{a.Address, NewAmount(million)})
		base := uint64(i*3) + 1
		mints = append(mints, Mint{a.Address, []uint64{base, base + 1, base + 2}})
	}

	return &Config{
		Name:        "devnet",
		LaunchTime:  DevLaunchTime,
		Admin:       accs[0].Address,
		Collateral:  DevSecondSkin,
		StakedToken: DevStakedToken,
		Tokens: []TokenConfig{
			{Address: DevStakedToken, Name: "ALTAVA", Symbol: "TAVA", Decimals: 18, Balances: balances},
			{Address: DevRewardToken, Name: "Test Reward", Symbol: "TNT", Decimals: 18, Balances: balances},
		},
		Collections: []CollectionConfig{
			{Address: DevSecondSkin, Name: "ALTAVA Second Skin", Symbol: "SKIN", Mints: mints},
			{Address: DevRewardNFT, Name: "Reward Pass", Symbol: "PASS"},
		},
	}
}

// NewDevnet create genesis for the dev network.
func NewDevnet() *Genesis {
	gen, err := New(DevConfig())
	if err != nil {
		panic(err)
	}
	return gen
}
