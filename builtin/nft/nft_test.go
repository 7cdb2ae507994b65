// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nft_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/nft"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/test/testenv"
)

var (
	owner = testenv.Addr("owner")
	alice = testenv.Addr("alice")
	bob   = testenv.Addr("bob")
)

func TestMintAndOwnerOf(t *testing.T) {
	env := testenv.New(t)
	skins := nft.New(env, testenv.Addr("skins"))
	require.NoError(t, skins.Init(owner, nft.Meta{Name: "SecondSkin", Symbol: "SKIN"}))

	_, err := skins.OwnerOf(1)
	assert.Equal(t, reverts.NotFound, reverts.KindOf(err))

	assert.Equal(t, reverts.NotOwner, reverts.KindOf(skins.Mint(alice, alice, 1)))
	require.NoError(t, skins.Mint(owner, alice, 1))
	require.NoError(t, skins.Mint(owner, alice, 2))
	assert.Equal(t, reverts.AlreadyExists, reverts.KindOf(skins.Mint(owner, bob, 1)))

	got, err := skins.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, alice, got)

	n, err := skins.BalanceOf(alice)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), n)

	supply, err := skins.TotalSupply()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), supply)

	_, err = skins.BalanceOf(altava.Address{})
	assert.Equal(t, reverts.ZeroAddress, reverts.KindOf(err))
}

func TestTransferFrom(t *testing.T) {
	env := testenv.New(t)
	skins := nft.New(env, testenv.Addr("skins"))
	require.NoError(t, skins.Init(owner, nft.Meta{Symbol: "SKIN"}))
	require.NoError(t, skins.Mint(owner, alice, 7))

	assert.Equal(t, reverts.NotOwner, reverts.KindOf(skins.TransferFrom(bob, bob, alice, 7)))
	assert.Equal(t, reverts.Unauthorized, reverts.KindOf(skins.TransferFrom(bob, alice, bob, 7)))
	assert.Equal(t, reverts.NotOwner, reverts.KindOf(skins.Approve(bob, bob, 7)))

	require.NoError(t, skins.Approve(alice, bob, 7))
	approved, err := skins.GetApproved(7)
	require.NoError(t, err)
	assert.Equal(t, bob, approved)

	require.NoError(t, skins.TransferFrom(bob, alice, bob, 7))

	got, err := skins.OwnerOf(7)
	require.NoError(t, err)
	assert.Equal(t, bob, got)

	approved, err = skins.GetApproved(7)
	require.NoError(t, err)
	assert.True(t, approved.IsZero(), "approval cleared on transfer")

	n, err := skins.BalanceOf(alice)
	require.NoError(t, err)
	assert.Zero(t, n)

	transfers := env.Transfers()
	require.Len(t, transfers, 2)
	last := transfers[1]
	assert.True(t, last.NFT)
	assert.Equal(t, alice, last.Sender)
	assert.Equal(t, bob, last.Recipient)
	assert.Equal(t, big.NewInt(7), last.Amount)
}
