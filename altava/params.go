// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package altava

import (
	"math/big"
	"time"
)

// Constants shared by the chef contracts.
const (
	// BasisPoints is the denominator of booster values.
	BasisPoints = 10000
	// MaxBoosterValue caps any booster value at 50%.
	MaxBoosterValue = 5000
	// MaxBoosterPairs bounds the size of a booster table.
	MaxBoosterPairs = 30
	// MaxRegisterLimit bounds how many collateral NFTs an address may pledge.
	MaxRegisterLimit = 10
	// PrecisionDecimals is the scale of the reward accumulator.
	PrecisionDecimals = 30

	Day = uint64(24 * time.Hour / time.Second)
	// MinLockDuration is the shortest open-duration lock.
	MinLockDuration = 7 * Day
	// MaxLockDuration is the longest open-duration lock.
	MaxLockDuration = 365 * Day
	// MinTierDuration is the shortest duration tier.
	MinTierDuration = Day

	// BlockInterval is the default time between two blocks.
	BlockInterval = 10 * time.Second
)

// BasisPointsBig is BasisPoints as big.Int.
var BasisPointsBig = big.NewInt(BasisPoints)
