// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package runtime

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

// BlockClock derives block number and time from wall clock.
// Block 0 starts at launch time, a new block begins every interval.
type BlockClock struct {
	clock      clockwork.Clock
	launchTime uint64
	interval   uint64

	mu   sync.Mutex
	last xenv.BlockContext
}

func NewBlockClock(clock clockwork.Clock, launchTime uint64, interval time.Duration) *BlockClock {
	secs := uint64(interval / time.Second)
	if secs == 0 {
		secs = 1
	}
	return &BlockClock{
		clock:      clock,
		launchTime: launchTime,
		interval:   secs,
		last:       xenv.BlockContext{Time: launchTime},
	}
}

// Now returns the current block context. It never goes backwards, even if the wall clock does.
func (c *BlockClock) Now() *xenv.BlockContext {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now().Unix()
	if now > 0 && uint64(now) > c.last.Time {
		c.last.Time = uint64(now)
		c.last.Number = (c.last.Time - c.launchTime) / c.interval
	}
	ctx := c.last
	return &ctx
}

// Interval returns the block interval in seconds.
func (c *BlockClock) Interval() uint64 {
	return c.interval
}
