// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru"
)

// messageCache keeps the encoded call messages, so a receipt fanned out to
// many listeners is encoded once.
type messageCache struct {
	cache *lru.Cache
	mu    sync.RWMutex
}

func newMessageCache(cacheSize uint32) *messageCache {
	if cacheSize > 1000 {
		cacheSize = 1000
	}
	if cacheSize == 0 {
		cacheSize = 1
	}
	cache, err := lru.New(int(cacheSize))
	if err != nil {
		// lru.New only fails on a size below 1
		panic(fmt.Errorf("failed to create message cache: %v", err))
	}
	return &messageCache{
		cache: cache,
	}
}

// GetOrAdd returns the message of call number n, creating and caching it when absent.
// The second return value reports whether the message was created.
func (mc *messageCache) GetOrAdd(n uint32, createMessage func() ([]byte, error)) ([]byte, bool, error) {
	mc.mu.RLock()
	msg, ok := mc.cache.Get(n)
	mc.mu.RUnlock()
	if ok {
		return msg.([]byte), false, nil
	}

	mc.mu.Lock()
	defer mc.mu.Unlock()
	msg, ok = mc.cache.Get(n)
	if ok {
		return msg.([]byte), false, nil
	}

	created, err := createMessage()
	if err != nil {
		return nil, false, err
	}
	mc.cache.Add(n, created)
	return created, true, nil
}
