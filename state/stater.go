// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/kv"
)

// StorageBucket prefixes every storage slot in the kv store.
const StorageBucket = kv.Bucket("s")

// Stater is the state creator.
type Stater struct {
	db    kv.Store
	cache *lru.Cache
}

// NewStater creates a stater with an lru cache of cacheSize committed slots.
func NewStater(db kv.Store, cacheSize int) (*Stater, error) {
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new storage cache")
	}
	return &Stater{db, cache}, nil
}

// NewState creates a state on top of the latest committed storage.
func (s *Stater) NewState() *State {
	return newState(s)
}

func (s *Stater) getCommitted(key storageKey) ([]byte, error) {
	if v, ok := s.cache.Get(key); ok {
		return v.([]byte), nil
	}
	v, err := StorageBucket.NewGetter(s.db).Get(key.encode())
	if err != nil {
		if !s.db.IsNotFound(err) {
			return nil, err
		}
		v = nil
	}
	s.cache.Add(key, v)
	return v, nil
}
