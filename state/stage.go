// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/kv"
	"github.com/0xdhu/ALTAVA-staking-contract/metrics"
)

var metricStorageWrites = metrics.LazyLoadCounterVec("state_storage_writes_count", []string{"op"})

// Stage holds the net storage changes of a state.
type Stage struct {
	stater  *Stater
	keys    []storageKey
	changes map[storageKey][]byte
}

// Len returns the number of changed slots.
func (s *Stage) Len() int {
	return len(s.keys)
}

// Commit writes the changes into the given putter, usually a batch shared with
// other writes of the same call. The cache is refreshed by Apply once the
// batch is durable.
func (s *Stage) Commit(putter kv.Putter) error {
	w := StorageBucket.NewPutter(putter)
	for _, k := range s.keys {
		v := s.changes[k]
		if len(v) == 0 {
			if err := w.Delete(k.encode()); err != nil {
				return errors.Wrap(err, "delete storage")
			}
			continue
		}
		if err := w.Put(k.encode(), v); err != nil {
			return errors.Wrap(err, "put storage")
		}
	}
	return nil
}

// Apply makes committed changes visible to new states.
func (s *Stage) Apply() {
	var puts, deletes int64
	for _, k := range s.keys {
		v := s.changes[k]
		if len(v) == 0 {
			deletes++
			v = nil
		} else {
			puts++
		}
		s.stater.cache.Add(k, v)
	}
	metricStorageWrites().AddWithLabel(puts, map[string]string{"op": "put"})
	metricStorageWrites().AddWithLabel(deletes, map[string]string{"op": "delete"})
}
