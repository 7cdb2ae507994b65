// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/0xdhu/ALTAVA-staking-contract/kv"
	"github.com/0xdhu/ALTAVA-staking-contract/lvldb"
)

func TestBucket(t *testing.T) {
	db, err := lvldb.NewMem()
	assert.Nil(t, err)
	defer db.Close()

	b1 := kv.Bucket("a")
	b2 := kv.Bucket("b")

	assert.Nil(t, b1.NewPutter(db).Put([]byte("k"), []byte("v1")))
	assert.Nil(t, b2.NewPutter(db).Put([]byte("k"), []byte("v2")))

	v, err := b1.NewGetter(db).Get([]byte("k"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v1"), v)

	v, err = db.Get([]byte("bk"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("v2"), v)

	assert.Nil(t, b1.NewPutter(db).Delete([]byte("k")))
	has, err := b1.NewGetter(db).Has([]byte("k"))
	assert.Nil(t, err)
	assert.False(t, has)

	_, err = b1.NewGetter(db).Get([]byte("k"))
	assert.True(t, b1.NewGetter(db).IsNotFound(err))
}
