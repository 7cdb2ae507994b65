// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"encoding/hex"
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestIsRevertErr(t *testing.T) {
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr("not an error"))
	assert.False(t, IsRevertErr(errors.New("reverted")))

	err := New(StillLocked, "Still in locked")
	assert.True(t, IsRevertErr(err))
	assert.True(t, IsRevertErr(pkgerrors.WithMessage(err, "unlock")))
	assert.Equal(t, StillLocked, KindOf(pkgerrors.Wrap(err, "unlock")))
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, "Still in locked", ReasonOf(pkgerrors.Wrap(err, "unlock")))
	assert.Empty(t, ReasonOf(errors.New("boom")))
}

func TestErrorString(t *testing.T) {
	assert.Equal(t, "Paused", New(Paused, "").Error())
	assert.Equal(t, "NotFound: Chef: not exist", New(NotFound, "Chef: not exist").Error())
	assert.Equal(t, "InvalidInput: index 3", Newf(InvalidInput, "index %d", 3).Error())
}

func TestBytes(t *testing.T) {
	var nilErr *ErrRevert
	assert.Nil(t, nilErr.Bytes())

	b := New(NotOwner, "Ownable: caller is not the owner").Bytes()
	assert.Equal(t, "08c379a0", hex.EncodeToString(b[:4]))
	assert.Len(t, b, 4+32+32+32)
	assert.Equal(t, byte(32), b[4+31])
	assert.Equal(t, byte(32), b[4+63])
	assert.Equal(t, "Ownable: caller is not the owner", string(b[68:100]))
}
