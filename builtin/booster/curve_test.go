// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package booster

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
)

func fixture() *Curve {
	return NewCurve([]Pair{{1, 180}, {2, 255}, {3, 350}, {7, 450}})
}

func TestCurveValue(t *testing.T) {
	c := fixture()

	tests := []struct {
		q    uint64
		want uint64
	}{
		{0, 0},
		{1, 180},
		{2, 255},
		{3, 350},
		{4, 350},
		{6, 350},
		{7, 450},
		{100, 450},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Value(tt.q), "q=%d", tt.q)
	}
	assert.Zero(t, NewCurve(nil).Value(5))
}

func TestCurveSetValue(t *testing.T) {
	tests := []struct {
		name       string
		key, value uint64
		kind       reverts.Kind
	}{
		{"zero key", 0, 100, reverts.InvalidInput},
		{"zero value", 4, 0, reverts.InvalidInput},
		{"over max", 4, 5001, reverts.OverflowMax},
		{"same value", 1, 180, reverts.InvalidInput},
		{"below lower neighbour", 4, 350, reverts.InvalidOrdering},
		{"above upper neighbour", 4, 450, reverts.InvalidOrdering},
		{"update breaks upper", 1, 255, reverts.InvalidOrdering},
		{"update breaks lower", 3, 200, reverts.InvalidOrdering},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fixture()
			assert.Equal(t, tt.kind, reverts.KindOf(c.SetValue(tt.key, tt.value)))
			assert.Equal(t, fixture().Pairs(), c.Pairs(), "failed set leaves the curve intact")
		})
	}

	c := fixture()
	require.NoError(t, c.SetValue(4, 400))
	require.NoError(t, c.SetValue(1, 155))
	require.NoError(t, c.SetValue(10, 5000))
	assert.Equal(t, []Pair{{1, 155}, {2, 255}, {3, 350}, {4, 400}, {7, 450}, {10, 5000}}, c.Pairs())
	assert.Equal(t, uint64(400), c.Value(5))
}

func TestCurveCapacity(t *testing.T) {
	c := NewCurve(nil)
	for i := uint64(1); i <= altava.MaxBoosterPairs; i++ {
		require.NoError(t, c.SetValue(i, i*10))
	}
	assert.Equal(t, reverts.CapacityExceeded,
		reverts.KindOf(c.SetValue(altava.MaxBoosterPairs+1, 4000)))
	// updates in place are still allowed on a full table
	require.NoError(t, c.SetValue(altava.MaxBoosterPairs, altava.MaxBoosterPairs*10+5))
}

func TestCurveRemoveValue(t *testing.T) {
	c := fixture()
	assert.Equal(t, reverts.NotFound, reverts.KindOf(c.RemoveValue(5)))

	require.NoError(t, c.RemoveValue(2))
	assert.Equal(t, []Pair{{1, 180}, {3, 350}, {7, 450}}, c.Pairs())
	assert.Equal(t, uint64(180), c.Value(2))
}

func TestCurveSetArray(t *testing.T) {
	c := fixture()
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(c.SetArray(nil)))
	assert.Equal(t, reverts.InvalidOrdering, reverts.KindOf(c.SetArray([]Pair{{1, 100}, {1, 200}})))
	assert.Equal(t, reverts.InvalidOrdering, reverts.KindOf(c.SetArray([]Pair{{1, 300}, {2, 200}})))
	assert.Equal(t, reverts.OverflowMax, reverts.KindOf(c.SetArray([]Pair{{1, 6000}})))
	assert.Equal(t, reverts.InvalidInput, reverts.KindOf(c.SetArray([]Pair{{0, 100}})))

	tooMany := make([]Pair, altava.MaxBoosterPairs+1)
	for i := range tooMany {
		tooMany[i] = Pair{uint64(i + 1), uint64(i + 1)}
	}
	assert.Equal(t, reverts.CapacityExceeded, reverts.KindOf(c.SetArray(tooMany)))
	assert.Equal(t, fixture().Pairs(), c.Pairs())

	require.NoError(t, c.SetArray([]Pair{{3, 350}, {1, 150}, {2, 250}}))
	assert.Equal(t, []Pair{{1, 150}, {2, 250}, {3, 350}}, c.Pairs())
}

func TestCurveRevertReasons(t *testing.T) {
	full := make([]Pair, altava.MaxBoosterPairs)
	for i := range full {
		full[i] = Pair{uint64(i + 1), uint64(i + 1)}
	}
	tests := []struct {
		name   string
		apply  func(c *Curve) error
		reason string
	}{
		{"zero key", func(c *Curve) error { return c.SetValue(0, 100) }, "Inputs cannot be zero"},
		{"zero value", func(c *Curve) error { return c.SetValue(4, 0) }, "Inputs cannot be zero"},
		{"over max", func(c *Curve) error { return c.SetValue(4, 5001) }, "Booster rate: overflow max"},
		{"same value", func(c *Curve) error { return c.SetValue(1, 180) }, "Amount in use"},
		{"below lower", func(c *Curve) error { return c.SetValue(4, 350) }, "Booster value: invalid"},
		{"above upper", func(c *Curve) error { return c.SetValue(1, 255) }, "Booster value: invalid"},
		{"empty array", func(c *Curve) error { return c.SetArray(nil) }, "Invalid inputs"},
		{"duplicate key", func(c *Curve) error { return c.SetArray([]Pair{{1, 100}, {1, 200}}) }, "Booster value: invalid"},
		{"too many pairs", func(c *Curve) error { return c.SetArray(append(full, Pair{99, 99})) }, "Limit max booster pair"},
		{"full table", func(c *Curve) error {
			require.NoError(t, c.SetArray(full))
			return c.SetValue(altava.MaxBoosterPairs+1, 4000)
		}, "Limit max booster pair"},
		{"missing key", func(c *Curve) error { return c.RemoveValue(5) }, "Booster key not exist"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.reason, reverts.ReasonOf(tt.apply(fixture())))
		})
	}
}

type op struct {
	Remove bool
	Key    uint8
	Value  uint16
}

// bruteValue is the reference floor lookup over an ascending pair list.
func bruteValue(pairs []Pair, q uint64) uint64 {
	var v uint64
	for _, p := range pairs {
		if p.Key <= q {
			v = p.Value
		}
	}
	return v
}

func TestCurveProperties(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		var ops []op
		fuzz.NewWithSeed(seed).NilChance(0).NumElements(1, 80).Fuzz(&ops)

		c := NewCurve(nil)
		model := make(map[uint64]uint64)
		for _, o := range ops {
			key := uint64(o.Key % 40)
			if o.Remove {
				if c.RemoveValue(key) == nil {
					delete(model, key)
				}
				continue
			}
			value := uint64(o.Value % 5500)
			if c.SetValue(key, value) == nil {
				model[key] = value
			}
		}

		pairs := c.Pairs()
		require.Len(t, pairs, len(model), "seed %d", seed)
		require.LessOrEqual(t, len(pairs), altava.MaxBoosterPairs)
		for i, p := range pairs {
			require.Equal(t, model[p.Key], p.Value, "seed %d", seed)
			if i > 0 {
				require.Greater(t, p.Key, pairs[i-1].Key, "seed %d: keys ascending", seed)
				require.Greater(t, p.Value, pairs[i-1].Value, "seed %d: values ascending", seed)
			}
		}
		for q := uint64(0); q < 45; q++ {
			require.Equal(t, bruteValue(pairs, q), c.Value(q), "seed %d q %d", seed, q)
		}

		// removing any key leaves the rest in order
		for i, p := range pairs {
			cp := NewCurve(pairs)
			require.NoError(t, cp.RemoveValue(p.Key))
			want := append(append([]Pair{}, pairs[:i]...), pairs[i+1:]...)
			require.Equal(t, want, cp.Pairs(), "seed %d", seed)
		}
	}
}
