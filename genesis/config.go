// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
)

// Config is the user customized genesis, read from YAML.
type Config struct {
	Name         string             `yaml:"name"`
	LaunchTime   uint64             `yaml:"launchTime"`
	Admin        altava.Address     `yaml:"admin"`
	BoosterOwner *altava.Address    `yaml:"boosterOwner,omitempty"`
	Collateral   altava.Address     `yaml:"collateral"`
	StakedToken  altava.Address     `yaml:"stakedToken"`
	Tokens       []TokenConfig      `yaml:"tokens"`
	Collections  []CollectionConfig `yaml:"collections"`
}

// TokenConfig creates a fungible token and its initial balances.
type TokenConfig struct {
	Address  altava.Address `yaml:"address"`
	Name     string         `yaml:"name"`
	Symbol   string         `yaml:"symbol"`
	Decimals uint8          `yaml:"decimals"`
	Balances []Balance      `yaml:"balances"`
}

type Balance struct {
	Address altava.Address `yaml:"address"`
	Amount  Amount         `yaml:"amount"`
}

// CollectionConfig creates an NFT collection and its initial mints.
type CollectionConfig struct {
	Address altava.Address `yaml:"address"`
	Name    string         `yaml:"name"`
	Symbol  string         `yaml:"symbol"`
	Mints   []Mint         `yaml:"mints"`
}

type Mint struct {
	Owner altava.Address `yaml:"owner"`
	IDs   []uint64       `yaml:"ids"`
}

// Amount is a decimal integer of arbitrary size.
type Amount struct {
	*big.Int
}

func NewAmount(x *big.Int) Amount {
	return Amount{new(big.Int).Set(x)}
}

func (a *Amount) UnmarshalYAML(node *yaml.Node) error {
	v, ok := new(big.Int).SetString(node.Value, 10)
	if !ok {
		return errors.Errorf("line %d: invalid amount %q", node.Line, node.Value)
	}
	a.Int = v
	return nil
}

func (a Amount) MarshalYAML() (any, error) {
	if a.Int == nil {
		return "0", nil
	}
	return a.String(), nil
}

// LoadConfig reads a YAML genesis file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read genesis file")
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode genesis file")
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Name == "" {
		return errors.New("name must be set")
	}
	if c.Admin.IsZero() {
		return errors.New("admin must be set")
	}
	if c.Collateral.IsZero() {
		return errors.New("collateral must be set")
	}
	if c.StakedToken.IsZero() {
		return errors.New("stakedToken must be set")
	}
	var (
		tokens      = make(map[altava.Address]bool)
		collections = make(map[altava.Address]bool)
	)
	used := func(addr altava.Address) bool { return addr.IsZero() || tokens[addr] || collections[addr] }
	for _, t := range c.Tokens {
		if used(t.Address) {
			return errors.Errorf("token %s: address missing or duplicated", t.Symbol)
		}
		tokens[t.Address] = true
		for _, b := range t.Balances {
			if b.Amount.Int == nil || b.Amount.Sign() < 1 {
				return errors.Errorf("token %s: %s: balance must be a non-zero integer", t.Symbol, b.Address)
			}
		}
	}
	for _, coll := range c.Collections {
		if used(coll.Address) {
			return errors.Errorf("collection %s: address missing or duplicated", coll.Symbol)
		}
		collections[coll.Address] = true
	}
	if !collections[c.Collateral] {
		return errors.Errorf("collateral %s is not a configured collection", c.Collateral)
	}
	if !tokens[c.StakedToken] {
		return errors.Errorf("stakedToken %s is not a configured token", c.StakedToken)
	}
	return nil
}

// rlpFields flattens the config into an RLP encodable list.
func (c *Config) rlpFields() []any {
	boosterOwner := c.Admin
	if c.BoosterOwner != nil {
		boosterOwner = *c.BoosterOwner
	}
	tokens := make([]any, 0, len(c.Tokens))
	for _, t := range c.Tokens {
		balances := make([]any, 0, len(t.Balances))
		for _, b := range t.Balances {
			balances = append(balances, []any{b.Address, b.Amount.Int})
		}
		tokens = append(tokens, []any{t.Address, t.Name, t.Symbol, t.Decimals, balances})
	}
	colls := make([]any, 0, len(c.Collections))
	for _, coll := range c.Collections {
		mints := make([]any, 0, len(coll.Mints))
		for _, m := range coll.Mints {
			mints = append(mints, []any{m.Owner, m.IDs})
		}
		colls = append(colls, []any{coll.Address, coll.Name, coll.Symbol, mints})
	}
	return []any{c.Name, c.LaunchTime, c.Admin, boosterOwner, c.Collateral, c.StakedToken, tokens, colls}
}
