// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package runtime executes contract calls one at a time against persistent state.
// A call either commits all of its storage writes, events and transfers, or none of them.
package runtime

import (
	"encoding/binary"
	"fmt"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/event"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/builtin/reverts"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/kv"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/state"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "runtime")

const metaBucket = kv.Bucket("m")

var (
	genesisKey = []byte("genesis")
	callNumKey = []byte("call")
)

// Receipt describes a committed call.
type Receipt struct {
	CallNumber  uint32
	BlockNumber uint64
	BlockTime   uint64
	Method      string
	Caller      altava.Address
	Events      []*xenv.Event
	Transfers   []*xenv.Transfer
}

// Runtime is to support contract call execution.
type Runtime struct {
	db     kv.Store
	stater *state.Stater
	logDB  *logdb.LogDB
	clock  *BlockClock
	gen    *genesis.Genesis

	mu      sync.Mutex   // serializes Execute
	applyMu sync.RWMutex // keeps views off half applied stages
	callNum uint32

	feed  event.Feed
	scope event.SubscriptionScope
}

// New opens the runtime on db. Genesis state is built on first use, later opens
// require the stored genesis to match gen.
func New(db kv.Store, logDB *logdb.LogDB, gen *genesis.Genesis, clock *BlockClock, cacheSize int) (*Runtime, error) {
	stater, err := state.NewStater(db, cacheSize)
	if err != nil {
		return nil, err
	}
	rt := &Runtime{
		db:     db,
		stater: stater,
		logDB:  logDB,
		clock:  clock,
		gen:    gen,
	}

	meta := metaBucket.NewGetter(db)
	stored, err := meta.Get(genesisKey)
	switch {
	case err == nil:
		if id := altava.BytesToBytes32(stored); id != gen.ID() {
			return nil, errors.Errorf("genesis mismatch: stored %v, given %v", id, gen.ID())
		}
		if rt.callNum, err = loadCallNum(meta); err != nil {
			return nil, err
		}
		logger.Info("runtime resumed", "genesis", gen.ID(), "calls", rt.callNum)
	case db.IsNotFound(err):
		if err := rt.initGenesis(); err != nil {
			return nil, err
		}
		logger.Info("genesis initialized", "genesis", gen.ID(), "name", gen.Name())
	default:
		return nil, errors.Wrap(err, "read genesis id")
	}
	metricCallNumber().Set(int64(rt.callNum))
	return rt, nil
}

func loadCallNum(meta kv.Getter) (uint32, error) {
	v, err := meta.Get(callNumKey)
	if err != nil {
		if meta.IsNotFound(err) {
			return 0, nil
		}
		return 0, errors.Wrap(err, "read call number")
	}
	if len(v) != 4 {
		return 0, errors.New("corrupted call number")
	}
	return binary.BigEndian.Uint32(v), nil
}

func (rt *Runtime) initGenesis() error {
	out, err := rt.gen.Build(rt.stater)
	if err != nil {
		return errors.WithMessage(err, "build genesis")
	}
	batch := rt.db.NewBatch()
	if err := out.Stage.Commit(batch); err != nil {
		return err
	}
	if err := metaBucket.NewPutter(batch).Put(genesisKey, rt.gen.ID().Bytes()); err != nil {
		return errors.Wrap(err, "put genesis id")
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write genesis")
	}
	out.Stage.Apply()

	info := &logdb.CallInfo{Number: 0, BlockTime: rt.gen.LaunchTime(), Method: "genesis"}
	return rt.logDB.Write(info, out.Events, out.Transfers)
}

// Genesis returns the genesis the runtime was opened with.
func (rt *Runtime) Genesis() *genesis.Genesis { return rt.gen }

// Clock returns the block clock.
func (rt *Runtime) Clock() *BlockClock { return rt.clock }

// LogDB returns the event and transfer index.
func (rt *Runtime) LogDB() *logdb.LogDB { return rt.logDB }

// CallNumber returns the number of the latest committed call.
func (rt *Runtime) CallNumber() uint32 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.callNum
}

// run invokes fn, converting a panic into an error.
func run(env *xenv.Environment, fn func(env *xenv.Environment) error) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if re, ok := e.(*reverts.ErrRevert); ok {
				err = re
				return
			}
			err = fmt.Errorf("call panicked: %v", e)
		}
	}()
	return fn(env)
}

// Execute runs a mutating call by caller. On any error storage is left as it
// was and no logs are written.
func (rt *Runtime) Execute(method string, caller altava.Address, fn func(env *xenv.Environment) error) (*Receipt, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()

	start := time.Now()
	defer func() {
		metricCallDuration().ObserveWithLabels(time.Since(start).Milliseconds(), map[string]string{"method": method})
	}()

	blockCtx := rt.clock.Now()
	st := rt.stater.NewState()
	env := xenv.New(st, blockCtx, caller)
	checkpoint := st.NewCheckpoint()

	if err := run(env, fn); err != nil {
		st.RevertTo(checkpoint)
		status := "error"
		if reverts.IsRevertErr(err) {
			status = "reverted"
			metricRevertKinds().AddWithLabel(1, map[string]string{"kind": string(reverts.KindOf(err))})
		}
		metricCallCount().AddWithLabel(1, map[string]string{"method": method, "status": status})
		logger.Debug("call reverted", "method", method, "caller", caller, "block", blockCtx.Number, "err", err)
		return nil, err
	}

	receipt := &Receipt{
		CallNumber:  rt.callNum + 1,
		BlockNumber: blockCtx.Number,
		BlockTime:   blockCtx.Time,
		Method:      method,
		Caller:      caller,
		Events:      env.Events(),
		Transfers:   env.Transfers(),
	}
	if err := rt.commit(st.Stage(), receipt.CallNumber); err != nil {
		metricCallCount().AddWithLabel(1, map[string]string{"method": method, "status": "error"})
		return nil, err
	}
	rt.callNum = receipt.CallNumber

	info := &logdb.CallInfo{
		Number:      receipt.CallNumber,
		BlockNumber: receipt.BlockNumber,
		BlockTime:   receipt.BlockTime,
		Method:      method,
		Caller:      caller,
	}
	if err := rt.logDB.Write(info, receipt.Events, receipt.Transfers); err != nil {
		// storage is durable already
		logger.Error("failed to write logs", "call", receipt.CallNumber, "err", err)
	}

	metricCallCount().AddWithLabel(1, map[string]string{"method": method, "status": "committed"})
	metricCallNumber().Set(int64(receipt.CallNumber))
	metricBlockNumber().Set(int64(receipt.BlockNumber))
	logger.Debug("call committed", "method", method, "caller", caller, "call", receipt.CallNumber,
		"block", receipt.BlockNumber, "events", len(receipt.Events), "transfers", len(receipt.Transfers))

	rt.feed.Send(receipt)
	return receipt, nil
}

func (rt *Runtime) commit(stage *state.Stage, callNum uint32) error {
	batch := rt.db.NewBatch()
	if err := stage.Commit(batch); err != nil {
		return err
	}
	var num [4]byte
	binary.BigEndian.PutUint32(num[:], callNum)
	if err := metaBucket.NewPutter(batch).Put(callNumKey, num[:]); err != nil {
		return errors.Wrap(err, "put call number")
	}

	rt.applyMu.Lock()
	defer rt.applyMu.Unlock()
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write batch")
	}
	stage.Apply()
	return nil
}

// View runs a read only call over committed state. Writes made by fn are discarded.
func (rt *Runtime) View(fn func(env *xenv.Environment) error) error {
	rt.applyMu.RLock()
	defer rt.applyMu.RUnlock()

	env := xenv.New(rt.stater.NewState(), rt.clock.Now(), altava.Address{})
	return run(env, fn)
}

// SubscribeReceipts delivers every committed receipt to ch.
func (rt *Runtime) SubscribeReceipts(ch chan *Receipt) event.Subscription {
	return rt.scope.Track(rt.feed.Subscribe(ch))
}

// Close unsubscribes all receipt subscribers.
func (rt *Runtime) Close() {
	rt.scope.Close()
}
