// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"context"
	"database/sql"
	"fmt"
	"math/big"

	sqlite3 "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"github.com/0xdhu/ALTAVA-staking-contract/altava"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/xenv"
)

var logger = log.WithContext("pkg", "logdb")

const (
	insertEventQuery    = "INSERT OR REPLACE INTO event(seq, blockNumber, blockTime, method, caller, address, name, topic0, topic1, topic2, topic3, topic4, data) VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)"
	insertTransferQuery = "INSERT OR REPLACE INTO transfer(seq, blockNumber, blockTime, caller, token, sender, recipient, amount, nft) VALUES(?,?,?,?,?,?,?,?,?)"
	eventColumns        = "seq, blockNumber, blockTime, method, caller, address, name, topic0, topic1, topic2, topic3, topic4, data"
	transferColumns     = "seq, blockNumber, blockTime, caller, token, sender, recipient, amount, nft"
)

type LogDB struct {
	path          string
	db            *sql.DB
	stmts         *statements
	driverVersion string
}

// New create or open log db at given path.
func New(path string) (logDB *LogDB, err error) {
	dsn := path + "?_journal_mode=WAL&_busy_timeout=5000"
	if path == ":memory:" {
		dsn = path
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open log db")
	}
	defer func() {
		if logDB == nil {
			db.Close()
		}
	}()
	// every connection of an in-memory db sees its own database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(eventTableSchema + transferTableSchema); err != nil {
		return nil, errors.Wrap(err, "create log tables")
	}

	stmts, err := prepareStatements(db)
	if err != nil {
		return nil, err
	}

	driverVer, _, _ := sqlite3.Version()
	logger.Debug("log db opened", "path", path, "sqlite", driverVer)
	return &LogDB{
		path:          path,
		db:            db,
		stmts:         stmts,
		driverVersion: driverVer,
	}, nil
}

// NewMem create a log db in ram.
func NewMem() (*LogDB, error) {
	return New(":memory:")
}

// Close close the log db.
func (db *LogDB) Close() error {
	db.stmts.close()
	return db.db.Close()
}

func (db *LogDB) Path() string {
	return db.path
}

// Write stores the events and transfers of one committed call atomically.
func (db *LogDB) Write(info *CallInfo, events []*xenv.Event, transfers []*xenv.Transfer) error {
	if len(events) == 0 && len(transfers) == 0 {
		return nil
	}
	tx, err := db.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin log tx")
	}
	if err := db.write(tx, info, events, transfers); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "commit log tx")
	}
	metricsHandleWrite(len(events), len(transfers))
	return nil
}

func (db *LogDB) write(tx *sql.Tx, info *CallInfo, events []*xenv.Event, transfers []*xenv.Transfer) error {
	insertEvent := tx.Stmt(db.stmts.insertEvent)
	insertTransfer := tx.Stmt(db.stmts.insertTransfer)
	for i, ev := range events {
		e := newEvent(info, uint32(i), ev)
		if _, err := insertEvent.Exec(
			newSequence(e.CallNumber, e.Index),
			e.BlockNumber,
			e.BlockTime,
			e.Method,
			e.Caller.Bytes(),
			e.Address.Bytes(),
			e.Name,
			topicValue(e.Topics[0]),
			topicValue(e.Topics[1]),
			topicValue(e.Topics[2]),
			topicValue(e.Topics[3]),
			topicValue(e.Topics[4]),
			[]byte(e.Data),
		); err != nil {
			return errors.Wrap(err, "insert event")
		}
	}
	for i, tr := range transfers {
		t := newTransfer(info, uint32(i), tr)
		if _, err := insertTransfer.Exec(
			newSequence(t.CallNumber, t.Index),
			t.BlockNumber,
			t.BlockTime,
			t.Caller.Bytes(),
			t.Token.Bytes(),
			t.Sender.Bytes(),
			t.Recipient.Bytes(),
			t.Amount.Bytes(),
			t.NFT,
		); err != nil {
			return errors.Wrap(err, "insert transfer")
		}
	}
	return nil
}

// NewestCallNumber returns the number of the newest call that wrote logs, 0 if none.
func (db *LogDB) NewestCallNumber() (uint32, error) {
	var (
		seq   sql.NullInt64
		maxOf = func(table string) error {
			var s sql.NullInt64
			if err := db.db.QueryRow("SELECT MAX(seq) FROM " + table).Scan(&s); err != nil {
				return errors.Wrap(err, "query newest seq")
			}
			if s.Valid && (!seq.Valid || s.Int64 > seq.Int64) {
				seq = s
			}
			return nil
		}
	)
	if err := maxOf("event"); err != nil {
		return 0, err
	}
	if err := maxOf("transfer"); err != nil {
		return 0, err
	}
	if !seq.Valid {
		return 0, nil
	}
	return sequence(seq.Int64).CallNumber(), nil
}

func rangeCondition(r *Range, args []any) (string, []any) {
	if r == nil {
		return "", args
	}
	column := "blockNumber"
	if r.Unit == Time {
		column = "blockTime"
	}
	stmt := " AND " + column + " >= ?"
	args = append(args, r.From)
	if r.To >= r.From {
		stmt += " AND " + column + " <= ?"
		args = append(args, r.To)
	}
	return stmt, args
}

func orderAndLimit(order Order, opts *Options, args []any) (string, []any) {
	stmt := " ORDER BY seq ASC"
	if order == DESC {
		stmt = " ORDER BY seq DESC"
	}
	if opts != nil {
		stmt += " LIMIT ?, ?"
		args = append(args, opts.Offset, opts.Limit)
	}
	return stmt, args
}

func (db *LogDB) FilterEvents(ctx context.Context, filter *EventFilter) ([]*Event, error) {
	if filter == nil {
		return db.queryEvents(ctx, "SELECT "+eventColumns+" FROM event ORDER BY seq ASC")
	}
	metricsHandleEventsFilter(filter)

	var args []any
	stmt := "SELECT " + eventColumns + " FROM event WHERE 1"
	cond, args := rangeCondition(filter.Range, args)
	stmt += cond

	if len(filter.CriteriaSet) > 0 {
		stmt += " AND ("
		for i, criteria := range filter.CriteriaSet {
			if i > 0 {
				stmt += " OR"
			}
			stmt += " (1"
			if criteria.Address != nil {
				args = append(args, criteria.Address.Bytes())
				stmt += " AND address = ?"
			}
			for j, topic := range criteria.Topics {
				if topic != nil {
					args = append(args, topic.Bytes())
					stmt += fmt.Sprintf(" AND topic%d = ?", j)
				}
			}
			stmt += ")"
		}
		stmt += ")"
	}

	tail, args := orderAndLimit(filter.Order, filter.Options, args)
	return db.queryEvents(ctx, stmt+tail, args...)
}

func (db *LogDB) FilterTransfers(ctx context.Context, filter *TransferFilter) ([]*Transfer, error) {
	if filter == nil {
		return db.queryTransfers(ctx, "SELECT "+transferColumns+" FROM transfer ORDER BY seq ASC")
	}
	metricsHandleTransfersFilter(filter)

	var args []any
	stmt := "SELECT " + transferColumns + " FROM transfer WHERE 1"
	cond, args := rangeCondition(filter.Range, args)
	stmt += cond
	if filter.CallNumber != nil {
		args = append(args, newSequence(*filter.CallNumber, 0), newSequence(*filter.CallNumber+1, 0))
		stmt += " AND seq >= ? AND seq < ?"
	}

	if len(filter.CriteriaSet) > 0 {
		stmt += " AND ("
		for i, criteria := range filter.CriteriaSet {
			if i > 0 {
				stmt += " OR"
			}
			stmt += " (1"
			if criteria.Caller != nil {
				args = append(args, criteria.Caller.Bytes())
				stmt += " AND caller = ?"
			}
			if criteria.Token != nil {
				args = append(args, criteria.Token.Bytes())
				stmt += " AND token = ?"
			}
			if criteria.Sender != nil {
				args = append(args, criteria.Sender.Bytes())
				stmt += " AND sender = ?"
			}
			if criteria.Recipient != nil {
				args = append(args, criteria.Recipient.Bytes())
				stmt += " AND recipient = ?"
			}
			stmt += ")"
		}
		stmt += ")"
	}

	tail, args := orderAndLimit(filter.Order, filter.Options, args)
	return db.queryTransfers(ctx, stmt+tail, args...)
}

func (db *LogDB) queryEvents(ctx context.Context, stmt string, args ...any) ([]*Event, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query events")
	}
	defer rows.Close()

	var events []*Event
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq         int64
			blockNumber uint64
			blockTime   uint64
			method      string
			caller      []byte
			address     []byte
			name        string
			topics      [5][]byte
			data        []byte
		)
		if err := rows.Scan(
			&seq,
			&blockNumber,
			&blockTime,
			&method,
			&caller,
			&address,
			&name,
			&topics[0],
			&topics[1],
			&topics[2],
			&topics[3],
			&topics[4],
			&data,
		); err != nil {
			return nil, errors.Wrap(err, "scan event")
		}
		event := &Event{
			CallNumber:  sequence(seq).CallNumber(),
			Index:       sequence(seq).Index(),
			BlockNumber: blockNumber,
			BlockTime:   blockTime,
			Method:      method,
			Caller:      altava.BytesToAddress(caller),
			Address:     altava.BytesToAddress(address),
			Name:        name,
			Data:        data,
		}
		for i, topic := range topics {
			if len(topic) > 0 {
				h := altava.BytesToBytes32(topic)
				event.Topics[i] = &h
			}
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate events")
	}
	return events, nil
}

func (db *LogDB) queryTransfers(ctx context.Context, stmt string, args ...any) ([]*Transfer, error) {
	rows, err := db.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query transfers")
	}
	defer rows.Close()

	var transfers []*Transfer
	for rows.Next() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		var (
			seq         int64
			blockNumber uint64
			blockTime   uint64
			caller      []byte
			token       []byte
			sender      []byte
			recipient   []byte
			amount      []byte
			nft         bool
		)
		if err := rows.Scan(
			&seq,
			&blockNumber,
			&blockTime,
			&caller,
			&token,
			&sender,
			&recipient,
			&amount,
			&nft,
		); err != nil {
			return nil, errors.Wrap(err, "scan transfer")
		}
		transfers = append(transfers, &Transfer{
			CallNumber:  sequence(seq).CallNumber(),
			Index:       sequence(seq).Index(),
			BlockNumber: blockNumber,
			BlockTime:   blockTime,
			Caller:      altava.BytesToAddress(caller),
			Token:       altava.BytesToAddress(token),
			Sender:      altava.BytesToAddress(sender),
			Recipient:   altava.BytesToAddress(recipient),
			Amount:      new(big.Int).SetBytes(amount),
			NFT:         nft,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate transfers")
	}
	return transfers, nil
}

func topicValue(topic *altava.Bytes32) []byte {
	if topic == nil {
		return nil
	}
	return topic.Bytes()
}
