// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for event
const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	blockNumber INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	method TEXT NOT NULL,
	caller BLOB(20) NOT NULL,
	address BLOB(20) NOT NULL,
	name TEXT NOT NULL,
	topic0 BLOB(32),
	topic1 BLOB(32),
	topic2 BLOB(32),
	topic3 BLOB(32),
	topic4 BLOB(32),
	data BLOB
);

CREATE INDEX IF NOT EXISTS event_i0 ON event(blockNumber);
CREATE INDEX IF NOT EXISTS event_i1 ON event(blockTime);
CREATE INDEX IF NOT EXISTS event_i2 ON event(address);
CREATE INDEX IF NOT EXISTS event_i3 ON event(topic0);
CREATE INDEX IF NOT EXISTS event_i4 ON event(topic1);
CREATE INDEX IF NOT EXISTS event_i5 ON event(topic2);
`

// create a table for transfer
const transferTableSchema = `
CREATE TABLE IF NOT EXISTS transfer (
	seq INTEGER PRIMARY KEY NOT NULL,
	blockNumber INTEGER NOT NULL,
	blockTime INTEGER NOT NULL,
	caller BLOB(20) NOT NULL,
	token BLOB(20) NOT NULL,
	sender BLOB(20) NOT NULL,
	recipient BLOB(20) NOT NULL,
	amount BLOB(32),
	nft INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS transfer_i0 ON transfer(blockNumber);
CREATE INDEX IF NOT EXISTS transfer_i1 ON transfer(blockTime);
CREATE INDEX IF NOT EXISTS transfer_i2 ON transfer(token);
CREATE INDEX IF NOT EXISTS transfer_i3 ON transfer(sender);
CREATE INDEX IF NOT EXISTS transfer_i4 ON transfer(recipient);
`
