// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

import (
	"database/sql"

	"github.com/pkg/errors"
)

// statements holds the insert statements, prepared once on open.
// A prepare inside a write tx would wait for the only connection.
type statements struct {
	insertEvent    *sql.Stmt
	insertTransfer *sql.Stmt
}

func prepareStatements(db *sql.DB) (*statements, error) {
	var (
		s   statements
		err error
	)
	if s.insertEvent, err = db.Prepare(insertEventQuery); err != nil {
		return nil, errors.Wrap(err, "prepare event insert")
	}
	if s.insertTransfer, err = db.Prepare(insertTransferQuery); err != nil {
		s.insertEvent.Close()
		return nil, errors.Wrap(err, "prepare transfer insert")
	}
	return &s, nil
}

func (s *statements) close() {
	s.insertEvent.Close()
	s.insertTransfer.Close()
}
