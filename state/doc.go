// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package state manages contract storage.
// It follows the flow as below:
//
//	         o
//	         |
//	[ revertable state ]
//	         |
//	  [ stacked map ] -> [ journal ] -> [ stage ] -> [ kv batch ]
//	         |
//	  [ committed cache ]
//	         |
//	     [ kv store ]
//
// Every contract owns a flat key space of 32 byte slots. A slot holding an
// empty value does not exist.
package state
