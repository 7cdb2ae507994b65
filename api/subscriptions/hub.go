// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"sync"

	"github.com/ethereum/go-ethereum/event"

	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
)

const hubBufferSize = 256

// receiptHub fans the receipts of the runtime out to websocket listeners.
type receiptHub struct {
	ch        chan *runtime.Receipt
	sub       event.Subscription
	listeners map[chan *runtime.Receipt]struct{}
	mu        sync.RWMutex
}

func newReceiptHub(rt *runtime.Runtime) *receiptHub {
	ch := make(chan *runtime.Receipt, hubBufferSize)
	return &receiptHub{
		ch:        ch,
		sub:       rt.SubscribeReceipts(ch),
		listeners: make(map[chan *runtime.Receipt]struct{}),
	}
}

func (h *receiptHub) Subscribe(ch chan *runtime.Receipt) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.listeners[ch] = struct{}{}
}

func (h *receiptHub) Unsubscribe(ch chan *runtime.Receipt) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.listeners, ch)
}

func (h *receiptHub) DispatchLoop(done <-chan struct{}) {
	defer h.sub.Unsubscribe()

	for {
		select {
		case receipt := <-h.ch:
			h.mu.RLock()
			for lsn := range h.listeners {
				select {
				case lsn <- receipt:
				default: // a listener too slow to keep up misses the receipt
					metricDroppedReceipts().Add(1)
				}
			}
			h.mu.RUnlock()
		case <-h.sub.Err():
			return
		case <-done:
			return
		}
	}
}
