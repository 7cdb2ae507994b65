// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package subscriptions

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
)

var logger = log.WithContext("pkg", "subscriptions")

const (
	listenerBufferSize = 64
	writeWait          = 10 * time.Second
	pongWait           = 60 * time.Second
	pingPeriod         = (pongWait * 7) / 10
)

// Subscriptions streams committed calls over websocket.
type Subscriptions struct {
	hub      *receiptHub
	cache    *messageCache
	upgrader *websocket.Upgrader
	done     chan struct{}
	wg       sync.WaitGroup
}

func New(rt *runtime.Runtime, allowedOrigins []string, cacheSize uint32) *Subscriptions {
	s := &Subscriptions{
		hub:   newReceiptHub(rt),
		cache: newMessageCache(cacheSize),
		upgrader: &websocket.Upgrader{
			EnableCompression: true,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" {
					return true
				}
				for _, allowed := range allowedOrigins {
					if allowed == "*" || allowed == origin {
						return true
					}
				}
				return false
			},
		},
		done: make(chan struct{}),
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.hub.DispatchLoop(s.done)
	}()
	return s
}

func (s *Subscriptions) callMessages(r *runtime.Receipt) ([][]byte, error) {
	msg, _, err := s.cache.GetOrAdd(r.CallNumber, func() ([]byte, error) {
		return json.Marshal(utils.ConvertReceipt(r))
	})
	if err != nil {
		return nil, err
	}
	return [][]byte{msg}, nil
}

func marshalAll[T any](items []T) ([][]byte, error) {
	out := make([][]byte, 0, len(items))
	for _, item := range items {
		msg, err := json.Marshal(item)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	return out, nil
}

func (s *Subscriptions) handleSubject(w http.ResponseWriter, req *http.Request) error {
	subject := mux.Vars(req)["subject"]

	var build func(r *runtime.Receipt) ([][]byte, error)
	switch subject {
	case "call":
		build = s.callMessages
	case "event":
		filter, err := parseEventFilter(req)
		if err != nil {
			return err
		}
		build = func(r *runtime.Receipt) ([][]byte, error) {
			return marshalAll(filter.EventMessages(r))
		}
	case "transfer":
		filter, err := parseTransferFilter(req)
		if err != nil {
			return err
		}
		build = func(r *runtime.Receipt) ([][]byte, error) {
			return marshalAll(filter.TransferMessages(r))
		}
	default:
		return utils.HTTPError(nil, http.StatusNotFound)
	}

	// listen before upgrading so no call committed after the handshake is missed
	ch := make(chan *runtime.Receipt, listenerBufferSize)
	s.hub.Subscribe(ch)
	defer s.hub.Unsubscribe(ch)

	metricActiveCount().AddWithLabel(1, map[string]string{"subject": subject})
	defer metricActiveCount().AddWithLabel(-1, map[string]string{"subject": subject})

	conn, err := s.upgrader.Upgrade(w, req, nil)
	// since the conn is hijacked here, no error should be returned in lines below
	if err != nil {
		logger.Debug("upgrade to websocket", "err", err)
		return nil
	}
	defer conn.Close()

	if err := s.pipe(conn, ch, build); err != nil {
		logger.Debug("error in websocket", "subject", subject, "err", err)
	}
	return nil
}

func (s *Subscriptions) pipe(conn *websocket.Conn, ch <-chan *runtime.Receipt, build func(r *runtime.Receipt) ([][]byte, error)) error {
	closed := make(chan struct{})
	// the read loop handles pongs and notices the peer going away
	go func() {
		defer close(closed)
		conn.SetReadLimit(512)
		_ = conn.SetReadDeadline(time.Now().Add(pongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(pongWait))
		})
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case receipt := <-ch:
			msgs, err := build(receipt)
			if err != nil {
				return err
			}
			for _, msg := range msgs {
				_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return err
				}
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return err
			}
		case <-closed:
			return nil
		case <-s.done:
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "")
			return conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
		}
	}
}

// Close stops dispatching and asks every open connection to close.
func (s *Subscriptions) Close() {
	close(s.done)
	s.wg.Wait()
}

func (s *Subscriptions) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{subject}").
		Methods(http.MethodGet).
		Name("subscriptions_subject").
		HandlerFunc(utils.WrapHandlerFunc(s.handleSubject))
}
