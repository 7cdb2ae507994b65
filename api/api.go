// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api

import (
	"net/http"
	"net/http/pprof"
	"strings"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/0xdhu/ALTAVA-staking-contract/api/boosters"
	"github.com/0xdhu/ALTAVA-staking-contract/api/collateral"
	"github.com/0xdhu/ALTAVA-staking-contract/api/events"
	"github.com/0xdhu/ALTAVA-staking-contract/api/nftchefs"
	"github.com/0xdhu/ALTAVA-staking-contract/api/nfts"
	"github.com/0xdhu/ALTAVA-staking-contract/api/node"
	"github.com/0xdhu/ALTAVA-staking-contract/api/smartchefs"
	"github.com/0xdhu/ALTAVA-staking-contract/api/subscriptions"
	"github.com/0xdhu/ALTAVA-staking-contract/api/tokens"
	"github.com/0xdhu/ALTAVA-staking-contract/api/transfers"
	"github.com/0xdhu/ALTAVA-staking-contract/api/utils"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
)

var logger = log.WithContext("pkg", "api")

const GenesisIDHeader = "X-Genesis-ID"

type Options struct {
	AllowedOrigins   string
	PprofOn          bool
	SkipLogs         bool
	EnableReqLogger  bool
	EnableMetrics    bool
	LogsLimit        uint64
	MessageCacheSize uint32
}

// New return api router
func New(rt *runtime.Runtime, opts Options) (http.HandlerFunc, func()) {
	origins := strings.Split(strings.TrimSpace(opts.AllowedOrigins), ",")
	for i, o := range origins {
		origins[i] = strings.ToLower(strings.TrimSpace(o))
	}

	router := mux.NewRouter()

	tokens.New(rt).
		Mount(router, "/tokens")
	nfts.New(rt).
		Mount(router, "/nfts")
	collateral.New(rt).
		Mount(router, "/collateral")
	boosters.New(rt).
		Mount(router, "/boosters")
	smartchefs.New(rt).
		Mount(router, "/smartchefs")
	nftchefs.New(rt).
		Mount(router, "/nftchefs")
	if !opts.SkipLogs {
		events.New(rt.LogDB(), opts.LogsLimit).
			Mount(router, "/logs/event")
		transfers.New(rt.LogDB(), opts.LogsLimit).
			Mount(router, "/logs/transfer")
	}
	node.New(rt).
		Mount(router, "/node")
	subs := subscriptions.New(rt, origins, opts.MessageCacheSize)
	subs.Mount(router, "/subscriptions")

	if opts.PprofOn {
		router.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
		router.HandleFunc("/debug/pprof/profile", pprof.Profile)
		router.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
		router.HandleFunc("/debug/pprof/trace", pprof.Trace)
		router.PathPrefix("/debug/pprof/").HandlerFunc(pprof.Index)
	}

	if opts.EnableMetrics {
		router.Use(metricsMiddleware)
	}

	genesisID := rt.Genesis().ID().String()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(GenesisIDHeader, genesisID)
			next.ServeHTTP(w, r)
		})
	})

	handler := handlers.CompressHandler(router)
	handler = handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete}),
		handlers.AllowedHeaders([]string{"content-type", strings.ToLower(utils.CallerHeader)}),
		handlers.ExposedHeaders([]string{strings.ToLower(GenesisIDHeader)}),
	)(handler)

	if opts.EnableReqLogger {
		handler = RequestLoggerHandler(handler, logger)
	}

	return handler.ServeHTTP, subs.Close // subscriptions handles hijacked conns, which need to be closed
}
