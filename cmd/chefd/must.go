// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/lvldb"
	"github.com/0xdhu/ALTAVA-staking-contract/metrics"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
)

func initLogger(ctx *cli.Context) {
	verbosity := ctx.Int(verbosityFlag.Name)
	if verbosity < log.LvlCrit || verbosity > log.LvlTrace {
		fatal(fmt.Sprintf("invalid verbosity %d, expected 0-5", verbosity))
	}
	log.Init(os.Stderr, verbosity, ctx.Bool(jsonLogsFlag.Name))
}

func selectGenesis(ctx *cli.Context) *genesis.Genesis {
	path := strings.TrimSpace(ctx.String(genesisFlag.Name))
	if path == "" {
		return genesis.NewDevnet()
	}
	gene, err := genesis.Load(path)
	if err != nil {
		fatal("load genesis:", err)
	}
	return gene
}

func makeDataDir(ctx *cli.Context) string {
	dataDir := ctx.String(dataDirFlag.Name)
	if dataDir == "" {
		fatal(fmt.Sprintf("unable to infer default data dir, use -%s to specify", dataDirFlag.Name))
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", dataDir, err))
	}
	return dataDir
}

func makeInstanceDir(ctx *cli.Context, gene *genesis.Genesis) string {
	dataDir := makeDataDir(ctx)

	instanceDir := filepath.Join(dataDir, fmt.Sprintf("instance-%x", gene.ID().Bytes()[24:]))
	if err := os.MkdirAll(instanceDir, 0700); err != nil {
		fatal(fmt.Sprintf("create data dir [%v]: %v", instanceDir, err))
	}
	return instanceDir
}

func openMainDB(ctx *cli.Context, dataDir string) *lvldb.LevelDB {
	cacheMB := ctx.Int(dbCacheFlag.Name)
	if cacheMB < 16 {
		cacheMB = 16
	}
	path := filepath.Join(dataDir, "main.db")
	db, err := lvldb.New(path, lvldb.Options{
		CacheSize:              cacheMB,
		OpenFilesCacheCapacity: 500,
	})
	if err != nil {
		fatal(fmt.Sprintf("open state database [%v]: %v", path, err))
	}
	return db
}

func openLogDB(dataDir string) *logdb.LogDB {
	path := filepath.Join(dataDir, "logs.db")
	db, err := logdb.New(path)
	if err != nil {
		fatal(fmt.Sprintf("open log database [%v]: %v", path, err))
	}
	return db
}

func openMemMainDB() *lvldb.LevelDB {
	db, err := lvldb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open state database: %v", err))
	}
	return db
}

func openMemLogDB() *logdb.LogDB {
	db, err := logdb.NewMem()
	if err != nil {
		fatal(fmt.Sprintf("open log database: %v", err))
	}
	return db
}

func startAPIServer(ctx *cli.Context, handler http.Handler, gene *genesis.Genesis) (*server, string, error) {
	if timeout := ctx.Uint64(apiTimeoutFlag.Name); timeout > 0 {
		handler = handleAPITimeout(handler, time.Duration(timeout)*time.Millisecond)
	}
	srv, err := newServer(ctx.String(apiAddrFlag.Name), handler)
	if err != nil {
		return nil, "", errors.Wrap(err, "start API server")
	}
	logger.Info("API server started", "addr", srv.addr(), "genesis", gene.ID())
	return srv, "http://" + srv.addr() + "/", nil
}

func startMetricsServer(addr string) (*server, string, error) {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())

	srv, err := newServer(addr, handlers.CompressHandler(router))
	if err != nil {
		return nil, "", errors.Wrap(err, "start metrics server")
	}
	logger.Info("metrics server started", "addr", srv.addr())
	return srv, "http://" + srv.addr() + "/metrics", nil
}

func printStartupMessage(
	gene *genesis.Genesis,
	rt *runtime.Runtime,
	dataDir string,
	apiURL string,
	metricsURL string,
) {
	block := rt.Clock().Now()

	fmt.Printf(`Starting %v
    Network      [ %v %v ]
    Launch time  [ %v ]
    Block        [ #%v @%v, every %vs ]
    Calls        [ %v ]
    Instance dir [ %v ]
    API portal   [ %v ]
    Metrics      [ %v ]
`,
		"chefd "+fullVersion(),
		gene.ID(), gene.Name(),
		time.Unix(int64(gene.LaunchTime()), 0).UTC(),
		block.Number, time.Unix(int64(block.Time), 0).UTC(), rt.Clock().Interval(),
		rt.CallNumber(),
		dataDir,
		apiURL,
		metricsURL,
	)
}
