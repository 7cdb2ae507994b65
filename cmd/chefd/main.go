// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/0xdhu/ALTAVA-staking-contract/api"
	"github.com/0xdhu/ALTAVA-staking-contract/genesis"
	"github.com/0xdhu/ALTAVA-staking-contract/log"
	"github.com/0xdhu/ALTAVA-staking-contract/logdb"
	"github.com/0xdhu/ALTAVA-staking-contract/lvldb"
	"github.com/0xdhu/ALTAVA-staking-contract/metrics"
	"github.com/0xdhu/ALTAVA-staking-contract/runtime"
)

const defaultBlockInterval = 10 * time.Second

var (
	version   string
	gitCommit string
	gitTag    string
	logger    = log.WithContext("pkg", "chefd")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "chefd",
		Usage:     "ALTAVA staking and reward engine",
		Copyright: "2025 The VeChainThor developers",
		Flags: []cli.Flag{
			genesisFlag,
			dataDirFlag,
			persistFlag,
			cacheFlag,
			dbCacheFlag,
			blockIntervalFlag,
			apiAddrFlag,
			apiCorsFlag,
			apiTimeoutFlag,
			apiLogsLimitFlag,
			apiCacheSizeFlag,
			enableAPILogsFlag,
			skipLogsFlag,
			pprofFlag,
			verbosityFlag,
			jsonLogsFlag,
			enableMetricsFlag,
			metricsAddrFlag,
		},
		Action: defaultAction,
		Commands: []cli.Command{
			{
				Name:   "dev-genesis",
				Usage:  "print the built-in devnet genesis as yaml",
				Flags:  []cli.Flag{outputFlag},
				Action: devGenesisAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultAction(ctx *cli.Context) error {
	exitSignal := handleExitSignal()
	defer func() { logger.Info("exited") }()

	initLogger(ctx)
	gene := selectGenesis(ctx)

	var (
		mainDB      *lvldb.LevelDB
		logDB       *logdb.LogDB
		instanceDir string
	)
	if ctx.Bool(persistFlag.Name) {
		instanceDir = makeInstanceDir(ctx, gene)
		mainDB = openMainDB(ctx, instanceDir)
		logDB = openLogDB(instanceDir)
	} else {
		instanceDir = "Memory"
		mainDB = openMemMainDB()
		logDB = openMemLogDB()
	}
	defer func() { logger.Info("closing main database..."); mainDB.Close() }()
	defer func() { logger.Info("closing log database..."); logDB.Close() }()

	if ctx.Bool(enableMetricsFlag.Name) {
		metrics.InitializePrometheusMetrics()
	}

	clock := runtime.NewBlockClock(clockwork.NewRealClock(), gene.LaunchTime(), ctx.Duration(blockIntervalFlag.Name))
	rt, err := runtime.New(mainDB, logDB, gene, clock, ctx.Int(cacheFlag.Name))
	if err != nil {
		return err
	}
	defer rt.Close()

	handler, closeAPI := api.New(rt, api.Options{
		AllowedOrigins:   ctx.String(apiCorsFlag.Name),
		PprofOn:          ctx.Bool(pprofFlag.Name),
		SkipLogs:         ctx.Bool(skipLogsFlag.Name),
		EnableReqLogger:  ctx.Bool(enableAPILogsFlag.Name),
		EnableMetrics:    ctx.Bool(enableMetricsFlag.Name),
		LogsLimit:        ctx.Uint64(apiLogsLimitFlag.Name),
		MessageCacheSize: uint32(ctx.Uint64(apiCacheSizeFlag.Name)),
	})
	defer func() { logger.Info("closing API handlers..."); closeAPI() }()

	group, groupCtx := errgroup.WithContext(exitSignal)

	apiSrv, apiURL, err := startAPIServer(ctx, handler, gene)
	if err != nil {
		return err
	}
	group.Go(func() error { return serve(groupCtx, apiSrv) })

	metricsURL := "disabled"
	if ctx.Bool(enableMetricsFlag.Name) {
		srv, url, err := startMetricsServer(ctx.String(metricsAddrFlag.Name))
		if err != nil {
			return err
		}
		metricsURL = url
		group.Go(func() error { return serve(groupCtx, srv) })
	}

	printStartupMessage(gene, rt, instanceDir, apiURL, metricsURL)

	return group.Wait()
}

func devGenesisAction(ctx *cli.Context) error {
	data, err := yaml.Marshal(genesis.DevConfig())
	if err != nil {
		return err
	}
	if path := ctx.String("output"); path != "" {
		return os.WriteFile(path, data, 0o644)
	}
	_, err = os.Stdout.Write(data)
	return err
}

// serve blocks until ctx is done, then shuts srv down.
func serve(ctx context.Context, srv *server) error {
	errCh := make(chan error, 1)
	go func() { errCh <- srv.run() }()

	select {
	case <-ctx.Done():
		logger.Info("stopping server...", "addr", srv.addr())
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.http.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
