// PixelHive - account lifecycle for a multi-tenant media platform
// Copyright (C) 2026 PixelHive contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pixelhive/pixelhive-go/cmd/internal/utils"
	accountManager "github.com/pixelhive/pixelhive-go/pkg/managers/account"
	"github.com/pixelhive/pixelhive-go/pkg/objectStorage"
	"github.com/pixelhive/pixelhive-go/pkg/options/env"
	"github.com/pixelhive/pixelhive-go/pkg/options/listenAddress"
	"github.com/pixelhive/pixelhive-go/pkg/router"
)

func main() {
	ctx, done := signal.NotifyContext(
		context.Background(), syscall.SIGINT, syscall.SIGTERM,
	)
	defer done()

	rClient := utils.MustConnectRedis(10 * time.Second)
	db := utils.MustConnectPostgres(30 * time.Second)

	o := objectStorage.Options{}
	o.FillFromEnv()
	if err := o.Validate(); err != nil {
		panic(err)
	}
	b, err := objectStorage.FromOptions(o)
	if err != nil {
		panic(err)
	}

	am, err := accountManager.New(db, rClient, b)
	if err != nil {
		panic(err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "cron":
			if !am.CronOnce(ctx) {
				os.Exit(1)
			}
			return
		case "reset-admin-password":
			request := &accountManager.ResetAdminPasswordRequest{}
			if len(os.Args) > 2 {
				request.Password = os.Args[2]
			}
			password, err2 := am.ResetAdminPassword(ctx, request)
			if err2 != nil {
				panic(err2)
			}
			fmt.Println(password)
			return
		default:
			panic("unknown command: " + os.Args[1])
		}
	}

	if err = am.EnsureAdministrator(ctx); err != nil {
		panic(err)
	}

	server := http.Server{
		Addr:    listenAddress.Parse(4000),
		Handler: router.New(am),
	}

	eg, pCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		if err2 := server.ListenAndServe(); err2 != http.ErrServerClosed {
			return err2
		}
		return nil
	})
	eg.Go(func() error {
		<-pCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 15*time.Second,
		)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		return am.ProcessDeletionQueue(pCtx)
	})
	eg.Go(func() error {
		sweepExpired(pCtx, am)
		return nil
	})

	if err = eg.Wait(); err != nil {
		panic(err)
	}
}

// sweepExpired runs the deletion sweep on an interval. The first run is
// jittered to spread the load when multiple instances start together.
func sweepExpired(ctx context.Context, am accountManager.Manager) {
	interval := env.GetDuration("SWEEP_INTERVAL", 24*time.Hour)
	jitter := time.Duration(rand.Int63n(int64(time.Minute)))
	select {
	case <-ctx.Done():
		return
	case <-time.After(jitter):
	}
	am.CronOnce(ctx)

	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if !am.CronOnce(ctx) {
				log.Println("deletion sweep failed, retrying next tick")
			}
		}
	}
}
