package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/autimapro/autimapro/config"
	"github.com/autimapro/autimapro/internal/app"
	"github.com/autimapro/autimapro/internal/payment"
	"github.com/autimapro/autimapro/internal/restapi"
	"github.com/autimapro/autimapro/internal/webserver"
)

var (
	configFile = flag.String("c", "autimapro.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*configFile)
	application := app.NewApplication(cfg)
	if err := application.Init(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "init failed: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initDb {
		application.InitDb()
		zap.L().Info("database schema recreated")
		return
	}

	gateway := payment.NewStripeGateway(cfg.Shop.StripeSecretKey)

	server := webserver.NewWebServer(cfg)
	api := restapi.New(cfg, application.DB(), gateway, application.Bus())
	api.Register(server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Start(ctx)
	})

	if err := g.Wait(); err != nil {
		zap.L().Error("server exited", zap.Error(err))
	}
}
