package main

import (
	"context"
	"log"
	"os"

	"github.com/SatuPadu/fses-client/client"
	"github.com/SatuPadu/fses-client/core"
	"github.com/SatuPadu/fses-client/core/access"
	"github.com/SatuPadu/fses-client/core/guard"
	"github.com/SatuPadu/fses-client/core/session"
	logsvc "github.com/SatuPadu/fses-client/services/logger"
	"github.com/SatuPadu/fses-client/storage/state"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stderr, "FSES : ", log.LstdFlags|log.Lmicroseconds)

	conf, err := core.NewConfig()
	if err != nil {
		std.Fatal(err)
	}

	var logger core.Logger = core.StdLogger{Std: std}
	if conf.RollbarToken != "" {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	c := client.New(conf, logger)
	store := session.NewStore(client.NewAuthClient(c), state.NewFile(conf.Session.StatePath), logger)
	checker := access.NewChecker()

	ctx := context.Background()
	store.InitAuth(ctx)

	// keeps the token fresh across long-running commands (import streams)
	refresher := session.NewRefresher(store, conf, logger)
	refresher.Start()
	defer refresher.Stop()

	checker.InitializeFromRoles(store.Roles())
	dispose := store.Watch(func(ev session.Event) {
		switch ev {
		case session.EventLogout:
			checker.Clear()
		default:
			checker.InitializeFromRoles(store.Roles())
		}
	})
	defer dispose()

	cli := commandLine{
		store:   store,
		api:     client.NewAPI(c, store),
		checker: checker,
		guard:   guard.New(store, checker, guard.DefaultRoutes),
		out:     os.Stdout,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			std.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}
