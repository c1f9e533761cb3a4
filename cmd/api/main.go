package main

import (
	"context"
	"fmt"
	"os"

	"github.com/socialnet/api/internal/common/bootstrap"
	srv "github.com/socialnet/api/internal/common/server"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.NewAPIApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "api: %v\n", err)
		os.Exit(1)
	}

	serverConfig := srv.ConfigForPort(app.Config.HTTPPort, app.Config.RequestTimeout)
	server := srv.NewServer(serverConfig, app.Router)

	if err := srv.Run(ctx, server, serverConfig, app.Log, "api", app.ShutdownHooks()...); err != nil {
		app.Log.Fatalf("api service: %v", err)
	}
}
