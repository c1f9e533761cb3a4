package main

import (
	"context"
	"fmt"
	"os"

	"github.com/socialnet/api/internal/common/bootstrap"
	"github.com/socialnet/api/internal/maintenance"
)

func main() {
	ctx := context.Background()

	app, err := bootstrap.NewResetApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dbreset: %v\n", err)
		os.Exit(1)
	}
	defer app.Pool.Close()

	if err := maintenance.Reset(ctx, app.Tx, app.Log); err != nil {
		app.Log.Errorf("database reset failed: %v", err)
		app.Pool.Close()
		os.Exit(1)
	}
	app.Log.Info("database reset complete")
}
