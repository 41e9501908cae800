// Command server runs the andys backend: the HTTP API and the email consumer.
//
// Configuration comes from CONFIG_PATH (default ./config.yaml) and the
// environment. Run with -help to list every variable.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aistomin/andys-backend/internal/app"
	"github.com/aistomin/andys-backend/internal/config"
)

func main() {
	flag.Usage = func() { config.Usage(flag.CommandLine.Output()) }
	version := flag.Bool("version", false, "print the build version and exit")
	flag.Parse()

	if *version {
		fmt.Println(app.BuildVersion())
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
