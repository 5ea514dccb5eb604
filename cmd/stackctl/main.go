package main

import (
	"fmt"
	"os"

	"github.com/clistack/clistack/internal/demo"
	"github.com/clistack/clistack/pkg/app"
	"github.com/clistack/clistack/pkg/handler"
)

// Version info set via ldflags at build time:
//
//	go build -ldflags "-X main.version=1.0.0"
var version = "dev"

func main() {
	reg := handler.Default()
	a := app.NewApp("stackctl")
	a.Version = version

	cfg, err := app.LoadConfig("stackctl", os.Getenv("STACKCTL_CONFIG"), demo.ConfigDefaults)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	a.Config = cfg

	if err := demo.RegisterAll(reg, version); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Exit(a.Main(os.Args[1:]))
}
