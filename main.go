package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"

	"github.com/nekruzvatanshoev/carfinder/pkg/cmd"
)

var version = "dev"

func main() {
	if err := fang.Execute(
		context.Background(),
		cmd.RootCmd,
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt, os.Kill),
	); err != nil {
		os.Exit(1)
	}
}
