package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/demoapi/cmd/demoapi/commands"
	"git.home.luguber.info/inful/demoapi/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("demoapi"),
		kong.Description("Demo HTTP service instrumented with a hand-built metrics registry."),
		kong.UsageOnError(),
		kong.Vars{
			"version": fmt.Sprintf("demoapi %s (commit %s, built %s)",
				version.Version, version.GitCommit, version.BuildTime),
		},
	)

	if err := ctx.Run(&commands.Global{}, &cli); err != nil {
		slog.Error("Command failed", "command", ctx.Command(), "error", err)
		os.Exit(1)
	}
}
