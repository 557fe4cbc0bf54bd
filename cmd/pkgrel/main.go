package main

import (
	"context"
	"os"

	"github.com/pkgrel/pkgrel/internal/cli"
)

func main() {
	os.Exit(run(os.Args, cli.DefaultDeps()))
}

// run executes the CLI and maps the outcome to an exit status:
// 0 on success, 1 on failure, 130 when interrupted.
func run(args []string, deps cli.Deps) int {
	app := cli.New(deps)
	err := app.Run(context.Background(), args)
	cli.ReportError(err)
	return cli.ExitCode(err)
}
