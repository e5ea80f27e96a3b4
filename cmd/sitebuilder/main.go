// Command sitebuilder turns a directory of posts, pages and static assets
// into a static website.
package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitebuilder/cmd/sitebuilder/commands"
	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}

	parser := kong.Parse(&cli,
		kong.Name("sitebuilder"),
		kong.Description("Build a static blog from markdown posts, HTML pages and static assets."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)

	if err := parser.Run(global, &cli); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose > 0, global.Logger)
		os.Exit(adapter.Report(err))
	}
}
