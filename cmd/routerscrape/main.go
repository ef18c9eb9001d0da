package main

import (
	"routerscrape/cmd/routerscrape/commands"
	"routerscrape/lib/osutil"
)

func main() {
	ctx, stop := osutil.SignalContext()
	defer stop()
	commands.ExecuteContext(ctx)
}
