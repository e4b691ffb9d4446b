package main

import "github.com/yammerjp/demovectors/cmd/demovectors"

// goreleaser の ldflags で上書きされる
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	demovectors.Run(demovectors.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
		BuiltBy: builtBy,
	})
}
