package demovectors

import (
	"fmt"
	"io"
)

func runVersion(w io.Writer) {
	tmpl := `demovectors version %s
  commit: %s
  date: %s
  built by: %s
`
	fmt.Fprintf(w, tmpl, buildInfo.Version, buildInfo.Commit, buildInfo.Date, buildInfo.BuiltBy)
}
