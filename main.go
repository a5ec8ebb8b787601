package main

import (
	"github.com/scholarly-tools/litingest/cmd"

	// Register format plugins
	_ "github.com/scholarly-tools/litingest/format/docjson"
	_ "github.com/scholarly-tools/litingest/format/jats"
	_ "github.com/scholarly-tools/litingest/format/pubmed"
)

func main() {
	cmd.Execute()
}
