// Package main provides the extractor command-line tool for county property records.
package main

import (
	"context"

	"countygraph/cmd/extractor/commands"
)

func main() {
	commands.ExecuteContext(context.Background())
}
