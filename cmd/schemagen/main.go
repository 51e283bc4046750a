// Command schemagen is the CLI entry point for the schema-to-
// configuration compiler.
package main

import "schemaforge/internal/cli"

func main() {
	cli.Execute()
}
