// Command mcp serves the built-in toolkits over MCP stdio, so MCP
// clients can discover and call the file, code, and JSON tools.
//
// Usage:
//
//	go run ./cmd/mcp -base /path/to/workdir
package main

import (
	"flag"
	"log"

	"github.com/striderlabs/strider/mcp"
	"github.com/striderlabs/strider/tool"
	"github.com/striderlabs/strider/toolkit/code"
	"github.com/striderlabs/strider/toolkit/file"
	"github.com/striderlabs/strider/toolkit/jsonkit"
)

func main() {
	base := flag.String("base", ".", "working directory the file tools are confined to")
	name := flag.String("name", "strider-tools", "server name reported to MCP clients")
	flag.Parse()

	registry := tool.NewRegistry()
	tool.MustRegisterAll(registry, file.New(file.WithBasePath(*base)).Registrations())
	tool.MustRegisterAll(registry, code.New(code.WithDir(*base)).Registrations())
	tool.MustRegisterAll(registry, jsonkit.Registrations())

	if err := mcp.ServeStdio(registry, mcp.WithName(*name)); err != nil {
		log.Fatal(err)
	}
}
