package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"
	virmcp "github.com/peterkuimelis/virologists/internal/mcp"
)

func main() {
	rules := flag.String("rules", "", "YAML rules file (defaults if empty)")
	flag.Parse()

	virmcp.SetRulesFile(*rules)

	s := server.NewMCPServer("virologists", "1.0.0")
	virmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
