package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/ironsheep/makepure-mcp/internal/colorkeep"
	"github.com/ironsheep/makepure-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("makepure-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("makepure-mcp - MCP server for selective color keeping")
			fmt.Println()
			fmt.Println("Usage: makepure-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  MAKEPURE_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println("  MAKEPURE_PREVIEW_MAX=500     Longest side of the working copy, 0 for full size")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg := server.ConfigFromEnv()
	server.Version = Version
	if cfg.LogDebug {
		log.Printf("Makepure MCP Server v%s (built %s, commit %s), preview %d",
			Version, BuildTime, GitCommit, cfg.PreviewMax)
		colorkeep.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	srv := server.NewWithConfig(cfg)
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
