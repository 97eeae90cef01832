package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/greenscope/leaf-tools-mcp/internal/classify"
	"github.com/greenscope/leaf-tools-mcp/internal/server"
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
			fmt.Printf("leaf-tools-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("leaf-tools-mcp - MCP server for plant leaf disease severity analysis")
			fmt.Println()
			fmt.Println("Usage: leaf-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables (also read from a .env file):")
			fmt.Println("  LEAF_MCP_LOG_LEVEL=debug     Enable debug logging")
			fmt.Println("  LEAF_MCP_RANGES=<path>       JSON range table overriding the default")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			return
		}
	}

	// Optional .env alongside the binary; absence is not an error.
	_ = godotenv.Load()

	// Logging goes to stderr, stdout carries the MCP protocol.
	level := zerolog.InfoLevel
	if os.Getenv("LEAF_MCP_LOG_LEVEL") == "debug" {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()

	ranges, err := loadRanges(os.Getenv("LEAF_MCP_RANGES"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load range table")
	}

	log.Debug().
		Str("version", Version).
		Str("build_time", BuildTime).
		Str("commit", GitCommit).
		Msg("starting leaf-tools-mcp")

	srv := server.New(log, ranges)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// loadRanges reads a JSON range table from path. An empty path selects the
// built-in default table.
func loadRanges(path string) (classify.RangeTable, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return classify.LoadRanges(f)
}
