// Package config resolves process configuration from command-line flags,
// following the flag-based convention this module's CLIs already use.
package config

import (
	"flag"
	"strings"
)

// Config is the resolved configuration for the exchanged process.
type Config struct {
	Address        string
	Port           int
	TradingPair    string
	AllowedOrigins []string
}

// Parse reads process configuration from args (typically os.Args[1:]).
func Parse(args []string) (Config, error) {
	fs := flag.NewFlagSet("exchanged", flag.ContinueOnError)

	address := fs.String("address", "0.0.0.0", "Address to bind the HTTP/WebSocket server")
	port := fs.Int("port", 9001, "Port to bind the HTTP/WebSocket server")
	tradingPair := fs.String("trading-pair", "BTC-USD", "Trading pair this engine instance matches")
	allowedOrigins := fs.String("allowed-origins", "", "Comma-separated list of origins allowed to open /ws (empty: same-host and localhost only)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return Config{
		Address:        *address,
		Port:           *port,
		TradingPair:    *tradingPair,
		AllowedOrigins: parseOrigins(*allowedOrigins),
	}, nil
}

func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			origins = append(origins, p)
		}
	}
	return origins
}
