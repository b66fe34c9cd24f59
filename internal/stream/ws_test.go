package stream

import "testing"

func TestHubOriginAllowed(t *testing.T) {
	cases := []struct {
		name           string
		origin         string
		reqHost        string
		allowedOrigins []string
		want           bool
	}{
		{name: "no origin header", origin: "", reqHost: "exchange.example:9001", want: true},
		{name: "same host as request, no allow-list", origin: "http://exchange.example:9001", reqHost: "exchange.example:9001", want: true},
		{name: "localhost always allowed", origin: "http://localhost:3000", reqHost: "exchange.example:9001", want: true},
		{name: "unrelated origin, no allow-list", origin: "http://evil.example", reqHost: "exchange.example:9001", want: false},
		{name: "origin in explicit allow-list", origin: "https://dashboard.example", reqHost: "exchange.example:9001", allowedOrigins: []string{"https://dashboard.example"}, want: true},
		{name: "origin not in explicit allow-list", origin: "https://dashboard.example", reqHost: "exchange.example:9001", allowedOrigins: []string{"https://other.example"}, want: false},
		{name: "malformed origin", origin: "not a url", reqHost: "exchange.example:9001", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			hub := NewHub(tc.allowedOrigins)
			if got := hub.originAllowed(tc.origin, tc.reqHost); got != tc.want {
				t.Fatalf("originAllowed(%q, %q) = %v, want %v", tc.origin, tc.reqHost, got, tc.want)
			}
		})
	}
}
