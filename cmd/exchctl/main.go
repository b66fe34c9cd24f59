package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"ordercore/internal/book"
	"ordercore/internal/price"
)

func main() {
	serverAddr := flag.String("server", "http://127.0.0.1:9001", "Base URL of the exchange server")
	action := flag.String("action", "place", "Action to perform: ['place', 'bids', 'asks', 'orders']")

	id := flag.Uint64("id", 0, "Order id (compulsory for 'place')")
	ticker := flag.String("ticker", "BTC-USD", "Trading pair")
	sideStr := flag.String("side", "buy", "Order side: 'buy' or 'sell'")
	typeStr := flag.String("type", "limit", "Order type: 'limit' or 'market'")
	orderPrice := flag.Float64("price", 100.0, "Limit price")
	qtyStr := flag.String("qty", "10", "Amount or comma-separated list (e.g. 10,20,50)")

	flag.Parse()

	side := book.Bid
	if strings.ToLower(*sideStr) == "sell" {
		side = book.Ask
	}

	kind := book.Limit
	if strings.ToLower(*typeStr) == "market" {
		kind = book.Market
	}

	switch strings.ToLower(*action) {
	case "place":
		if *id == 0 {
			fmt.Println("Error: -id is compulsory.")
			flag.Usage()
			os.Exit(1)
		}
		amounts := parseAmounts(*qtyStr)
		for i, amount := range amounts {
			order := book.Order{
				ID:          *id + uint64(i),
				Side:        side,
				Kind:        kind,
				Amount:      amount,
				TradingPair: *ticker,
			}
			if kind == book.Limit {
				p := price.New(*orderPrice)
				order.Price = &p
			}
			trades, err := placeOrder(*serverAddr, order)
			if err != nil {
				log.Printf("Failed to place order (amount %.4f): %v", amount, err)
				continue
			}
			fmt.Printf("-> Sent %s %s: %s %.4f @ %.2f (%d fills)\n",
				strings.ToUpper(*typeStr), strings.ToUpper(*sideStr), *ticker, amount, *orderPrice, len(trades))
			time.Sleep(5 * time.Millisecond)
		}

	case "bids":
		printOrders(*serverAddr + "/bids")
	case "asks":
		printOrders(*serverAddr + "/asks")
	case "orders":
		printOrders(*serverAddr + "/orders")

	default:
		log.Fatalf("Unknown action: %s", *action)
	}
}

func parseAmounts(input string) []float64 {
	parts := strings.Split(input, ",")
	var result []float64
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if val, err := strconv.ParseFloat(p, 64); err == nil {
			result = append(result, val)
		} else {
			log.Printf("Warning: invalid amount %q, skipping.", p)
		}
	}
	return result
}

func placeOrder(serverAddr string, order book.Order) ([]book.Trade, error) {
	payload, err := json.Marshal(order)
	if err != nil {
		return nil, err
	}

	resp, err := http.Post(serverAddr+"/orders", "application/json", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}

	var trades []book.Trade
	if err := json.NewDecoder(resp.Body).Decode(&trades); err != nil {
		return nil, err
	}
	return trades, nil
}

func printOrders(url string) {
	resp, err := http.Get(url)
	if err != nil {
		log.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("failed to read response: %v", err)
	}
	fmt.Println(string(body))
}
