package engine_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ordercore/internal/book"
	"ordercore/internal/engine"
	"ordercore/internal/price"
)

type collectingSink struct {
	trades []book.Trade
}

func (s *collectingSink) Publish(t book.Trade) { s.trades = append(s.trades, t) }

func limitOrder(id uint64, side book.Side, amount, p float64) book.Order {
	lp := price.New(p)
	return book.Order{ID: id, Side: side, Kind: book.Limit, Price: &lp, Amount: amount, TradingPair: "BTC-USD"}
}

func marketOrder(id uint64, side book.Side, amount float64) book.Order {
	return book.Order{ID: id, Side: side, Kind: book.Market, Amount: amount, TradingPair: "BTC-USD"}
}

var now = time.Unix(0, 0)

// S1 — Add resting limit bid.
func TestAddRestingLimitBid(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	trades := e.Submit(limitOrder(1, book.Bid, 1.0, 10000.0), now)
	assert.Empty(t, trades)

	bids := e.AllBids()
	require.Len(t, bids, 1)
	assert.Equal(t, uint64(1), bids[0].ID)
	assert.Equal(t, 1.0, bids[0].Amount)

	best, ok := e.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(10000), best.Integral())
}

// S2 — Crossing limit bid hits resting ask.
func TestCrossingLimitBidHitsAsk(t *testing.T) {
	sink := &collectingSink{}
	e := engine.New("BTC-USD", sink)

	e.Submit(limitOrder(10, book.Ask, 1.0, 9500.0), now)
	trades := e.Submit(limitOrder(11, book.Bid, 1.0, 9600.0), now)

	require.Len(t, trades, 1)
	tr := trades[0]
	assert.Equal(t, uint64(11), tr.AggressorID)
	assert.Equal(t, uint64(10), tr.RestingID)
	assert.Equal(t, 1.0, tr.Amount)
	assert.Equal(t, uint64(9500), tr.Price.Integral())
	assert.Equal(t, book.Bid, tr.Side)

	assert.Empty(t, e.AllBids())
	assert.Empty(t, e.AllAsks())
	assert.Equal(t, trades, sink.trades)
}

// S3 — Partial fill, residual rests.
func TestPartialFillResidualRests(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Ask, 2.0, 9500.0), now)
	trades := e.Submit(limitOrder(2, book.Bid, 1.0, 9600.0), now)

	require.Len(t, trades, 1)
	assert.Equal(t, 1.0, trades[0].Amount)

	asks := e.AllAsks()
	require.Len(t, asks, 1)
	assert.Equal(t, uint64(1), asks[0].ID)
	assert.Equal(t, 1.0, asks[0].Amount)

	assert.Empty(t, e.AllBids())
}

// S4 — Best-of a mixed book.
func TestBestOfMixedBook(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Ask, 1.0, 9800.0), now)
	e.Submit(limitOrder(2, book.Ask, 1.0, 9700.0), now)
	e.Submit(limitOrder(3, book.Bid, 1.0, 9400.0), now)
	trades := e.Submit(limitOrder(4, book.Bid, 1.0, 9600.0), now)

	assert.Empty(t, trades)

	bestAsk, ok := e.BestAsk()
	require.True(t, ok)
	assert.Equal(t, uint64(9700), bestAsk.Integral())

	bestBid, ok := e.BestBid()
	require.True(t, ok)
	assert.Equal(t, uint64(9600), bestBid.Integral())
}

// S5 — Market order sweeps depth across two levels.
func TestMarketOrderSweepsDepth(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(100, book.Ask, 1.0, 100.0), now)
	e.Submit(limitOrder(101, book.Ask, 2.0, 101.0), now)

	trades := e.Submit(marketOrder(1, book.Bid, 2.5), now)

	require.Len(t, trades, 2)
	assert.Equal(t, uint64(100), trades[0].RestingID)
	assert.Equal(t, 1.0, trades[0].Amount)
	assert.Equal(t, uint64(101), trades[1].RestingID)
	assert.Equal(t, 1.5, trades[1].Amount)

	asks := e.AllAsks()
	require.Len(t, asks, 1)
	assert.Equal(t, uint64(101), asks[0].ID)
	assert.Equal(t, 0.5, asks[0].Amount)
}

// S6 — Protective-priced market order rejects on an unmet cross.
func TestProtectivePricedMarketRejectsOnCross(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Ask, 1.0, 110.0), now)

	protective := price.New(100.0)
	trades := e.Submit(book.Order{ID: 2, Side: book.Bid, Kind: book.Market, Amount: 1.0, Price: &protective}, now)

	assert.Empty(t, trades)
	asks := e.AllAsks()
	require.Len(t, asks, 1)
	assert.Equal(t, 1.0, asks[0].Amount)
}

func TestMarketOrderResidualIsDropped(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Ask, 1.0, 100.0), now)
	trades := e.Submit(marketOrder(2, book.Bid, 5.0), now)

	require.Len(t, trades, 1)
	assert.Empty(t, e.AllAsks())
	assert.Empty(t, e.AllBids())
	assert.Empty(t, e.MarketOrders())
}

func TestFIFOWithinPriceLevel(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Ask, 1.0, 100.0), now)
	e.Submit(limitOrder(2, book.Ask, 1.0, 100.0), now)

	trades := e.Submit(marketOrder(3, book.Bid, 1.5), now)

	require.Len(t, trades, 2)
	assert.Equal(t, uint64(1), trades[0].RestingID)
	assert.Equal(t, 1.0, trades[0].Amount)
	assert.Equal(t, uint64(2), trades[1].RestingID)
	assert.Equal(t, 0.5, trades[1].Amount)
}

func TestBookNeverCrossedAtRest(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Bid, 1.0, 100.0), now)
	e.Submit(limitOrder(2, book.Ask, 1.0, 105.0), now)

	bestBid, _ := e.BestBid()
	bestAsk, _ := e.BestAsk()
	assert.True(t, bestBid.Less(bestAsk))
}

func TestExactHeadMatchLeavesNoResidual(t *testing.T) {
	e := engine.New("BTC-USD", nil)

	e.Submit(limitOrder(1, book.Ask, 1.0, 100.0), now)
	trades := e.Submit(limitOrder(2, book.Bid, 1.0, 100.0), now)

	require.Len(t, trades, 1)
	assert.Empty(t, e.AllAsks())
	assert.Empty(t, e.AllBids())
}

func TestGetByID(t *testing.T) {
	e := engine.New("BTC-USD", nil)
	e.Submit(limitOrder(7, book.Bid, 1.0, 100.0), now)

	got, ok := e.GetByID(7)
	require.True(t, ok)
	assert.Equal(t, uint64(7), got.ID)

	_, ok = e.GetByID(999)
	assert.False(t, ok)
}
