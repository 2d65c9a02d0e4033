package services

import (
	"testing"
	"time"

	"github.com/resource-capital/backend/internal/models"
)

func tx(txType string, shares, value float64, daysAgo int) models.InsiderTransaction {
	date := time.Now().AddDate(0, 0, -daysAgo)
	return models.InsiderTransaction{
		Ticker:          "AAA",
		TransactionType: txType,
		Shares:          shares,
		Value:           value,
		TransactionDate: &date,
	}
}

func TestSummarizeBearishWhenSellsOutweighBuys(t *testing.T) {
	transactions := []models.InsiderTransaction{
		tx("Buy", 400, 4000, 10),
		tx("Buy", 600, 6000, 30),
		tx("Sell", 1500, 15000, 5),
	}

	summary := SummarizeInsiderActivity("AAA", transactions, 90)

	if summary.BuyShares != 1000 {
		t.Fatalf("buy shares: got %v, want 1000", summary.BuyShares)
	}
	if summary.SellShares != 1500 {
		t.Fatalf("sell shares: got %v, want 1500", summary.SellShares)
	}
	if summary.NetShares != -500 {
		t.Fatalf("net shares: got %v, want -500", summary.NetShares)
	}
	if summary.Sentiment != "bearish" {
		t.Fatalf("sentiment: got %q, want bearish", summary.Sentiment)
	}
}

func TestSummarizeBullishAndNeutral(t *testing.T) {
	bullish := SummarizeInsiderActivity("AAA", []models.InsiderTransaction{
		tx("Acquisition in the public market", 100, 500, 1),
	}, 90)
	if bullish.Sentiment != "bullish" {
		t.Fatalf("sentiment: got %q, want bullish", bullish.Sentiment)
	}

	neutral := SummarizeInsiderActivity("AAA", nil, 90)
	if neutral.Sentiment != "neutral" {
		t.Fatalf("empty window sentiment: got %q, want neutral", neutral.Sentiment)
	}
	if neutral.NetShares != 0 {
		t.Fatalf("empty window net shares: got %v, want 0", neutral.NetShares)
	}

	balanced := SummarizeInsiderActivity("AAA", []models.InsiderTransaction{
		tx("Buy", 250, 1000, 2),
		tx("Sell", 250, 1100, 3),
	}, 90)
	if balanced.Sentiment != "neutral" {
		t.Fatalf("balanced sentiment: got %q, want neutral", balanced.Sentiment)
	}
}

func TestSummarizeIgnoresUnrelatedTypes(t *testing.T) {
	summary := SummarizeInsiderActivity("AAA", []models.InsiderTransaction{
		tx("Grant of options", 5000, 0, 4),
		tx("Transfer", 2000, 0, 8),
		tx("Sell", 100, 900, 6),
	}, 90)

	if summary.BuyCount != 0 {
		t.Fatalf("buy count: got %d, want 0", summary.BuyCount)
	}
	if summary.SellCount != 1 {
		t.Fatalf("sell count: got %d, want 1", summary.SellCount)
	}
	if summary.Sentiment != "bearish" {
		t.Fatalf("sentiment: got %q, want bearish", summary.Sentiment)
	}
}

func TestSummarizeValueBuckets(t *testing.T) {
	summary := SummarizeInsiderActivity("AAA", []models.InsiderTransaction{
		tx("Purchase", 100, 1250, 1),
		tx("Disposition", 50, 700, 2),
	}, 90)

	if summary.BuyValue != 1250 {
		t.Fatalf("buy value: got %v, want 1250", summary.BuyValue)
	}
	if summary.SellValue != 700 {
		t.Fatalf("sell value: got %v, want 700", summary.SellValue)
	}
}
