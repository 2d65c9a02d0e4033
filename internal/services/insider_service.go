/**
 * @description
 * Insider sentiment service.
 * Partitions a company's recent insider transactions into buy/sell buckets by
 * transaction-type keyword and labels the net position bullish/bearish/neutral.
 * No statistical weighting and no time decay: a single large sale outweighs
 * many small buys.
 *
 * @dependencies
 * - gorm.io/gorm
 * - internal/models
 */

package services

import (
	"context"
	"strings"
	"time"

	"github.com/resource-capital/backend/internal/models"
	"gorm.io/gorm"
)

// DefaultLookbackDays is the default insider sentiment window
const DefaultLookbackDays = 90

var (
	buyKeywords  = []string{"buy", "purchase", "acquisition", "acquire"}
	sellKeywords = []string{"sell", "sale", "disposition", "dispose"}
)

type InsiderService struct {
	DB *gorm.DB
}

func NewInsiderService(db *gorm.DB) *InsiderService {
	return &InsiderService{DB: db}
}

// GetSentiment fetches transactions within the window and summarizes them
func (s *InsiderService) GetSentiment(ctx context.Context, ticker string, windowDays int) (*models.InsiderSentiment, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if windowDays <= 0 {
		windowDays = DefaultLookbackDays
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)

	var transactions []models.InsiderTransaction
	if err := s.DB.WithContext(ctx).
		Where("ticker = ? AND transaction_date >= ?", ticker, cutoff).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}

	summary := SummarizeInsiderActivity(ticker, transactions, windowDays)
	return &summary, nil
}

// GetTransactions returns the raw window of transactions for the detail page
func (s *InsiderService) GetTransactions(ctx context.Context, ticker string, windowDays int) ([]models.InsiderTransaction, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if windowDays <= 0 {
		windowDays = DefaultLookbackDays
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)

	var transactions []models.InsiderTransaction
	if err := s.DB.WithContext(ctx).
		Where("ticker = ? AND transaction_date >= ?", ticker, cutoff).
		Order("transaction_date DESC").
		Find(&transactions).Error; err != nil {
		return nil, err
	}
	return transactions, nil
}

// SummarizeInsiderActivity buckets transactions by type keyword and labels the
// sentiment by the sign of net shares. Transaction types matching neither
// bucket (option grants, transfers) are ignored.
func SummarizeInsiderActivity(ticker string, transactions []models.InsiderTransaction, windowDays int) models.InsiderSentiment {
	summary := models.InsiderSentiment{
		Ticker:     ticker,
		WindowDays: windowDays,
	}

	for _, tx := range transactions {
		txType := strings.ToLower(tx.TransactionType)
		switch {
		case matchesAny(txType, buyKeywords):
			summary.BuyCount++
			summary.BuyShares += tx.Shares
			summary.BuyValue += tx.Value
		case matchesAny(txType, sellKeywords):
			summary.SellCount++
			summary.SellShares += tx.Shares
			summary.SellValue += tx.Value
		}
	}

	summary.NetShares = summary.BuyShares - summary.SellShares
	switch {
	case summary.NetShares > 0:
		summary.Sentiment = "bullish"
	case summary.NetShares < 0:
		summary.Sentiment = "bearish"
	default:
		summary.Sentiment = "neutral"
	}

	return summary
}

func matchesAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
