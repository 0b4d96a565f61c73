package reporting

import (
	"github.com/shopspring/decimal"

	"github.com/mamadbah2/malynka/internal/domain/models"
)

// Summarize aggregates receivings and sales into a StatsSummary. The result
// does not depend on input order and is all zeros for empty input.
func Summarize(receivings []models.Receiving, sales []models.Sale) models.StatsSummary {
	var summary models.StatsSummary

	hasPrice := false
	for _, receiving := range receivings {
		summary.TotalWeight += receiving.TotalWeight
		summary.TotalPrice += receiving.TotalPrice

		for _, record := range receiving.Records {
			if !hasPrice {
				summary.MinPrice, summary.MaxPrice = record.Price, record.Price
				hasPrice = true
				continue
			}
			if record.Price < summary.MinPrice {
				summary.MinPrice = record.Price
			}
			if record.Price > summary.MaxPrice {
				summary.MaxPrice = record.Price
			}
		}
	}

	for _, sale := range sales {
		summary.SoldWeight += sale.Weight
		summary.Earned += sale.Amount()
	}

	summary.AvgPrice = averagePrice(summary.TotalPrice, summary.TotalWeight)
	return summary
}

func averagePrice(totalPrice, totalWeight float64) float64 {
	if totalWeight <= 0 {
		return 0
	}
	return decimal.NewFromFloat(totalPrice / totalWeight).Round(2).InexactFloat64()
}
