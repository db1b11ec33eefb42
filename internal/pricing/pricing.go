// Package pricing computes each stage's price from the previous
// stage's price. All prices are whole currency units per kg; rounding
// happens once, at the stage computation itself.
package pricing

import (
	"math"
	"math/rand"

	"go-agrichain/internal/model"
)

const (
	// Distributor base markup is drawn uniformly from [MinMarkup, MaxMarkup).
	MinMarkup = 0.10
	MaxMarkup = 0.20

	// estimatedRetailFactor is the heuristic used to tell a
	// direct-from-farm buyer what the same kg would have cost at retail.
	estimatedRetailFactor = 1.6
)

// DrawMarkup returns a distributor base markup in [MinMarkup, MaxMarkup).
// Randomness here is deliberate demo variability, not a pricing model.
func DrawMarkup() float64 {
	return MinMarkup + rand.Float64()*(MaxMarkup-MinMarkup)
}

// DistributorPrice applies the base markup to the farm price and adds
// the charge total on top of the rounded result.
func DistributorPrice(farmPrice int64, markup float64, charges model.DistributorCharges) int64 {
	return round(float64(farmPrice)*(1+markup)) + charges.Total
}

// RetailPrice applies the retailer's percentage margin to the
// distributor price.
func RetailPrice(distributorPrice int64, marginPercent int64) int64 {
	return round(float64(distributorPrice) * (1 + float64(marginPercent)/100))
}

// TotalMargin reports the end-to-end percentage increase from farm
// price to retail price.
func TotalMargin(farmPrice, retailPrice int64) int64 {
	return round(float64(retailPrice-farmPrice) / float64(farmPrice) * 100)
}

// EstimatedRetail estimates the retail price of a batch sold straight
// off the farm.
func EstimatedRetail(farmPrice int64) int64 {
	return round(float64(farmPrice) * estimatedRetailFactor)
}

func round(v float64) int64 {
	return int64(math.Round(v))
}
