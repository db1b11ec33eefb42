package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-agrichain/internal/model"
)

func TestDistributorPrice(t *testing.T) {
	charges := model.NewDistributorCharges(2, 1, 1)
	assert.Equal(t, int64(4), charges.Total)

	// round(22 * 1.15) + 4
	assert.Equal(t, int64(29), DistributorPrice(22, 0.15, charges))

	// Charges are added after rounding, not marked up.
	assert.Equal(t, int64(25), DistributorPrice(22, 0.15, model.DistributorCharges{}))
}

func TestDistributorPriceNeverBelowFarmPrice(t *testing.T) {
	for i := 0; i < 1000; i++ {
		m := DrawMarkup()
		price := DistributorPrice(22, m, model.DistributorCharges{})
		assert.GreaterOrEqual(t, price, int64(22))
	}
}

func TestRetailPrice(t *testing.T) {
	assert.Equal(t, int64(36), RetailPrice(30, 20))
	assert.Equal(t, int64(30), RetailPrice(30, 0))
}

func TestTotalMargin(t *testing.T) {
	// round((36-22)/22 * 100)
	assert.Equal(t, int64(64), TotalMargin(22, 36))
	assert.Equal(t, int64(0), TotalMargin(22, 22))
}

func TestEstimatedRetail(t *testing.T) {
	assert.Equal(t, int64(35), EstimatedRetail(22)) // round(35.2)
	assert.Equal(t, int64(16), EstimatedRetail(10))
}

func TestDrawMarkupBounds(t *testing.T) {
	for i := 0; i < 1000; i++ {
		m := DrawMarkup()
		assert.GreaterOrEqual(t, m, MinMarkup)
		assert.Less(t, m, MaxMarkup)
	}
}
