package store

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-agrichain/internal/model"
)

func sampleState() *model.LedgerState {
	charges := model.NewDistributorCharges(2, 1, 1)
	margin := int64(20)
	state := model.NewLedgerState()
	state.Listings = append(state.Listings, model.Batch{
		ID:     "B7K2Q9X",
		Crop:   "Wheat",
		Grade:  "A",
		Qty:    500,
		Price:  22,
		Farmer: "Farmer #1",
		Status: model.StatusPurchased,
		History: []model.HistoryEntry{
			{Stage: model.StageFarmer, Price: 22, TS: 1700000000000},
			{Stage: model.StageDistributor, Price: 29, TS: 1700000060000, Charges: &charges},
		},
		FarmerPrice:        22,
		DistributorPrice:   29,
		DistributorCharges: &charges,
	})
	state.Inventory = append(state.Inventory, model.Batch{
		ID:     "B7K2Q9X",
		Crop:   "Wheat",
		Qty:    500,
		Price:  22,
		Status: model.StatusRetail,
		History: []model.HistoryEntry{
			{Stage: model.StageRetailer, Price: 36, TS: 1700000120000, Margin: &margin},
		},
		RetailPrice:  36,
		RetailMargin: 20,
		TotalMargin:  64,
	})
	state.Purchases = append(state.Purchases, model.DistributorPurchase{
		ID: uuid.New(), BatchID: "B7K2Q9X", Crop: "Wheat", Qty: 500,
		FarmerPrice: 22, DistributorPrice: 29, Charges: charges, TS: 1700000060000,
	})
	state.Telemetry = &model.Telemetry{GPS: "28.6139, 77.2090", Temp: "21.4°C", Hum: "63%", TS: 1700000060000}
	return state
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	st := NewMemoryStore()
	original := sampleState()

	require.NoError(t, st.Save(original))
	loaded, err := st.Load()
	require.NoError(t, err)

	// Serialization is lossless for every defined field.
	assert.Equal(t, original, loaded)

	// save(load()) is a no-op on the document.
	require.NoError(t, st.Save(loaded))
	again, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, loaded, again)
}

func TestLoadEmptyStoreReturnsEmptyDocument(t *testing.T) {
	st := NewMemoryStore()
	state, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, model.NewLedgerState(), state)
	assert.NotNil(t, state.Listings)
	assert.Nil(t, state.Telemetry)
}

func TestLoadMalformedBlobStartsFresh(t *testing.T) {
	st := NewMemoryStoreWithRaw([]byte("{this is not json"))
	state, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, model.NewLedgerState(), state)
}

func TestLoadPartialBlobDefaultsCollections(t *testing.T) {
	st := NewMemoryStoreWithRaw([]byte(`{"listings":null,"telemetry":{"gps":"28.6139, 77.2090"}}`))
	state, err := st.Load()
	require.NoError(t, err)
	assert.NotNil(t, state.Listings)
	assert.NotNil(t, state.Purchases)
	assert.NotNil(t, state.Inventory)
	assert.NotNil(t, state.RetailPurchases)
	assert.NotNil(t, state.ConsumerPurchases)
	require.NotNil(t, state.Telemetry)
	assert.Equal(t, "28.6139, 77.2090", state.Telemetry.GPS)
}
