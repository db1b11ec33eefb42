package model

type BatchStatus string

const (
	StatusAvailable BatchStatus = "AVAILABLE"
	StatusPurchased BatchStatus = "PURCHASED"
	StatusInTransit BatchStatus = "IN_TRANSIT"
	StatusRetail    BatchStatus = "RETAIL"
	StatusSoldOut   BatchStatus = "SOLD_OUT"
)

// DistributorStage reports whether the batch sits in the combined
// "bought by distributor, not yet retailed" stage. The farmer-side
// listing carries PURCHASED while the inventory copy rides IN_TRANSIT.
func (s BatchStatus) DistributorStage() bool {
	return s == StatusPurchased || s == StatusInTransit
}

type Stage string

const (
	StageFarmer         Stage = "FARMER"
	StageDistributor    Stage = "DISTRIBUTOR"
	StageRetailer       Stage = "RETAILER"
	StageConsumer       Stage = "CONSUMER"
	StageConsumerDirect Stage = "CONSUMER_DIRECT"
)

// DistributorCharges is the per-kg charge breakdown a distributor adds
// on top of the marked-up farm price.
type DistributorCharges struct {
	Transportation int64 `json:"transportation"`
	Storage        int64 `json:"storage"`
	Handling       int64 `json:"handling"`
	Total          int64 `json:"total"`
}

// NewDistributorCharges sums the breakdown into Total.
func NewDistributorCharges(transportation, storage, handling int64) DistributorCharges {
	return DistributorCharges{
		Transportation: transportation,
		Storage:        storage,
		Handling:       handling,
		Total:          transportation + storage + handling,
	}
}

// HistoryEntry is one stage of a batch's price trail. History is
// append-only; entries are never reordered or edited.
type HistoryEntry struct {
	Stage    Stage               `json:"stage"`
	Price    int64               `json:"price"`
	TS       int64               `json:"ts"` // unix millis
	Charges  *DistributorCharges `json:"charges,omitempty"`
	Margin   *int64              `json:"margin,omitempty"`
	Quantity *int64              `json:"quantity,omitempty"`
}

// Batch is a tracked unit of produce from listing through sale.
// Derived price fields are written once by the stage that computes
// them and never recomputed by later stages.
type Batch struct {
	ID     string      `json:"id"`
	Crop   string      `json:"crop"`
	Grade  string      `json:"grade"`
	Qty    int64       `json:"qty"`
	Price  int64       `json:"price"` // farm asking price per kg
	Notes  string      `json:"notes"`
	Farmer string      `json:"farmer"`
	Status BatchStatus `json:"status"`

	History []HistoryEntry `json:"history"`

	FarmerPrice        int64               `json:"farmerPrice,omitempty"`
	DistributorPrice   int64               `json:"distributorPrice,omitempty"`
	DistributorCharges *DistributorCharges `json:"distributorCharges,omitempty"`
	RetailPrice        int64               `json:"retailPrice,omitempty"`
	RetailMargin       int64               `json:"retailMargin,omitempty"`
	TotalMargin        int64               `json:"totalMargin,omitempty"`
}

// CurrentPrice is the price at the most recent stage, falling back to
// the farm asking price for a batch with no history yet.
func (b *Batch) CurrentPrice() int64 {
	if len(b.History) == 0 {
		return b.Price
	}
	return b.History[len(b.History)-1].Price
}
