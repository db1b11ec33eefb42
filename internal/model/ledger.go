package model

// LedgerState is the whole persisted document. Every mutation path
// loads it, changes it in memory and saves it back in full; the store
// never does partial updates.
type LedgerState struct {
	Listings          []Batch               `json:"listings"`
	Purchases         []DistributorPurchase `json:"purchases"`
	Inventory         []Batch               `json:"inventory"`
	RetailPurchases   []RetailPurchase      `json:"retailPurchases"`
	ConsumerPurchases []ConsumerPurchase    `json:"consumerPurchases"`
	Telemetry         *Telemetry            `json:"telemetry,omitempty"`
}

// NewLedgerState returns the well-defined empty document: all
// collections present and empty, no telemetry.
func NewLedgerState() *LedgerState {
	s := &LedgerState{}
	s.Normalize()
	return s
}

// Normalize re-defaults nil collections so that a document read from
// an older or partial blob always has every collection present.
func (s *LedgerState) Normalize() {
	if s.Listings == nil {
		s.Listings = []Batch{}
	}
	if s.Purchases == nil {
		s.Purchases = []DistributorPurchase{}
	}
	if s.Inventory == nil {
		s.Inventory = []Batch{}
	}
	if s.RetailPurchases == nil {
		s.RetailPurchases = []RetailPurchase{}
	}
	if s.ConsumerPurchases == nil {
		s.ConsumerPurchases = []ConsumerPurchase{}
	}
}

// FindListing returns the farmer-side listing with the given id.
func (s *LedgerState) FindListing(id string) *Batch {
	for i := range s.Listings {
		if s.Listings[i].ID == id {
			return &s.Listings[i]
		}
	}
	return nil
}

// FindInventory returns the distributor/retailer-side copy with the
// given id.
func (s *LedgerState) FindInventory(id string) *Batch {
	for i := range s.Inventory {
		if s.Inventory[i].ID == id {
			return &s.Inventory[i]
		}
	}
	return nil
}

// FindBatch searches listings first, then inventory.
func (s *LedgerState) FindBatch(id string) *Batch {
	if b := s.FindListing(id); b != nil {
		return b
	}
	return s.FindInventory(id)
}

// HasBatchID reports whether any batch, on either side, carries id.
func (s *LedgerState) HasBatchID(id string) bool {
	return s.FindBatch(id) != nil
}

// DistinctFarmers counts unique farmer labels across listings.
func (s *LedgerState) DistinctFarmers() int {
	seen := make(map[string]struct{}, len(s.Listings))
	for i := range s.Listings {
		seen[s.Listings[i].Farmer] = struct{}{}
	}
	return len(seen)
}
