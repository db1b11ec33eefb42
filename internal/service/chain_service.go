package service

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-agrichain/internal/model"
	"go-agrichain/internal/pricing"
	"go-agrichain/internal/store"
	"go-agrichain/internal/ws"
	"go-agrichain/pkg/batchid"
	"go-agrichain/pkg/validator"
)

// Sample shipment locations for the telemetry snapshot (Delhi NCR).
var telemetryLocations = []string{
	"28.6139, 77.2090",
	"28.7041, 77.1025",
	"28.5355, 77.3910",
	"28.4595, 77.0266",
}

var ecoScores = []string{"A+", "A", "B", "B+"}

type CreateListingRequest struct {
	Crop   string `json:"crop" validate:"required"`
	Grade  string `json:"grade"`
	Qty    int64  `json:"qty" validate:"required,gt=0"`
	Price  int64  `json:"price" validate:"required,gt=0"`
	Notes  string `json:"notes"`
	Farmer string `json:"farmer"`
}

type DistributorPurchaseRequest struct {
	Transportation int64 `json:"transportation" validate:"gte=0"`
	Storage        int64 `json:"storage" validate:"gte=0"`
	Handling       int64 `json:"handling" validate:"gte=0"`
}

type RetailRequest struct {
	Margin int64 `json:"margin" validate:"gte=0"`
}

type ConsumerPurchaseRequest struct {
	Qty     int64                 `json:"qty" validate:"required,gt=0"`
	Channel model.PurchaseChannel `json:"channel" validate:"required,oneof=retail direct"`
}

type Stats struct {
	Farmers       int    `json:"farmers"`
	Batches       int    `json:"batches"`
	OnTimePercent int    `json:"onTimePercent"`
	EcoScore      string `json:"ecoScore"`
}

type ChainService interface {
	CreateListing(req *CreateListingRequest) (*model.Batch, error)
	SeedListings() ([]model.Batch, error)
	DistributorPurchase(batchID string, req *DistributorPurchaseRequest) (*model.Batch, error)
	RetailerPurchase(batchID string, req *RetailRequest) (*model.Batch, error)
	ConsumerPurchase(batchID string, req *ConsumerPurchaseRequest) (*model.ConsumerPurchase, error)
	RefreshTelemetry() (*model.Telemetry, error)
	Stats() (*Stats, error)
	Listings(status model.BatchStatus) ([]model.Batch, error)
	Inventory() ([]model.Batch, error)
	DistributorPurchases() ([]model.DistributorPurchase, error)
	RetailPurchases() ([]model.RetailPurchase, error)
	ConsumerPurchases() ([]model.ConsumerPurchase, error)
	Telemetry() (*model.Telemetry, error)
}

// chainService owns every ledger mutation. The store gives no
// isolation between callers, so the whole load-mutate-save cycle runs
// under one mutex; cross-process writers remain unprotected by design.
type chainService struct {
	mu     sync.Mutex
	store  store.LedgerStore
	hub    *ws.Hub
	now    func() time.Time
	markup func() float64
}

func NewChainService(st store.LedgerStore, hub *ws.Hub) ChainService {
	return &chainService{
		store:  st,
		hub:    hub,
		now:    time.Now,
		markup: pricing.DrawMarkup,
	}
}

func (s *chainService) CreateListing(req *CreateListingRequest) (*model.Batch, error) {
	if err := validator.Error(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	batch := s.newListing(state, req)
	state.Listings = append(state.Listings, batch)

	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	s.publish("listing_created", batch, fmt.Sprintf("Listing %s created for %s", batch.ID, batch.Crop))
	return &batch, nil
}

func (s *chainService) SeedListings() ([]model.Batch, error) {
	samples := []CreateListingRequest{
		{Crop: "Wheat", Grade: "A", Qty: 500, Price: 22, Notes: "Organic certified", Farmer: "Demo Farmer"},
		{Crop: "Rice", Grade: "B", Qty: 800, Price: 28, Notes: "Premium basmati", Farmer: "Demo Farmer"},
		{Crop: "Tomato", Grade: "A", Qty: 300, Price: 18, Notes: "Greenhouse grown", Farmer: "Demo Farmer"},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	seeded := make([]model.Batch, 0, len(samples))
	for i := range samples {
		batch := s.newListing(state, &samples[i])
		state.Listings = append(state.Listings, batch)
		seeded = append(seeded, batch)
	}

	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	s.publish("listings_seeded", seeded, fmt.Sprintf("Seeded %d demo listings", len(seeded)))
	return seeded, nil
}

// newListing builds an AVAILABLE batch with its FARMER history entry.
// Caller holds the mutex and appends the result to state.Listings.
func (s *chainService) newListing(state *model.LedgerState, req *CreateListingRequest) model.Batch {
	farmer := req.Farmer
	if farmer == "" {
		farmer = fmt.Sprintf("Farmer #%d", state.DistinctFarmers()+1)
	}
	return model.Batch{
		ID:     s.freshID(state),
		Crop:   req.Crop,
		Grade:  req.Grade,
		Qty:    req.Qty,
		Price:  req.Price,
		Notes:  req.Notes,
		Farmer: farmer,
		Status: model.StatusAvailable,
		History: []model.HistoryEntry{
			{Stage: model.StageFarmer, Price: req.Price, TS: s.now().UnixMilli()},
		},
	}
}

// freshID draws identifiers until one is unused in the document.
func (s *chainService) freshID(state *model.LedgerState) string {
	id := batchid.New()
	for state.HasBatchID(id) {
		id = batchid.New()
	}
	return id
}

func (s *chainService) DistributorPurchase(batchID string, req *DistributorPurchaseRequest) (*model.Batch, error) {
	if err := validator.Error(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	listing := state.FindListing(batchID)
	if listing == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	if listing.Status != model.StatusAvailable {
		return nil, fmt.Errorf("%w: batch %s is %s", ErrInvalidState, batchID, listing.Status)
	}

	charges := model.NewDistributorCharges(req.Transportation, req.Storage, req.Handling)
	distPrice := pricing.DistributorPrice(listing.Price, s.markup(), charges)
	ts := s.now().UnixMilli()

	listing.History = append(listing.History, model.HistoryEntry{
		Stage:   model.StageDistributor,
		Price:   distPrice,
		TS:      ts,
		Charges: &charges,
	})
	listing.Status = model.StatusPurchased
	listing.FarmerPrice = listing.Price
	listing.DistributorPrice = distPrice
	listing.DistributorCharges = &charges

	inv := *listing
	inv.Status = model.StatusInTransit
	inv.History = append([]model.HistoryEntry(nil), listing.History...)
	state.Inventory = append(state.Inventory, inv)

	state.Purchases = append(state.Purchases, model.DistributorPurchase{
		ID:               uuid.New(),
		BatchID:          batchID,
		Crop:             listing.Crop,
		Qty:              listing.Qty,
		FarmerPrice:      listing.Price,
		DistributorPrice: distPrice,
		Charges:          charges,
		TS:               ts,
	})

	// Shipment goes live: refresh the tracking snapshot with it.
	s.refreshTelemetryLocked(state)

	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	s.publish("batch_purchased", inv, fmt.Sprintf("Distributor purchased %s at %d/kg", batchID, distPrice))
	return &inv, nil
}

func (s *chainService) RetailerPurchase(batchID string, req *RetailRequest) (*model.Batch, error) {
	if err := validator.Error(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	inv := state.FindInventory(batchID)
	if inv == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}
	if !inv.Status.DistributorStage() {
		return nil, fmt.Errorf("%w: batch %s is %s", ErrInvalidState, batchID, inv.Status)
	}
	if inv.RetailPrice != 0 {
		return nil, fmt.Errorf("%w: batch %s already has a retail price", ErrInvalidState, batchID)
	}

	retailPrice := pricing.RetailPrice(inv.DistributorPrice, req.Margin)
	totalMargin := pricing.TotalMargin(inv.FarmerPrice, retailPrice)
	ts := s.now().UnixMilli()
	margin := req.Margin

	inv.History = append(inv.History, model.HistoryEntry{
		Stage:  model.StageRetailer,
		Price:  retailPrice,
		TS:     ts,
		Margin: &margin,
	})
	inv.Status = model.StatusRetail
	inv.RetailPrice = retailPrice
	inv.RetailMargin = margin
	inv.TotalMargin = totalMargin

	state.RetailPurchases = append(state.RetailPurchases, model.RetailPurchase{
		ID:               uuid.New(),
		BatchID:          batchID,
		Crop:             inv.Crop,
		DistributorPrice: inv.DistributorPrice,
		RetailPrice:      retailPrice,
		Margin:           margin,
		TotalMargin:      totalMargin,
		TS:               ts,
	})

	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	s.publish("retail_priced", *inv, fmt.Sprintf("Retailer priced %s at %d/kg (%d%% margin)", batchID, retailPrice, margin))
	return inv, nil
}

func (s *chainService) ConsumerPurchase(batchID string, req *ConsumerPurchaseRequest) (*model.ConsumerPurchase, error) {
	if err := validator.Error(req); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidation, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	var batch *model.Batch
	var stage model.Stage
	var unitPrice int64

	switch req.Channel {
	case model.ChannelDirect:
		batch = state.FindListing(batchID)
		if batch == nil {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		if batch.Status != model.StatusAvailable {
			return nil, fmt.Errorf("%w: batch %s is %s", ErrInvalidState, batchID, batch.Status)
		}
		stage = model.StageConsumerDirect
		unitPrice = batch.Price
	default:
		batch = state.FindInventory(batchID)
		if batch == nil {
			return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
		}
		if batch.Status != model.StatusRetail {
			return nil, fmt.Errorf("%w: batch %s is %s", ErrInvalidState, batchID, batch.Status)
		}
		stage = model.StageConsumer
		unitPrice = batch.RetailPrice
	}

	if req.Qty > batch.Qty {
		return nil, fmt.Errorf("%w: requested %d kg, %d kg remaining", ErrInsufficientQuantity, req.Qty, batch.Qty)
	}

	ts := s.now().UnixMilli()
	qty := req.Qty

	batch.Qty -= qty
	batch.History = append(batch.History, model.HistoryEntry{
		Stage:    stage,
		Price:    unitPrice,
		TS:       ts,
		Quantity: &qty,
	})
	if batch.Qty == 0 {
		batch.Status = model.StatusSoldOut
	}

	record := model.ConsumerPurchase{
		ID:        uuid.New(),
		BatchID:   batchID,
		Crop:      batch.Crop,
		Channel:   req.Channel,
		Qty:       qty,
		UnitPrice: unitPrice,
		Total:     unitPrice * qty,
		TS:        ts,
	}
	if req.Channel == model.ChannelDirect {
		est := pricing.EstimatedRetail(batch.Price)
		record.EstimatedRetailPrice = est
		record.Savings = (est - unitPrice) * qty
	}
	state.ConsumerPurchases = append(state.ConsumerPurchases, record)

	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	s.publish("consumer_purchase", record, fmt.Sprintf("Consumer bought %d kg of %s from %s", qty, batch.Crop, batchID))
	return &record, nil
}

func (s *chainService) RefreshTelemetry() (*model.Telemetry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	t := s.refreshTelemetryLocked(state)

	if err := s.store.Save(state); err != nil {
		return nil, err
	}

	s.publish("telemetry_update", t, "Tracking snapshot refreshed")
	return t, nil
}

// refreshTelemetryLocked overwrites the snapshot with a simulated
// reading. Caller holds the mutex and saves the state.
func (s *chainService) refreshTelemetryLocked(state *model.LedgerState) *model.Telemetry {
	t := &model.Telemetry{
		GPS:  telemetryLocations[rand.Intn(len(telemetryLocations))],
		Temp: fmt.Sprintf("%.1f°C", 15+rand.Float64()*15),
		Hum:  fmt.Sprintf("%.0f%%", 50+rand.Float64()*30),
		TS:   s.now().UnixMilli(),
	}
	state.Telemetry = t
	return t
}

func (s *chainService) Stats() (*Stats, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return &Stats{
		Farmers:       state.DistinctFarmers(),
		Batches:       len(state.Listings),
		OnTimePercent: 90 + rand.Intn(10),
		EcoScore:      ecoScores[rand.Intn(len(ecoScores))],
	}, nil
}

func (s *chainService) Listings(status model.BatchStatus) ([]model.Batch, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	if status == "" {
		return state.Listings, nil
	}
	filtered := []model.Batch{}
	for _, b := range state.Listings {
		if b.Status == status {
			filtered = append(filtered, b)
		}
	}
	return filtered, nil
}

func (s *chainService) Inventory() ([]model.Batch, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return state.Inventory, nil
}

func (s *chainService) DistributorPurchases() ([]model.DistributorPurchase, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return state.Purchases, nil
}

func (s *chainService) RetailPurchases() ([]model.RetailPurchase, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return state.RetailPurchases, nil
}

func (s *chainService) ConsumerPurchases() ([]model.ConsumerPurchase, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return state.ConsumerPurchases, nil
}

func (s *chainService) Telemetry() (*model.Telemetry, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}
	return state.Telemetry, nil
}

// publish pushes a ledger event to connected views without blocking
// the mutation path.
func (s *chainService) publish(action string, payload interface{}, message string) {
	if s.hub == nil {
		return
	}
	go s.hub.Publish(ws.Event{
		Type:    "ledger_update",
		Action:  action,
		Payload: payload,
		Message: message,
	})
}
