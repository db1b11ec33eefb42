package service

import (
	"fmt"

	"go-agrichain/internal/model"
	"go-agrichain/internal/pricing"
	"go-agrichain/internal/store"
)

// Lookup roles. Anything other than "farmer" gets the consumer view;
// this is a display policy, not a security boundary.
const RoleFarmer = "farmer"

type BatchSummary struct {
	ID     string            `json:"id"`
	Crop   string            `json:"crop"`
	Grade  string            `json:"grade"`
	Qty    int64             `json:"qty"`
	Farmer string            `json:"farmer"`
	Status model.BatchStatus `json:"status"`
	Notes  string            `json:"notes,omitempty"`
}

// PriceStep is one history entry with its display label.
type PriceStep struct {
	Stage model.Stage `json:"stage"`
	Label string      `json:"label"`
	Price int64       `json:"price"`
	TS    int64       `json:"ts"`
}

// FinancialSummary aggregates what the originating farmer gets to see.
type FinancialSummary struct {
	FarmPrice       int64 `json:"farmPrice"`
	CurrentPrice    int64 `json:"currentPrice"`
	ValueAdded      int64 `json:"valueAdded"`
	PercentIncrease int64 `json:"percentIncrease"`
}

type QualityFlags struct {
	LedgerVerified      bool `json:"ledgerVerified"`
	SourceAuthenticated bool `json:"sourceAuthenticated"`
	GradeCertified      bool `json:"gradeCertified"`
	MonitoredStorage    bool `json:"monitoredStorage"`
}

// BatchView is the role-filtered result of a traceability lookup.
// Financial and Telemetry are farmer-only; Quality is consumer-only.
type BatchView struct {
	Role      string            `json:"role"`
	Batch     BatchSummary      `json:"batch"`
	History   []PriceStep       `json:"history"`
	Financial *FinancialSummary `json:"financial,omitempty"`
	Telemetry *model.Telemetry  `json:"telemetry,omitempty"`
	Quality   *QualityFlags     `json:"quality,omitempty"`
}

type LookupService interface {
	Lookup(batchID, role string) (*BatchView, error)
}

type lookupService struct {
	store store.LedgerStore
}

func NewLookupService(st store.LedgerStore) LookupService {
	return &lookupService{store: st}
}

// Lookup resolves a batch id to its role-filtered view, searching
// listings first and inventory second. A miss is reported through
// ErrBatchNotFound; the caller renders it as a not-found state.
func (s *lookupService) Lookup(batchID, role string) (*BatchView, error) {
	state, err := s.store.Load()
	if err != nil {
		return nil, err
	}

	batch := state.FindBatch(batchID)
	if batch == nil {
		return nil, fmt.Errorf("%w: %s", ErrBatchNotFound, batchID)
	}

	view := &BatchView{
		Batch: BatchSummary{
			ID:     batch.ID,
			Crop:   batch.Crop,
			Grade:  batch.Grade,
			Qty:    batch.Qty,
			Farmer: batch.Farmer,
			Status: batch.Status,
			Notes:  batch.Notes,
		},
		History: priceSteps(batch.History),
	}

	if role == RoleFarmer {
		view.Role = RoleFarmer
		view.Financial = financialSummary(batch)
		view.Telemetry = state.Telemetry
		return view, nil
	}

	view.Role = "consumer"
	view.Quality = &QualityFlags{
		LedgerVerified:      true,
		SourceAuthenticated: batch.Farmer != "",
		GradeCertified:      batch.Grade != "",
		MonitoredStorage:    state.Telemetry != nil,
	}
	return view, nil
}

func financialSummary(batch *model.Batch) *FinancialSummary {
	current := batch.CurrentPrice()
	summary := &FinancialSummary{
		FarmPrice:    batch.Price,
		CurrentPrice: current,
		ValueAdded:   current - batch.Price,
	}
	if batch.Price > 0 {
		summary.PercentIncrease = pricing.TotalMargin(batch.Price, current)
	}
	return summary
}

func priceSteps(history []model.HistoryEntry) []PriceStep {
	steps := make([]PriceStep, 0, len(history))
	for _, h := range history {
		steps = append(steps, PriceStep{
			Stage: h.Stage,
			Label: stageLabel(h.Stage),
			Price: h.Price,
			TS:    h.TS,
		})
	}
	return steps
}

func stageLabel(stage model.Stage) string {
	switch stage {
	case model.StageFarmer:
		return "Farm Price"
	case model.StageDistributor:
		return "Wholesale Price"
	case model.StageRetailer:
		return "Retail Price"
	case model.StageConsumerDirect:
		return "Farm-Gate Sale"
	default:
		return "Consumer Sale"
	}
}
