package model

import "github.com/google/uuid"

type PurchaseChannel string

const (
	ChannelRetail PurchaseChannel = "retail"
	ChannelDirect PurchaseChannel = "direct"
)

// DistributorPurchase snapshots a distributor buying a farm listing.
type DistributorPurchase struct {
	ID               uuid.UUID          `json:"id"`
	BatchID          string             `json:"batchId"`
	Crop             string             `json:"crop"`
	Qty              int64              `json:"qty"`
	FarmerPrice      int64              `json:"farmerPrice"`
	DistributorPrice int64              `json:"distributorPrice"`
	Charges          DistributorCharges `json:"charges"`
	TS               int64              `json:"ts"`
}

// RetailPurchase snapshots a retailer pricing a batch out of transit.
type RetailPurchase struct {
	ID               uuid.UUID `json:"id"`
	BatchID          string    `json:"batchId"`
	Crop             string    `json:"crop"`
	DistributorPrice int64     `json:"distributorPrice"`
	RetailPrice      int64     `json:"retailPrice"`
	Margin           int64     `json:"margin"`
	TotalMargin      int64     `json:"totalMargin"`
	TS               int64     `json:"ts"`
}

// ConsumerPurchase snapshots an end-customer buy. EstimatedRetailPrice
// and Savings are only filled for the direct-from-farm channel.
type ConsumerPurchase struct {
	ID                   uuid.UUID       `json:"id"`
	BatchID              string          `json:"batchId"`
	Crop                 string          `json:"crop"`
	Channel              PurchaseChannel `json:"channel"`
	Qty                  int64           `json:"qty"`
	UnitPrice            int64           `json:"unitPrice"`
	Total                int64           `json:"total"`
	EstimatedRetailPrice int64           `json:"estimatedRetailPrice,omitempty"`
	Savings              int64           `json:"savings,omitempty"`
	TS                   int64           `json:"ts"`
}
