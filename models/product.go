package models

import "time"

type ActiveIngredient struct {
	Name          string `json:"name" bson:"name"`
	Concentration string `json:"concentration" bson:"concentration"` // e.g. "5%" or "50 mg/L"
}

// ProductContent carries the structured advisory block used by pest search.
type ProductContent struct {
	ActiveIngredients []ActiveIngredient `json:"activeIngredients,omitempty" bson:"activeIngredients,omitempty"`
	TargetPests       []string           `json:"targetPests,omitempty" bson:"targetPests,omitempty"`
	UsageAreas        []string           `json:"usageAreas,omitempty" bson:"usageAreas,omitempty"`
	Instructions      string             `json:"instructions,omitempty" bson:"instructions,omitempty"`
	Precautions       string             `json:"precautions,omitempty" bson:"precautions,omitempty"`
}

// Product belongs to exactly one store; StoreID and the owning store's
// products list are kept in sync inside one transaction.
type Product struct {
	ProductID       string         `json:"productid" bson:"productid"`
	Name            string         `json:"name" bson:"name"`
	Company         string         `json:"company" bson:"company"`
	Description     string         `json:"description" bson:"description"`
	Category        string         `json:"category,omitempty" bson:"category,omitempty"`
	Quantity        int            `json:"quantity" bson:"quantity"`
	Price           float64        `json:"price" bson:"price"`
	OfferPercentage float64        `json:"offerPercentage" bson:"offerPercentage"`
	OutOfStock      bool           `json:"outOfStock" bson:"outOfStock"`
	StoreID         string         `json:"storeid,omitempty" bson:"storeid,omitempty"`
	Img             string         `json:"img,omitempty" bson:"img,omitempty"`
	Content         ProductContent `json:"content,omitempty" bson:"content,omitempty"`
	CreatedAt       time.Time      `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" bson:"updated_at"`
}
