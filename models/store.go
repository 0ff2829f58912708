package models

import "time"

const (
	SubscriptionActive    = "active"
	SubscriptionCancelled = "cancelled"
	SubscriptionInactive  = "inactive"
)

type Subscription struct {
	ID     string `json:"id,omitempty" bson:"id,omitempty"`
	Status string `json:"status" bson:"status"`
}

type Store struct {
	StoreID      string       `json:"storeid" bson:"storeid"`
	Name         string       `json:"name" bson:"name"`
	Email        string       `json:"email" bson:"email"`
	Contact      string       `json:"contact" bson:"contact"`
	Address      string       `json:"address" bson:"address"`
	OwnerID      string       `json:"owner" bson:"owner"`
	Products     []string     `json:"products" bson:"products"`
	Subscription Subscription `json:"subscription" bson:"subscription"`
	CreatedAt    time.Time    `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" bson:"updated_at"`
}
