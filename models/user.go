package models

import "time"

// CartItem is a single cart line. Price and offerPercentage are snapshots
// taken when the item was added, not live links to the catalog.
type CartItem struct {
	ProductID       string    `json:"productId" bson:"productId"`
	Name            string    `json:"name" bson:"name"`
	Price           float64   `json:"price" bson:"price"`
	Quantity        int       `json:"quantity" bson:"quantity"`
	OfferPercentage float64   `json:"offerPercentage" bson:"offerPercentage"`
	AddedAt         time.Time `json:"addedAt" bson:"addedAt"`
}

// Cart is embedded in the user document. The aggregate fields are derived
// from Items and recomputed on every mutation, never patched incrementally.
type Cart struct {
	Items         []CartItem `json:"items" bson:"items"`
	TotalQuantity int        `json:"totalQuantity" bson:"totalQuantity"`
	TotalPrice    float64    `json:"totalPrice" bson:"totalPrice"`
	TotalDiscount float64    `json:"totalDiscount" bson:"totalDiscount"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updatedAt"`
}

type Crop struct {
	CropID   string `json:"cropId" bson:"cropId"`
	Name     string `json:"name" bson:"name"`
	Variety  string `json:"variety,omitempty" bson:"variety,omitempty"`
	Quantity int    `json:"quantity" bson:"quantity"`
}

type Farm struct {
	FarmName string `json:"farmName,omitempty" bson:"farmName,omitempty"`
	Location string `json:"location,omitempty" bson:"location,omitempty"`
}

const (
	RoleFarmer = "farmer"
	RoleStore  = "store"
	RoleAdmin  = "admin"
)

// Session is one refresh-token slot. A user holds a list of these, one per
// device, so logging out one device never invalidates the others.
type Session struct {
	TokenID   string    `json:"tokenId" bson:"tokenId"`
	TokenHash string    `json:"-" bson:"tokenHash"`
	IssuedAt  time.Time `json:"issuedAt" bson:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt" bson:"expiresAt"`
}

type User struct {
	UserID        string    `json:"userid" bson:"userid"`
	FullName      string    `json:"fullName" bson:"fullName"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	MobileNumber  string    `json:"mobileNumber" bson:"mobileNumber"`
	Password      string    `json:"-" bson:"password"`
	Role          string    `json:"role" bson:"role"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	Farm          Farm      `json:"farm,omitempty" bson:"farm,omitempty"`
	Sessions      []Session `json:"-" bson:"sessions,omitempty"`
	Cart          Cart      `json:"cart" bson:"cart"`
	Crops         []Crop    `json:"crops,omitempty" bson:"crops,omitempty"`
	Orders        []string  `json:"orders,omitempty" bson:"orders,omitempty"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}
