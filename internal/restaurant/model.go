package restaurant

import "time"

type MenuItem struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Restaurant is the owner-managed profile. UserID is the owning user's
// internal id; at most one restaurant exists per owner.
type Restaurant struct {
	ID                    string     `json:"id"`
	UserID                string     `json:"user"`
	RestaurantName        string     `json:"restaurantName"`
	City                  string     `json:"city"`
	Country               string     `json:"country"`
	DeliveryPrice         float64    `json:"deliveryPrice"`
	EstimatedDeliveryTime int        `json:"estimatedDeliveryTime"`
	Cuisines              []string   `json:"cuisines"`
	MenuItems             []MenuItem `json:"menuItems"`
	ImageURL              string     `json:"imageUrl"`
	LastUpdated           time.Time  `json:"lastUpdated"`
}

type Pagination struct {
	Total int `json:"total"`
	Page  int `json:"page"`
	Pages int `json:"pages"`
}

type SearchResult struct {
	Data       []*Restaurant `json:"data"`
	Pagination Pagination    `json:"pagination"`
}
