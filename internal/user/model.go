package user

import "time"

// User is the internal profile behind an external identity subject.
// Auth0ID is the identity provider's stable subject, distinct from ID.
type User struct {
	ID           string    `json:"id"`
	Auth0ID      string    `json:"auth0Id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	AddressLine1 string    `json:"addressLine1"`
	City         string    `json:"city"`
	Country      string    `json:"country"`
	CreatedAt    time.Time `json:"createdAt"`
}
