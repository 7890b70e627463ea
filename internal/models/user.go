package models

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	CreatedAt time.Time `json:"created_at"`
}

// DemoUser returns the single identity the studio runs as.
func DemoUser(now time.Time) User {
	return User{
		ID:        "user_demo_boticario",
		Name:      "Usuario Demo",
		Email:     "demo@boticario.com",
		Plan:      "pro",
		CreatedAt: now,
	}
}
