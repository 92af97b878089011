package model

import (
	"time"
)

// Account is the local user profile shown on the account page.
// It never leaves the process.
type Account struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Plan      string    `json:"plan"`
	ExpiresAt time.Time `json:"expires_at"`
}

// UsageStat is one fixed usage bar (API calls, storage...)
type UsageStat struct {
	Label string  `json:"label"`
	Used  float64 `json:"used"`
	Limit float64 `json:"limit"`
	Unit  string  `json:"unit,omitempty"`
}

// Percent returns the used share in [0, 1]
func (u UsageStat) Percent() float64 {
	if u.Limit <= 0 {
		return 0
	}
	p := u.Used / u.Limit
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// DefaultAccount returns the placeholder profile
func DefaultAccount() Account {
	return Account{
		Name:      "João Silva",
		Email:     "joao.silva@example.com",
		Plan:      "Pro",
		ExpiresAt: time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC),
	}
}

// DefaultUsage returns the static usage statistics
func DefaultUsage() []UsageStat {
	return []UsageStat{
		{Label: "Chamadas de API", Used: 1234, Limit: 5000},
		{Label: "Armazenamento", Used: 2.5, Limit: 10, Unit: "GB"},
	}
}
