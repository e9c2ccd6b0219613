package models

// User is the profile returned by the auth service.
type User struct {
	ID           string    `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name,omitempty"`
	Email        string    `json:"email"`
	RiskAppetite RiskLevel `json:"risk_appetite"`
}
