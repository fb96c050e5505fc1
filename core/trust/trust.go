// Package trust computes the 0-100 trust score gating posting rights.
package trust

import "time"

type Inputs struct {
	PhoneVerified       bool
	EmailVerified       bool
	VerifiedConnections int
	CreatedAt           time.Time
	EngagementPoints    int
}

type Breakdown struct {
	Total             int `json:"total"`
	HumanVerification int `json:"humanVerification"`
	Email             int `json:"email"`
	AccountAge        int `json:"accountAge"`
	Connections       int `json:"connections"`
	Engagement        int `json:"engagement"`
}

// Score weights: phone verification 50, email 10, account age 2 per month
// capped at 20, verified connections capped at 10, engagement capped at 10.
func Score(in Inputs) Breakdown {
	human := 0
	if in.PhoneVerified {
		human = 50
	}
	email := 0
	if in.EmailVerified {
		email = 10
	}
	age := clamp(monthsSince(in.CreatedAt)*2, 0, 20)
	connections := clamp(in.VerifiedConnections, 0, 10)
	engagement := clamp(in.EngagementPoints, 0, 10)

	total := human + email + age + connections + engagement
	if total > 100 {
		total = 100
	}

	return Breakdown{
		Total:             total,
		HumanVerification: human,
		Email:             email,
		AccountAge:        age,
		Connections:       connections,
		Engagement:        engagement,
	}
}

func monthsSince(t time.Time) int {
	now := time.Now()
	months := (now.Year()-t.Year())*12 + int(now.Month()) - int(t.Month())
	if now.Day() < t.Day() {
		months--
	}
	if months < 0 {
		return 0
	}
	return months
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
