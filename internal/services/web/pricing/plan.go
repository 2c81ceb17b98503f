// Package pricing fetches VPS plans from the pricing API and turns them into
// the cards the pricing grid renders.
package pricing

import "strings"

// UnlimitedTraffic is the traffic value that renders the unlimited label.
const UnlimitedTraffic = "Unlimited"

const popularNameMarker = "Standard"

// Plan is one VPS offering as served by GET /api/vps.
type Plan struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Title        string  `json:"title"`
	MonthlyPrice float64 `json:"monthlyPrice"`
	CPU          string  `json:"cpu"`
	RAM          string  `json:"ram"`
	Disk         string  `json:"disk"`
	Traffic      string  `json:"traffic"`
	Bandwidth    string  `json:"bandwidth"`
	Backup       string  `json:"backup"`
	Support      string  `json:"support"`
	NumberOfIPs  int     `json:"numberOfIps"`
	IsActive     bool    `json:"isActive"`
	// IsPopular, when the API supplies it, overrides the name heuristic.
	IsPopular *bool `json:"isPopular,omitempty"`
}

// Popular reports whether the plan is highlighted as most popular.
func (p Plan) Popular() bool {
	if p.IsPopular != nil {
		return *p.IsPopular
	}
	return strings.Contains(p.Name, popularNameMarker)
}
