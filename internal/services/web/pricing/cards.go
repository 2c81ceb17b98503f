package pricing

import (
	"strconv"

	"golang.org/x/text/message"
	"golang.org/x/text/number"

	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
)

// Card is the rendered view of one plan.
type Card struct {
	ID        string
	Name      string
	Title     string
	Price     string
	Currency  string
	Period    string
	Features  []string
	Popular   bool
	Badge     string
	Choose    string
	ChooseURL string
}

// BuildCards returns one card per plan in plan order.
func BuildCards(plans []Plan, copy webi18n.PricingCopy, printer *message.Printer, chooseURL string) []Card {
	cards := make([]Card, 0, len(plans))
	for _, plan := range plans {
		card := Card{
			ID:        plan.ID,
			Name:      plan.Name,
			Title:     plan.Title,
			Price:     formatPrice(printer, plan.MonthlyPrice),
			Currency:  copy.Currency,
			Period:    copy.Period,
			Features:  Features(plan, copy),
			Popular:   plan.Popular(),
			Choose:    copy.ChoosePlan,
			ChooseURL: chooseURL,
		}
		if card.Popular {
			card.Badge = copy.MostPopular
		}
		cards = append(cards, card)
	}
	return cards
}

// Features lists the plan's feature lines in display order, dropping empty
// entries.
func Features(plan Plan, copy webi18n.PricingCopy) []string {
	traffic := copy.Traffic + ": " + plan.Traffic
	if plan.Traffic == UnlimitedTraffic {
		traffic = copy.UnlimitedTraffic
	}
	ipLabel := copy.IPAddress
	if plan.NumberOfIPs > 1 {
		ipLabel = copy.IPAddresses
	}
	lines := []string{
		plan.CPU,
		plan.RAM,
		plan.Disk,
		traffic,
		copy.Bandwidth + ": " + plan.Bandwidth,
		plan.Backup,
		strconv.Itoa(plan.NumberOfIPs) + " " + ipLabel,
		plan.Support,
	}
	out := lines[:0]
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func formatPrice(printer *message.Printer, price float64) string {
	if printer == nil {
		return strconv.FormatFloat(price, 'f', -1, 64)
	}
	return printer.Sprint(number.Decimal(price))
}
