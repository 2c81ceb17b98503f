package pricing

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"golang.org/x/text/language"

	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
)

type fakeLister struct {
	plans []Plan
	err   error
}

func (f fakeLister) ListPlans(context.Context) ([]Plan, error) {
	return f.plans, f.err
}

func samplePlan() Plan {
	return Plan{
		ID:           "p1",
		Name:         "Basic",
		MonthlyPrice: 150000,
		CPU:          "1 vCPU",
		RAM:          "1 GB RAM",
		Disk:         "20 GB SSD",
		Traffic:      "Unlimited",
		Bandwidth:    "100 Mbps",
		Support:      "24/7",
		NumberOfIPs:  1,
	}
}

func TestFeaturesOrderAndFiltering(t *testing.T) {
	t.Parallel()

	got := Features(samplePlan(), webi18n.Pricing(language.English))
	want := []string{
		"1 vCPU",
		"1 GB RAM",
		"20 GB SSD",
		"Unlimited traffic",
		"Bandwidth: 100 Mbps",
		"1 IP address",
		"24/7",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Features() = %q, want %q", got, want)
	}
}

func TestFeaturesMeteredTrafficAndPluralIPs(t *testing.T) {
	t.Parallel()

	plan := samplePlan()
	plan.Traffic = "2 TB"
	plan.NumberOfIPs = 2
	got := Features(plan, webi18n.Pricing(language.English))
	if got[3] != "Traffic: 2 TB" {
		t.Fatalf("traffic feature = %q, want %q", got[3], "Traffic: 2 TB")
	}
	if got[5] != "2 IP addresses" {
		t.Fatalf("ip feature = %q, want %q", got[5], "2 IP addresses")
	}
}

func TestPopular(t *testing.T) {
	t.Parallel()

	yes, no := true, false
	tests := []struct {
		name string
		plan Plan
		want bool
	}{
		{name: "standard in name", plan: Plan{Name: "Standard Plus"}, want: true},
		{name: "other name", plan: Plan{Name: "Premium"}, want: false},
		{name: "explicit flag wins", plan: Plan{Name: "Premium", IsPopular: &yes}, want: true},
		{name: "explicit false wins", plan: Plan{Name: "Standard", IsPopular: &no}, want: false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := tc.plan.Popular(); got != tc.want {
				t.Fatalf("Popular() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBuildCardsOnePerPlanWithLocalizedPrice(t *testing.T) {
	t.Parallel()

	standard := samplePlan()
	standard.ID = "p2"
	standard.Name = "Standard"
	plans := []Plan{samplePlan(), standard, {ID: "p3", Name: "Pro", MonthlyPrice: 1250000}}

	cards := BuildCards(plans, webi18n.Pricing(language.English), webi18n.Printer(language.English), "https://identity.vpshub.vn")
	if len(cards) != len(plans) {
		t.Fatalf("len(cards) = %d, want %d", len(cards), len(plans))
	}
	for i, card := range cards {
		if card.ID != plans[i].ID {
			t.Fatalf("cards[%d].ID = %q, want %q", i, card.ID, plans[i].ID)
		}
	}
	if cards[0].Price != "150,000" {
		t.Fatalf("cards[0].Price = %q, want %q", cards[0].Price, "150,000")
	}
	if cards[2].Price != "1,250,000" {
		t.Fatalf("cards[2].Price = %q, want %q", cards[2].Price, "1,250,000")
	}
	if cards[0].Popular || cards[0].Badge != "" {
		t.Fatalf("cards[0] popular = %v badge %q, want not popular", cards[0].Popular, cards[0].Badge)
	}
	if !cards[1].Popular || cards[1].Badge != "Most Popular" {
		t.Fatalf("cards[1] popular = %v badge %q, want Most Popular", cards[1].Popular, cards[1].Badge)
	}
	if cards[1].ChooseURL != "https://identity.vpshub.vn" {
		t.Fatalf("ChooseURL = %q", cards[1].ChooseURL)
	}
	if cards[0].Currency != "VND" || cards[0].Period != "/month" {
		t.Fatalf("currency/period = %q %q", cards[0].Currency, cards[0].Period)
	}
}

func TestBuildCardsVietnameseGrouping(t *testing.T) {
	t.Parallel()

	cards := BuildCards([]Plan{samplePlan()}, webi18n.Pricing(language.Vietnamese), webi18n.Printer(language.Vietnamese), "")
	if cards[0].Price != "150.000" {
		t.Fatalf("Price = %q, want %q", cards[0].Price, "150.000")
	}
	if cards[0].Period != "/tháng" {
		t.Fatalf("Period = %q, want %q", cards[0].Period, "/tháng")
	}
}

func TestFetchGridStates(t *testing.T) {
	t.Parallel()

	ready, err := FetchGrid(context.Background(), fakeLister{plans: []Plan{samplePlan()}}, language.English, "")
	if err != nil {
		t.Fatalf("FetchGrid() error = %v", err)
	}
	if ready.State != StateReady || len(ready.Cards) != 1 {
		t.Fatalf("ready grid = %+v", ready)
	}

	failed, err := FetchGrid(context.Background(), fakeLister{err: errors.New("down")}, language.English, "")
	if err == nil {
		t.Fatalf("FetchGrid() error = nil, want error")
	}
	if failed.State != StateError || len(failed.Cards) != 0 {
		t.Fatalf("failed grid = %+v", failed)
	}
	if failed.Copy.Error == "" {
		t.Fatalf("failed grid missing error copy")
	}

	if _, err := FetchGrid(context.Background(), nil, language.English, ""); err == nil {
		t.Fatalf("FetchGrid(nil lister) error = nil, want error")
	}
}

func TestLoadingGrid(t *testing.T) {
	t.Parallel()

	grid := Loading(language.Vietnamese, "/partials/pricing?lang=vi")
	if grid.State != StateLoading || grid.FragmentURL != "/partials/pricing?lang=vi" {
		t.Fatalf("Loading() = %+v", grid)
	}
	if grid.Copy.Loading != "Đang tải các gói..." {
		t.Fatalf("Copy.Loading = %q", grid.Copy.Loading)
	}
}
