package pricing

import (
	"context"
	"errors"

	"golang.org/x/text/language"

	webi18n "github.com/vpshub/site/internal/services/web/platform/i18n"
)

// State is the pricing grid's display state.
type State int

const (
	StateLoading State = iota
	StateError
	StateReady
)

// Grid is everything the pricing grid template needs.
type Grid struct {
	State State
	Copy  webi18n.PricingCopy
	Cards []Card
	// FragmentURL is where the loading placeholder fetches the ready grid.
	FragmentURL string
}

// Loading is the placeholder grid rendered with the page.
func Loading(tag language.Tag, fragmentURL string) Grid {
	return Grid{State: StateLoading, Copy: webi18n.Pricing(tag), FragmentURL: fragmentURL}
}

// FetchGrid lists plans and builds the ready grid. On failure it returns the
// error grid together with the cause so callers can log it.
func FetchGrid(ctx context.Context, lister Lister, tag language.Tag, chooseURL string) (Grid, error) {
	copy := webi18n.Pricing(tag)
	if lister == nil {
		return Grid{State: StateError, Copy: copy}, errors.New("pricing lister is not configured")
	}
	plans, err := lister.ListPlans(ctx)
	if err != nil {
		return Grid{State: StateError, Copy: copy}, err
	}
	return Grid{
		State: StateReady,
		Copy:  copy,
		Cards: BuildCards(plans, copy, webi18n.Printer(tag), chooseURL),
	}, nil
}
