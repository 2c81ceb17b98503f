package i18n

import (
	"golang.org/x/text/language"

	platformi18n "github.com/vpshub/site/internal/platform/i18n"
)

// LanguageOption is one entry of the language switcher.
type LanguageOption struct {
	Lang   string
	Label  string
	URL    string
	Active bool
}

// PageCopy holds the landing page chrome.
type PageCopy struct {
	Lang            string
	Title           string
	MetaDescription string
	NavHome         string
	NavServices     string
	NavPricing      string
	NavContact      string
	HeroTitle       string
	HeroSubtitle    string
	HeroCTA         string
	FeaturesTitle   string
	MarketingTitle  string
	FooterTerms     string
	FooterContact   string
	Languages       []LanguageOption
}

// PricingCopy holds pricing grid labels.
type PricingCopy struct {
	Title            string
	Loading          string
	Error            string
	Traffic          string
	UnlimitedTraffic string
	Bandwidth        string
	IPAddress        string
	IPAddresses      string
	MostPopular      string
	ChoosePlan       string
	Currency         string
	Period           string
}

// AuthCopy holds auth button group and modal labels.
type AuthCopy struct {
	Login          string
	Signup         string
	Dashboard      string
	Logout         string
	LoginTitle     string
	RegisterTitle  string
	OrContinueWith string
	Email          string
	Username       string
	Password       string
	SubmitLogin    string
	SubmitRegister string
	NoAccount      string
	HaveAccount    string
	Close          string
	GoogleRelay    string
}

// Page returns landing page copy for tag.
func Page(tag language.Tag) PageCopy {
	loc := Printer(tag)
	languages := make([]LanguageOption, 0, len(platformi18n.SupportedTags()))
	for _, option := range platformi18n.SupportedTags() {
		languages = append(languages, LanguageOption{
			Lang:   option.String(),
			Label:  T(loc, "lang."+option.String()),
			URL:    platformi18n.LocalizedPath(option, "/"),
			Active: option == tag,
		})
	}
	return PageCopy{
		Lang:            tag.String(),
		Title:           T(loc, "site.title"),
		MetaDescription: T(loc, "site.meta_description"),
		NavHome:         T(loc, "nav.home"),
		NavServices:     T(loc, "nav.services"),
		NavPricing:      T(loc, "nav.pricing"),
		NavContact:      T(loc, "nav.contact"),
		HeroTitle:       T(loc, "hero.title"),
		HeroSubtitle:    T(loc, "hero.subtitle"),
		HeroCTA:         T(loc, "hero.cta"),
		FeaturesTitle:   T(loc, "features.title"),
		MarketingTitle:  T(loc, "marketing.title"),
		FooterTerms:     T(loc, "footer.terms"),
		FooterContact:   T(loc, "footer.contact"),
		Languages:       languages,
	}
}

// Pricing returns pricing grid copy for tag.
func Pricing(tag language.Tag) PricingCopy {
	loc := Printer(tag)
	return PricingCopy{
		Title:            T(loc, "pricing.title"),
		Loading:          T(loc, "pricing.loading"),
		Error:            T(loc, "pricing.error"),
		Traffic:          T(loc, "pricing.traffic"),
		UnlimitedTraffic: T(loc, "pricing.unlimited_traffic"),
		Bandwidth:        T(loc, "pricing.bandwidth"),
		IPAddress:        T(loc, "pricing.ip_address"),
		IPAddresses:      T(loc, "pricing.ip_addresses"),
		MostPopular:      T(loc, "pricing.most_popular"),
		ChoosePlan:       T(loc, "pricing.choose_plan"),
		Currency:         T(loc, "pricing.currency"),
		Period:           T(loc, "pricing.period"),
	}
}

// Auth returns auth widget copy for tag.
func Auth(tag language.Tag) AuthCopy {
	loc := Printer(tag)
	return AuthCopy{
		Login:          T(loc, "nav.login"),
		Signup:         T(loc, "nav.signup"),
		Dashboard:      T(loc, "auth.dashboard"),
		Logout:         T(loc, "auth.logout"),
		LoginTitle:     T(loc, "auth.login_title"),
		RegisterTitle:  T(loc, "auth.register_title"),
		OrContinueWith: T(loc, "auth.or_continue_with"),
		Email:          T(loc, "auth.email"),
		Username:       T(loc, "auth.username"),
		Password:       T(loc, "auth.password"),
		SubmitLogin:    T(loc, "auth.submit_login"),
		SubmitRegister: T(loc, "auth.submit_register"),
		NoAccount:      T(loc, "auth.no_account"),
		HaveAccount:    T(loc, "auth.have_account"),
		Close:          T(loc, "auth.close"),
		GoogleRelay:    T(loc, "auth.google_relay"),
	}
}
