package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if PricingAPI != "/api/vps" {
		t.Fatalf("PricingAPI = %q", PricingAPI)
	}
	if AuthGoogleReturn != "/auth/social/google/callback" {
		t.Fatalf("AuthGoogleReturn = %q", AuthGoogleReturn)
	}
}

func TestWithLang(t *testing.T) {
	t.Parallel()

	if got := WithLang(PricingPartial, "vi"); got != "/partials/pricing?lang=vi" {
		t.Fatalf("WithLang() = %q", got)
	}
	if got := WithLang(PricingPartial, " "); got != PricingPartial {
		t.Fatalf("WithLang(blank) = %q", got)
	}
}

func TestModalURL(t *testing.T) {
	t.Parallel()

	if got := ModalURL(ModalModeRegister, "en"); got != "/auth/modal?lang=en&mode=register" {
		t.Fatalf("ModalURL() = %q", got)
	}
	if got := ModalURL("", ""); got != AuthModal {
		t.Fatalf("ModalURL(empty) = %q", got)
	}
}
