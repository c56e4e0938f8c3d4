package domain

// SettingsID is the id of the single SiteSettings record.
const SettingsID = "global"

// SiteSettings is the storefront-wide singleton: copy text, theming and
// integration keys edited through the admin settings panel.
type SiteSettings struct {
	ID                string            `json:"id"`
	SiteName          string            `json:"siteName"`
	Tagline           string            `json:"tagline"`
	LogoURL           string            `json:"logoUrl"`
	FaviconURL        string            `json:"faviconUrl"`
	PrimaryColor      string            `json:"primaryColor"`
	AccentColor       string            `json:"accentColor"`
	CurrencyCode      string            `json:"currencyCode"`
	ContactEmail      string            `json:"contactEmail"`
	ContactPhone      string            `json:"contactPhone"`
	Address           string            `json:"address"`
	SocialLinks       map[string]string `json:"socialLinks"`
	HeroTitle         string            `json:"heroTitle"`
	HeroSubtitle      string            `json:"heroSubtitle"`
	AnnouncementText  string            `json:"announcementText"`
	FooterText        string            `json:"footerText"`
	YocoPublicKey     string            `json:"yocoPublicKey"`
	PayfastMerchantID string            `json:"payfastMerchantId"`
	EFTDetails        string            `json:"eftDetails"`
	CheckoutEnabled   bool              `json:"checkoutEnabled"`
}

func (s SiteSettings) RecordID() string { return s.ID }

// DefaultSiteSettings seeds the singleton on first run.
func DefaultSiteSettings() SiteSettings {
	return SiteSettings{
		ID:              SettingsID,
		SiteName:        "Moda Bridge",
		Tagline:         "Curated fashion, bridged to you",
		PrimaryColor:    "#1a1a2e",
		AccentColor:     "#c9a227",
		CurrencyCode:    "ZAR",
		HeroTitle:       "New season, new silhouettes",
		HeroSubtitle:    "Hand-picked pieces from boutiques we trust",
		FooterText:      "Moda Bridge. All rights reserved.",
		SocialLinks:     map[string]string{},
		CheckoutEnabled: false,
	}
}
