package model

// MenuItem is a single navigation entry rendered in the storefront header.
type MenuItem struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// PageContent holds the editable text blocks for one storefront page.
type PageContent struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	Body     string `json:"body,omitempty"`
}

// ContactInfo is the store's public contact block, also used as the
// destination for reclamacion notifications and the WhatsApp checkout link.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	WhatsApp string `json:"whatsapp"`
	Address  string `json:"address"`
}

// ThemePalette is one set of CSS color variables.
type ThemePalette struct {
	Background string `json:"background"`
	Foreground string `json:"foreground"`
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
}

// Theme holds the light and dark palettes edited from the admin theme page.
type Theme struct {
	Light ThemePalette `json:"light"`
	Dark  ThemePalette `json:"dark"`
}

// CardLayout holds the product-card rendering preferences.
type CardLayout struct {
	ImagePosition string `json:"image_position"` // top, left, right
	TextAlign     string `json:"text_align"`     // left, center, right
	ButtonStyle   string `json:"button_style"`   // solid, outline, ghost
	Shadow        string `json:"shadow"`         // none, sm, md, lg
}

// SiteConfig is the single shared configuration document. It is stored
// as one JSONB row and merge-written wholesale by the admin config form.
type SiteConfig struct {
	SiteName string                 `json:"site_name"`
	Menu     []MenuItem             `json:"menu"`
	Pages    map[string]PageContent `json:"pages"`
	Contact  ContactInfo            `json:"contact"`
	Theme    Theme                  `json:"theme"`
	Card     CardLayout             `json:"card"`
}
