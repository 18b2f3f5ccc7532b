package models

type SiteSetting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"type:text" json:"value"`
}

const (
	SettingHeroImage       = "hero_image"
	SettingHeroDecoLeft    = "hero_deco_left"
	SettingHeroDecoRight   = "hero_deco_right"
	SettingLogoImage       = "logo_image"
	SettingAboutImage      = "about_image"
	SettingFaviconURL      = "favicon_url"
	SettingSiteKeywords    = "site_keywords"
	SettingSiteTitle       = "site_title"
	SettingSiteDescription = "site_description"
)

// SettingKeys lists every key the admin settings form manages.
var SettingKeys = []string{
	SettingHeroImage,
	SettingHeroDecoLeft,
	SettingHeroDecoRight,
	SettingLogoImage,
	SettingAboutImage,
	SettingFaviconURL,
	SettingSiteKeywords,
	SettingSiteTitle,
	SettingSiteDescription,
}

func IsSettingKey(key string) bool {
	for _, k := range SettingKeys {
		if k == key {
			return true
		}
	}
	return false
}

// PublicSettingDefaults are served when the corresponding key was never saved.
var PublicSettingDefaults = map[string]string{
	SettingSiteKeywords:    "мамский блог, дети, воспитание, юмор, материнство, miss eklerchik",
	SettingSiteTitle:       "Miss Eklerchik | Мамский блог без цензуры",
	SettingSiteDescription: "Честный блог о материнстве, валерьянке и любви. Советы, рецепты и поддержка для уставших мам.",
}

// WithDefaults merges stored settings over the public defaults. Empty stored
// values do not override a default.
func WithDefaults(stored map[string]string) map[string]string {
	out := make(map[string]string, len(PublicSettingDefaults)+len(stored))
	for k, v := range PublicSettingDefaults {
		out[k] = v
	}
	for k, v := range stored {
		if v == "" {
			continue
		}
		out[k] = v
	}
	return out
}
