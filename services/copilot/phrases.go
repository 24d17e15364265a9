package copilot

import "github.com/piresc/vigilante/internal/pkg/models"

type phrases struct {
	fallback     string
	unavailable  string
	premiumOnly  string
	notHeard     string
	languageName string
}

var localized = map[string]phrases{
	models.LanguagePT: {
		fallback:     "Entendido.",
		unavailable:  "Copiloto indisponível.",
		premiumOnly:  "Funcionalidade Pro. IA requer ativação.",
		notHeard:     "Não percebi o comando.",
		languageName: "Portuguese (Portugal)",
	},
	models.LanguageEN: {
		fallback:     "Understood.",
		unavailable:  "Copilot unavailable.",
		premiumOnly:  "Pro feature. AI requires activation.",
		notHeard:     "I didn't catch that.",
		languageName: "English",
	},
	models.LanguageES: {
		fallback:     "Entendido.",
		unavailable:  "Copiloto no disponible.",
		premiumOnly:  "Función Pro. La IA requiere activación.",
		notHeard:     "No he entendido el comando.",
		languageName: "Spanish",
	},
}

// NormalizeLanguage returns a supported language, defaulting to Portuguese
func NormalizeLanguage(lang string) string {
	if _, ok := localized[lang]; ok {
		return lang
	}
	return models.LanguagePT
}

func phrasesFor(lang string) phrases {
	return localized[NormalizeLanguage(lang)]
}

// FallbackPhrase is spoken when a background generation fails
func FallbackPhrase(lang string) string {
	return phrasesFor(lang).fallback
}

// UnavailablePhrase is shown when a manual generation fails
func UnavailablePhrase(lang string) string {
	return phrasesFor(lang).unavailable
}

// PremiumOnlyPhrase is shown when a free user reaches an AI feature
func PremiumOnlyPhrase(lang string) string {
	return phrasesFor(lang).premiumOnly
}
