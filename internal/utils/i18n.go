package utils

import "fmt"

// Minimal server-side i18n for fixed keys. The dashboard frontend carries its
// own strings; the server only localizes rating labels, the invite email, and
// the response acknowledgment page.

var translations = map[string]map[string]string{
	"en": {
		"health.ok":               "ok",
		"rating.1":                "Very bad",
		"rating.2":                "Bad",
		"rating.3":                "Average",
		"rating.4":                "Good",
		"rating.5":                "Very good",
		"rating.unknown":          "Not specified",
		"invite.subject":          "%s - Rating Survey",
		"invite.intro":            "Please rate our service",
		"invite.hint":             "After picking an icon you can also share additional comments.",
		"invite.footer":           "This email was sent automatically. Please do not reply.",
		"ack.title":               "Thank you",
		"ack.heading":             "Thank you for your feedback!",
		"ack.saved":               "Your rating of %d has been recorded.",
		"ack.comment_label":       "Your comment:",
		"ack.comment_prompt":      "Would you like to add a comment?",
		"ack.comment_placeholder": "Write your comment here (optional)",
		"ack.submit":              "Submit comment",
		"ack.footer":              "Your feedback matters to us.",
	},
	"tr": {
		"health.ok":               "tamam",
		"rating.1":                "Çok kötü",
		"rating.2":                "Kötü",
		"rating.3":                "Orta",
		"rating.4":                "İyi",
		"rating.5":                "Çok iyi",
		"rating.unknown":          "Belirtilmemiş",
		"invite.subject":          "%s - Değerlendirme Anketi",
		"invite.intro":            "Lütfen hizmetimizi değerlendirin",
		"invite.hint":             "Bir ikon seçtikten sonra ek yorumlarınızı da paylaşabilirsiniz.",
		"invite.footer":           "Bu e-posta otomatik olarak gönderilmiştir. Lütfen yanıtlamayınız.",
		"ack.title":               "Teşekkürler",
		"ack.heading":             "Değerlendirmeniz için teşekkürler!",
		"ack.saved":               "Verdiğiniz %d puanlık değerlendirme başarıyla kaydedildi.",
		"ack.comment_label":       "Yorumunuz:",
		"ack.comment_prompt":      "Eklemek istediğiniz bir yorum var mı?",
		"ack.comment_placeholder": "Yorumunuzu buraya yazın (isteğe bağlı)",
		"ack.submit":              "Yorumu Gönder",
		"ack.footer":              "Geri bildiriminiz bizim için çok değerli.",
	},
}

// T returns the translated string for key in locale; falls back to English.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["en"][key]; ok {
		return v
	}
	return key
}

// Tf is T followed by Sprintf for keys holding format verbs.
func Tf(locale, key string, args ...any) string {
	return fmt.Sprintf(T(locale, key), args...)
}
