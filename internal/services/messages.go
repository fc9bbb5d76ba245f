package services

import "denizsel-backend/internal/models"

type LocalizedText struct {
	ChatUnavailable string
	ChatFallback    string
	ContactInvalid  string
	ContactFailed   string
	ContactSent     string
}

var texts = map[models.Language]LocalizedText{
	models.LangTR: {
		ChatUnavailable: "Asistanımıza şu anda ulaşılamıyor. Lütfen biraz sonra tekrar deneyin.",
		ChatFallback:    "Üzgünüm, şu anda bir yanıt oluşturamadım. Sorunuzu tekrar yazabilir misiniz?",
		ContactInvalid:  "Lütfen tüm zorunlu alanları eksiksiz ve doğru doldurun.",
		ContactFailed:   "Mesajınız gönderilemedi. Lütfen daha sonra tekrar deneyin.",
		ContactSent:     "Mesajınız başarıyla gönderildi. En kısa sürede sizinle iletişime geçeceğiz.",
	},
	models.LangEN: {
		ChatUnavailable: "Our assistant is unavailable right now. Please try again in a moment.",
		ChatFallback:    "Sorry, I couldn't come up with an answer just now. Could you rephrase your question?",
		ContactInvalid:  "Please fill in all required fields correctly.",
		ContactFailed:   "Your message could not be sent. Please try again later.",
		ContactSent:     "Your message has been sent. We will get back to you shortly.",
	},
}

// TextFor returns the caller-facing strings for lang, Turkish by default.
func TextFor(lang models.Language) LocalizedText {
	if t, ok := texts[lang]; ok {
		return t
	}
	return texts[models.LangTR]
}
