// Package i18n holds the localized strings used when building message views.
package i18n

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// String keys.
const (
	KeySenderSelf       = "messagelist_sender_self"
	KeySentOn           = "sent_on"
	KeyExpireOn         = "expire_on"
	KeyDRMProtectedText = "drm_protected_text"
)

var supported = []language.Tag{language.English, language.Indonesian}

var translations = map[language.Tag]map[string]string{
	language.English: {
		KeySenderSelf:       "Me",
		KeySentOn:           "Sent: %s",
		KeyExpireOn:         "Expires: %s",
		KeyDRMProtectedText: "* DRM protected text *",
	},
	language.Indonesian: {
		KeySenderSelf:       "Saya",
		KeySentOn:           "Dikirim: %s",
		KeyExpireOn:         "Kedaluwarsa: %s",
		KeyDRMProtectedText: "* Teks dilindungi DRM *",
	},
}

// Catalog resolves string keys for one language. It is safe for concurrent use.
type Catalog struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns the catalog best matching locale (a BCP 47 tag such as "en"
// or "id-ID"). Unsupported languages fall back to English.
func New(locale string) (*Catalog, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}

	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, strs := range translations {
		for key, msg := range strs {
			if err := b.SetString(tag, key, msg); err != nil {
				return nil, fmt.Errorf("failed to register %s/%s: %w", tag, key, err)
			}
		}
	}

	_, idx, _ := language.NewMatcher(supported).Match(requested)
	tag := supported[idx]

	return &Catalog{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(b)),
	}, nil
}

// Language returns the matched language.
func (c *Catalog) Language() language.Tag {
	return c.tag
}

// String returns the plain string for key.
func (c *Catalog) String(key string) string {
	return c.printer.Sprintf(key)
}

// Format fills the template for key with args.
func (c *Catalog) Format(key string, args ...any) string {
	return c.printer.Sprintf(key, args...)
}
