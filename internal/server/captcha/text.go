package captcha

import "github.com/galhub/galhub/pkg/cryptox"

// Characters that read unambiguously; 0/o/1/i/l are excluded because users
// confuse them in rendered challenges.
const textCharset = "abcdefghjkmnpqrstuvwxyz23456789"

// TextLength is the number of characters in a generated challenge.
const TextLength = 4

// NewText generates a fresh challenge text.
func NewText() (string, error) {
	return cryptox.RandomText(TextLength, textCharset)
}
