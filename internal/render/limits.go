package render

import "fmt"

// Content size caps in UTF-8 bytes, enforced before submission. The backend
// enforces the same policy authoritatively.
const (
	MaxContentBytes     = 1 << 20 // authenticated: 1 MiB
	MaxAnonContentBytes = 256 << 10
)

// MaxAnonExpiryDays bounds the lifetime of anonymous snippets.
const MaxAnonExpiryDays = 365

// ContentSize returns the UTF-8 byte size of content.
func ContentSize(content string) int {
	return len(content)
}

// SizeCap returns the applicable content cap for the caller's auth state.
func SizeCap(authenticated bool) int {
	if authenticated {
		return MaxContentBytes
	}
	return MaxAnonContentBytes
}

// CheckSize validates content against the caller's cap. Content exactly at
// the cap is accepted.
func CheckSize(content string, authenticated bool) error {
	cap := SizeCap(authenticated)
	if size := ContentSize(content); size > cap {
		return fmt.Errorf("content is %d bytes, over the %d byte limit", size, cap)
	}
	return nil
}

// CheckExpiry validates the requested lifetime. Only anonymous submissions
// are bounded; nil means no expiration.
func CheckExpiry(expiresInDays *int, authenticated bool) error {
	if expiresInDays == nil {
		return nil
	}
	if *expiresInDays < 1 {
		return fmt.Errorf("expiration must be at least 1 day")
	}
	if !authenticated && *expiresInDays > MaxAnonExpiryDays {
		return fmt.Errorf("anonymous tresses cannot live longer than %d days", MaxAnonExpiryDays)
	}
	return nil
}
