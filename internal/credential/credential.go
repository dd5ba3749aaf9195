package credential

import "golang.org/x/crypto/bcrypt"

// Hasher hashes and verifies secrets (user and room passwords) with bcrypt.
// It holds no state beyond the configured work factor.
type Hasher struct {
	cost int
}

// New creates a Hasher with the given bcrypt cost.
// A cost outside bcrypt's valid range falls back to the default cost.
func New(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a one-way salted digest of the secret
func (h *Hasher) Hash(secret string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the secret matches the digest.
// A malformed digest simply fails to verify.
func (h *Hasher) Verify(secret, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(secret)) == nil
}
