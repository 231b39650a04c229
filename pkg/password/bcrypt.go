package password

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implementa el digest de contraseñas con bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher construye el hasher; cost <= 0 usa bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

// Hash genera el digest bcrypt de la contraseña.
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify compara la contraseña contra el digest almacenado.
func (h *BcryptHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
