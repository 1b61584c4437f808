package registration

import (
	"crypto/rand"
	"fmt"
)

const (
	tempPasswordLen   = 24
	tempPasswordChars = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789!@#$%"
)

// tempPassword generates the high-entropy throwaway password the identity
// provider requires at creation. It reaches the user only via the welcome
// email.
func tempPassword() (string, error) {
	buf := make([]byte, tempPasswordLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate password: %w", err)
	}
	for i, b := range buf {
		buf[i] = tempPasswordChars[int(b)%len(tempPasswordChars)]
	}
	return string(buf), nil
}
