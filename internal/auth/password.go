package auth

import "golang.org/x/crypto/bcrypt"

const (
	ClientPasswordCost = 10
	AdminPasswordCost  = 12
)

func HashPassword(pw string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(pw), cost)
	return string(b), err
}

func CheckPassword(hashed, pw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(pw)) == nil
}
