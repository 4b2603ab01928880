package crypto

import "golang.org/x/crypto/bcrypt"

// bcrypt cost 10 matches what the production data was hashed with.
const hashRounds = 10

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), hashRounds)
	return string(bytes), err
}

func CheckPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
