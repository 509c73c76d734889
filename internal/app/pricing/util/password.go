package util

import "golang.org/x/crypto/bcrypt"

// Стоимость bcrypt для хэширования паролей пользователей дашборда
const passwordHashCost = bcrypt.DefaultCost

// HashPassword возвращает bcrypt-хэш пароля для хранения
// в users.password_hash
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword сверяет пароль из запроса логина с сохраненным хэшем
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
