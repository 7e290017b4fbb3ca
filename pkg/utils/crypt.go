package utils

import (
	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 10

// Crypt 使用 bcrypt 对密码做哈希
func Crypt(password string) (string, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), passwordCost)
	return string(hashedPassword), err
}

// VerifyPassword 校验明文密码与数据库中的哈希是否一致
func VerifyPassword(password, hashedPassword string) (bool, error) {
	if hashedPassword == "" {
		return false, bcrypt.ErrMismatchedHashAndPassword
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)); err != nil {
		return false, err
	}
	return true, nil
}
