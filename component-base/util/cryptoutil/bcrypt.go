package cryptoutil

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// HashPassword 使用默认代价计算 bcrypt 哈希.
func HashPassword(source string) (string, error) {
	return HashPasswordWithCost(source, 0)
}

// HashPasswordWithCost 使用指定代价计算 bcrypt 哈希，非正数使用默认代价，越界时取边界值.
func HashPasswordWithCost(source string, cost int) (string, error) {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(source), cost)
	if err != nil {
		return "", errors.WrapC(err, code.ErrEncrypt, "bcrypt hash")
	}
	return string(hashed), nil
}

// ComparePassword 校验明文与 bcrypt 哈希，不匹配时返回 ErrPasswordIncorrect.
func ComparePassword(hashed, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); err != nil {
		return errors.WrapC(err, code.ErrPasswordIncorrect, "password mismatch")
	}
	return nil
}
