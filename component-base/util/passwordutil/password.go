// Package passwordutil 生成随机密码.
package passwordutil

import (
	"crypto/rand"
	"math/big"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const (
	DefaultLength = 8
	MaxLength     = 64
	MaxKinds      = 4

	Numbers      = "0123456789"
	LowerLetters = "abcdefghijklmnopqrstuvwxyz"
	UpperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Specials     = "~!@#$%^&*()-_=+[{}]|;:,<.>?\\/`"
)

// Kind 是密码字符的类别.
type Kind int

const (
	KindNumber Kind = iota
	KindLower
	KindUpper
	KindSpecial
)

func (k Kind) charset() string {
	switch k {
	case KindNumber:
		return Numbers
	case KindLower:
		return LowerLetters
	case KindUpper:
		return UpperLetters
	default:
		return Specials
	}
}

// Generate 生成长度为 8、包含四类字符的密码.
func Generate() (string, error) {
	return GenerateWith(DefaultLength, MaxKinds)
}

// GenerateWithLength 生成指定长度、包含四类字符的密码.
func GenerateWithLength(length int) (string, error) {
	return GenerateWith(length, MaxKinds)
}

// GenerateWith 从随机选出的 kinds 类字符中生成密码.
// length 超过 64 时按 64 处理，kinds 超过 4 时按 4 处理；kinds 为 1 时只在字母中选.
// 每一位独立地从选中的类别里取字符，不保证每个类别都出现.
func GenerateWith(length, kinds int) (string, error) {
	if kinds <= 0 {
		return "", errors.WithCode(code.ErrInvalidArgument, "password kinds must be positive, got %d", kinds)
	}
	if length <= 0 {
		return "", errors.WithCode(code.ErrInvalidArgument, "password length must be positive, got %d", length)
	}
	if length > MaxLength {
		length = MaxLength
	}
	if kinds > MaxKinds {
		kinds = MaxKinds
	}

	pool := []Kind{KindNumber, KindLower, KindUpper, KindSpecial}
	if kinds == 1 {
		pool = []Kind{KindLower, KindUpper}
	}

	chosen := make([]Kind, 0, kinds)
	for i := 0; i < kinds; i++ {
		n, err := randInt(len(pool))
		if err != nil {
			return "", err
		}
		chosen = append(chosen, pool[n])
		pool = append(pool[:n], pool[n+1:]...)
	}

	password := make([]byte, length)
	for i := range password {
		k, err := randInt(len(chosen))
		if err != nil {
			return "", err
		}
		set := chosen[k].charset()
		c, err := randInt(len(set))
		if err != nil {
			return "", err
		}
		password[i] = set[c]
	}

	return string(password), nil
}

func randInt(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, errors.WrapC(err, code.ErrUnknown, "read random")
	}
	return int(v.Int64()), nil
}
