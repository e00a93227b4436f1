// Package auth 提供密码哈希和基于密钥对的 JWT 签发与校验.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/ifkeeper/keeper-commons-utils/component-base/util/cryptoutil"
	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

// DefaultTokenTTL 是 Sign 签发令牌的有效期.
const DefaultTokenTTL = time.Minute

// Encrypt encrypts the plain text with bcrypt.
func Encrypt(source string) (string, error) {
	return cryptoutil.HashPassword(source)
}

// EncryptWithCost encrypts the plain text with bcrypt using a configurable cost.
func EncryptWithCost(source string, cost int) (string, error) {
	return cryptoutil.HashPasswordWithCost(source, cost)
}

// Compare compares the encrypted text with the plain text if it's the same.
func Compare(hashedPassword, password string) error {
	return cryptoutil.ComparePassword(hashedPassword, password)
}

// Sign issue a jwt token based on secretID, secretKey, iss and aud.
func Sign(secretID, secretKey, iss, aud string) (string, error) {
	return SignWithTTL(secretID, secretKey, iss, aud, DefaultTokenTTL)
}

// SignWithTTL 与 Sign 相同，但可以指定有效期.
func SignWithTTL(secretID, secretKey, iss, aud string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    iss,
		Audience:  jwt.ClaimStrings{aud},
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	token.Header["kid"] = secretID

	s, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", errors.WrapC(err, code.ErrEncrypt, "sign token")
	}
	return s, nil
}

// KeyFunc 根据令牌头部的 kid 返回对应的 secretKey.
type KeyFunc func(secretID string) (string, error)

// StaticKey 返回只认一个密钥对的 KeyFunc.
func StaticKey(secretID, secretKey string) KeyFunc {
	return func(kid string) (string, error) {
		if kid != secretID {
			return "", errors.WithCode(code.ErrTokenInvalid, "unknown secret id %q", kid)
		}
		return secretKey, nil
	}
}

// Verify 校验令牌签名、有效期和受众，返回其中的声明.
func Verify(tokenString, aud string, keyFn KeyFunc) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.WithCode(code.ErrTokenInvalid, "unexpected signing method %v", t.Header["alg"])
		}
		kid, ok := t.Header["kid"].(string)
		if !ok || kid == "" {
			return nil, errors.WithCode(code.ErrTokenInvalid, "missing kid")
		}
		secret, err := keyFn(kid)
		if err != nil {
			return nil, err
		}
		return []byte(secret), nil
	})
	if err != nil {
		var ve *jwt.ValidationError
		if errors.As(err, &ve) && ve.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, errors.WrapC(err, code.ErrExpired, "token expired")
		}
		return nil, errors.WrapC(err, code.ErrTokenInvalid, "parse token")
	}
	if aud != "" && !claims.VerifyAudience(aud, true) {
		return nil, errors.WithCode(code.ErrTokenInvalid, "audience mismatch")
	}
	return claims, nil
}
