package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

func TestEncryptAndCompare(t *testing.T) {
	hashed, err := EncryptWithCost("p@ssw0rd", 4)
	require.NoError(t, err)
	assert.NoError(t, Compare(hashed, "p@ssw0rd"))
	assert.True(t, errors.IsCode(Compare(hashed, "wrong"), code.ErrPasswordIncorrect))
}

func TestSignAndVerify(t *testing.T) {
	token, err := Sign("id-1", "key-1", "feed-apiserver", "feed.api")
	require.NoError(t, err)

	claims, err := Verify(token, "feed.api", StaticKey("id-1", "key-1"))
	require.NoError(t, err)
	assert.Equal(t, "feed-apiserver", claims.Issuer)

	_, err = Verify(token, "other.api", StaticKey("id-1", "key-1"))
	assert.True(t, errors.IsCode(err, code.ErrTokenInvalid))

	_, err = Verify(token, "feed.api", StaticKey("id-2", "key-1"))
	assert.True(t, errors.IsCode(err, code.ErrTokenInvalid))

	_, err = Verify(token, "feed.api", StaticKey("id-1", "key-2"))
	assert.True(t, errors.IsCode(err, code.ErrTokenInvalid))
}

func TestVerifyExpired(t *testing.T) {
	token, err := SignWithTTL("id-1", "key-1", "iss", "aud", -time.Minute)
	require.NoError(t, err)

	_, err = Verify(token, "aud", StaticKey("id-1", "key-1"))
	assert.True(t, errors.IsCode(err, code.ErrExpired))
}
