package code

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ifkeeper/keeper-commons-utils/errors"
)

func TestRegisteredCodes(t *testing.T) {
	tests := []struct {
		code int
		http int
	}{
		{ErrInvalidArgument, 400},
		{ErrSequenceExhausted, 429},
		{ErrTooManyRequests, 429},
		{ErrRecordNotFound, 404},
		{ErrEncrypt, 500},
		{ErrDecodingFailed, 400},
		{ErrRedisFailed, 500},
		{ErrTokenInvalid, 401},
		{ErrExpired, 401},
	}
	for _, tt := range tests {
		coder := errors.ParseCoderByCode(tt.code)
		assert.Equal(t, tt.code, coder.Code())
		assert.Equal(t, tt.http, coder.HTTPStatus())
		assert.NotEmpty(t, coder.String())
	}
}

func TestCodeValues(t *testing.T) {
	assert.Equal(t, 100006, ErrInvalidArgument)
	assert.Equal(t, 100008, ErrTooManyRequests)
	assert.Equal(t, 100102, ErrRecordNotFound)
	assert.Equal(t, 100402, ErrRedisFailed)
	assert.Equal(t, 100502, ErrExpired)
}

func TestRegisterRejectsBadStatus(t *testing.T) {
	assert.Panics(t, func() { register(199001, 700, "bad") })
}
