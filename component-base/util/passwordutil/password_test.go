package passwordutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ifkeeper/keeper-commons-utils/errors"
	"github.com/ifkeeper/keeper-commons-utils/pkg/code"
)

const all = Numbers + LowerLetters + UpperLetters + Specials

func onlyFrom(s, charset string) bool {
	for _, c := range s {
		if !strings.ContainsRune(charset, c) {
			return false
		}
	}
	return true
}

func TestGenerateDefault(t *testing.T) {
	pw, err := Generate()
	require.NoError(t, err)
	assert.Len(t, pw, DefaultLength)
	assert.True(t, onlyFrom(pw, all))
}

func TestGenerateLengthClamp(t *testing.T) {
	pw, err := GenerateWithLength(200)
	require.NoError(t, err)
	assert.Len(t, pw, MaxLength)

	pw, err = GenerateWith(24, 10)
	require.NoError(t, err)
	assert.Len(t, pw, 24)
}

func TestGenerateSingleKindIsLetters(t *testing.T) {
	for i := 0; i < 50; i++ {
		pw, err := GenerateWith(32, 1)
		require.NoError(t, err)
		onlyLower := onlyFrom(pw, LowerLetters)
		onlyUpper := onlyFrom(pw, UpperLetters)
		assert.True(t, onlyLower || onlyUpper, pw)
	}
}

func TestGenerateInvalid(t *testing.T) {
	_, err := GenerateWith(0, 4)
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))

	_, err = GenerateWith(8, 0)
	assert.True(t, errors.IsCode(err, code.ErrInvalidArgument))
}

func TestGenerateUsesAllKinds(t *testing.T) {
	var seen [4]bool
	for i := 0; i < 20; i++ {
		pw, err := GenerateWith(MaxLength, MaxKinds)
		require.NoError(t, err)
		for _, c := range pw {
			switch {
			case strings.ContainsRune(Numbers, c):
				seen[KindNumber] = true
			case strings.ContainsRune(LowerLetters, c):
				seen[KindLower] = true
			case strings.ContainsRune(UpperLetters, c):
				seen[KindUpper] = true
			default:
				seen[KindSpecial] = true
			}
		}
	}
	assert.Equal(t, [4]bool{true, true, true, true}, seen)
}
