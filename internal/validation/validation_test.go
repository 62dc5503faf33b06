package validation

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidator(t *testing.T) {
	var v Validator
	v.Check(true, "title", "unused")
	v.Check(false, "price", "must be positive")
	v.Check(false, "price", "second failure ignored")
	v.Check(false, "title", "too short")

	err := v.Err()
	require.Error(t, err)

	errs, ok := err.(Errors)
	require.True(t, ok)
	require.Equal(t, Errors{
		"price": "must be positive",
		"title": "too short",
	}, errs)
	require.Equal(t, "price: must be positive; title: too short", err.Error())
}

func TestValidatorClean(t *testing.T) {
	var v Validator
	v.Check(true, "a", "x")
	require.NoError(t, v.Err())
}

func TestLenBetween(t *testing.T) {
	require.True(t, LenBetween("abc", 3, 10))
	require.True(t, LenBetween("  abc  ", 3, 10), "surrounding spaces do not count")
	require.False(t, LenBetween("ab", 3, 10))
	require.False(t, LenBetween("abcdefghijk", 3, 10))
	require.True(t, LenBetween("héllo", 5, 5), "length is in runes, not bytes")
}

func TestOneOf(t *testing.T) {
	require.True(t, OneOf("ICP", "ICP", "Cycles"))
	require.False(t, OneOf("BTC", "ICP", "Cycles"))
}

func TestBetween(t *testing.T) {
	require.True(t, Between(0, 0, 1_000_000))
	require.True(t, Between(1_000_000, 0, 1_000_000))
	require.False(t, Between(-0.01, 0, 1_000_000))
	require.False(t, Between(1_000_000.01, 0, 1_000_000))
}

func TestIsUsername(t *testing.T) {
	require.True(t, IsUsername("vr_builder42"))
	require.False(t, IsUsername("ab"), "too short")
	require.False(t, IsUsername("has space"))
	require.False(t, IsUsername("twenty1characterslong"))
}

func TestIsPrincipal(t *testing.T) {
	require.True(t, IsPrincipal("2vxsx-fae"))
	require.True(t, IsPrincipal("rrkah-fqaaa-aaaaa-aaaaq-cai"))
	require.False(t, IsPrincipal("Not-A-Principal"))
	require.False(t, IsPrincipal(""))
	require.False(t, IsPrincipal("toolonggroup-fae"))
}
