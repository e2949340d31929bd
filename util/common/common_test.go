package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCountsRunes(t *testing.T) {
	assert.Equal(t, "абв", Truncate("абв", 3))
	assert.Equal(t, "аб...", Truncate("абв", 2))
	assert.Equal(t, "text", Truncate("text", 0))
}

func TestNilIfEmpty(t *testing.T) {
	assert.Nil(t, NilIfEmpty("   "))
	v := NilIfEmpty(" +7 900 ")
	if assert.NotNil(t, v) {
		assert.Equal(t, "+7 900", *v)
	}
	assert.Equal(t, "не указан", OrDefault(nil, "не указан"))
	assert.Equal(t, "+7 900", OrDefault(v, "не указан"))
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512.00B", FormatBytes(512))
	assert.Equal(t, "1.50KB", FormatBytes(1536))
}

func TestCombine(t *testing.T) {
	assert.NoError(t, Combine(nil, nil))
	err := Combine(nil, errors.New("boom"))
	assert.EqualError(t, err, "boom")
}

func TestRecoverSwallowsPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		defer Recover("", nil)
		panic("bad job")
	})
}

func TestRecoverStoresPanicAsError(t *testing.T) {
	run := func() (err error) {
		defer Recover("", &err)
		panic("channel exploded")
	}
	err := run()
	assert.EqualError(t, err, "panic: channel exploded")

	quiet := func() (err error) {
		defer Recover("", &err)
		return errors.New("plain")
	}
	assert.EqualError(t, quiet(), "plain")
}
