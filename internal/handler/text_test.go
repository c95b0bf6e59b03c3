package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDigitsOnly(t *testing.T) {
	assert.True(t, digitsOnly("123456789"))
	assert.True(t, digitsOnly("0"))

	assert.False(t, digitsOnly(""))
	assert.False(t, digitsOnly("12a3"))
	assert.False(t, digitsOnly("-123"))
	assert.False(t, digitsOnly("12 3"))
}

func TestIsCancelWord(t *testing.T) {
	assert.True(t, isCancelWord("отмена"))
	assert.True(t, isCancelWord("Отмена"))
	assert.True(t, isCancelWord("CANCEL"))
	assert.True(t, isCancelWord("  выход  "))
	assert.True(t, isCancelWord("stop"))

	assert.False(t, isCancelWord("отменить"))
	assert.False(t, isCancelWord("https://gorbilet.com"))
	assert.False(t, isCancelWord(""))
}
