package apierror

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOfUnwraps(t *testing.T) {
	err := New(KindObjectNotFound, "not found")
	wrapped := fmt.Errorf("lookup customer 1001: %w", err)

	kind, ok := KindOf(wrapped)
	assert.True(t, ok)
	assert.Equal(t, KindObjectNotFound, kind)
	assert.True(t, IsKind(wrapped, KindObjectNotFound))
	assert.False(t, IsKind(wrapped, KindInvalidContact))
}

func TestKindOfNonDomainError(t *testing.T) {
	_, ok := KindOf(fmt.Errorf("plain error"))
	assert.False(t, ok)
}

func TestErrorString(t *testing.T) {
	err := Newf(KindInvalidContact, "invalid email %q", "x.org")
	assert.Equal(t, `invalid_contact: invalid email "x.org"`, err.Error())
}
