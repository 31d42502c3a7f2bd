package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNickname(t *testing.T) {
	t.Parallel()

	for range 10 {
		name := GenerateNickname()
		assert.NotEmpty(t, name)
	}
}
