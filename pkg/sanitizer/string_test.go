package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := map[string]string{
		"":                       "",
		"   ":                    "",
		"Aurora":                 "Aurora",
		"  Board   Room\t 2 \n ": "Board Room 2",
	}
	for in, want := range tests {
		assert.Equal(t, want, TrimAndNormalize(in), "input %q", in)
	}
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Board Room", DisplayName("Board\u200b \x00Room"))
	assert.Equal(t, "Sala Azul", DisplayName(" Sala\n\nAzul "))
	assert.Equal(t, DisplayName("Aurora"), DisplayName(DisplayName("Aurora")))
}
