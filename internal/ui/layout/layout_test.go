package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(MinWidth-1, MinHeight))
	assert.True(t, IsTooSmall(MinWidth, MinHeight-1))
	assert.False(t, IsTooSmall(MinWidth, MinHeight))
}

func TestFormatTimer(t *testing.T) {
	assert.Equal(t, "0s", FormatTimer(0))
	assert.Equal(t, "75s", FormatTimer(75))
}

func TestRenderHeader_ShowsStatus(t *testing.T) {
	out := RenderHeader("Scalar Addition", Status{Score: 7, Streak: 3, Timer: 12}, 120)

	assert.Contains(t, out, "mathdrill")
	assert.Contains(t, out, "Scalar Addition")
	assert.Contains(t, out, "Score")
	assert.Contains(t, out, "7")
	assert.Contains(t, out, "12s")
}

func TestRenderHeader_HidesTimer(t *testing.T) {
	out := RenderHeader("", Status{Score: 1, Streak: 1, Timer: -1}, 120)
	assert.NotContains(t, out, "s ")
	assert.NotRegexp(t, `\d+s\b`, out)
}

func TestRenderFooter(t *testing.T) {
	out := RenderFooter([]KeyHint{{Key: "enter", Description: "Submit"}}, 80)
	assert.Contains(t, out, "enter")
	assert.Contains(t, out, "Submit")
}
