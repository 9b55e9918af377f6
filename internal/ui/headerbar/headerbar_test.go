package headerbar

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/llehouerou/top2000/internal/ui/testutil"
)

func TestRender(t *testing.T) {
	out := testutil.StripANSI(Render(0, "", 100))

	assert.Contains(t, out, "TOP 2000")
	for _, tab := range Tabs {
		assert.Contains(t, out, tab.Key+" "+tab.Name)
	}
	assert.Contains(t, out, "not logged in")
	assert.Equal(t, 100, testutil.MeasureWidth(out))
}

func TestRender_User(t *testing.T) {
	out := testutil.StripANSI(Render(2, "fan@example.com", 100))
	assert.Contains(t, out, "fan@example.com")
	assert.NotContains(t, out, "not logged in")
}

func TestRender_Narrow(t *testing.T) {
	assert.Empty(t, Render(0, "", 10))

	out := testutil.StripANSI(Render(0, "someone@example.com", 40))
	assert.NotContains(t, out, "someone", "account is dropped when it does not fit")
}
