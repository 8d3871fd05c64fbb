package templates

import (
	"testing"

	"github.com/flosch/pongo2/v6"
	"github.com/stretchr/testify/require"
)

func TestBaseContext_ItemFieldsWin(t *testing.T) {
	base := NewBaseContext("data", "sections")

	ctx := base.With(Fields{"data": pongo2.AsValue("item"), "slug": pongo2.AsValue("/a")})
	require.Equal(t, "item", ctx["data"].(*pongo2.Value).String())
	require.Equal(t, "/a", ctx["slug"].(*pongo2.Value).String())

	fresh := base.With(nil)
	require.Equal(t, "sections", fresh["data"], "base is not mutated by an overlay")
	require.NotContains(t, fresh, "slug")
}
