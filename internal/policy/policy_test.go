package policy

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tsbindgen/tsbindgen/internal/graph"
)

// Fixtures are authored in YAML and decoded with yaml.v3, the same decoder
// cmd/tsbindgen's loadPolicy uses for policy files.
func loadFixture(t *testing.T, name string) Policy {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	var p Policy
	require.NoError(t, yaml.Unmarshal(data, &p))
	return p
}

func TestDefaultPolicy(t *testing.T) {
	p := Default()
	require.Equal(t, graph.DiamondOverloadAll, p.Interfaces.DiamondResolution)
	require.Equal(t, "Item", p.Indexers.MethodName)
	require.Equal(t, "_new", p.Classes.HiddenMemberSuffix)
	require.True(t, p.Indexers.EmitPropertyWhenSingle)
}

func TestLoadFixtureOverridesEverything(t *testing.T) {
	p := loadFixture(t, "diamond_error.yaml")
	require.Equal(t, graph.DiamondError, p.Interfaces.DiamondResolution)
	require.Equal(t, graph.StaticSideError, p.StaticSide.Action)
	require.Equal(t, graph.MergeUnion, p.Constraints.MergeStrategy)
	require.True(t, p.Modules.AlwaysAliasImports)
	require.True(t, p.SkipsNamespace("System.Runtime.CompilerServices"))
	require.False(t, p.SkipsNamespace("System"))
	require.Equal(t, "ClrObject", p.TypeRenames["System.Object"])
}
