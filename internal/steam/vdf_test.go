package steam

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryFoldersVDF = `
"libraryfolders"
{
	"0"
	{
		"path"		"/home/user/.steam/steam"
		"label"		""
		"apps"
		{
			"228980"		"0"
		}
	}
	"1"
	{
		"path"		"/mnt/games/steam"
		"label"		"Games"
		"apps"
		{
			"2767030"		"80000000000"
		}
	}
}
`

func TestParseVDF_LibraryFolders(t *testing.T) {
	root, err := ParseVDF(strings.NewReader(libraryFoldersVDF))
	require.NoError(t, err)

	folders, ok := root.Block("libraryfolders")
	require.True(t, ok)
	second, ok := folders.Block("1")
	require.True(t, ok)
	assert.Equal(t, "/mnt/games/steam", second.String("path"))
	assert.Equal(t, "Games", second.String("label"))

	assert.Equal(t, []string{"/home/user/.steam/steam", "/mnt/games/steam"}, libraryPaths(root))
}

func TestParseVDF_CommentsEscapesAndBareTokens(t *testing.T) {
	vdf := `// leading comment
"root"
{
	"quoted"	"say \"hi\""   // trailing comment
	bare	value
	"path"	"C:\\Games\\Steam"
}`
	root, err := ParseVDF(strings.NewReader(vdf))
	require.NoError(t, err)

	block, ok := root.Block("root")
	require.True(t, ok)
	assert.Equal(t, `say "hi"`, block.String("quoted"))
	assert.Equal(t, "value", block.String("bare"))
	assert.Equal(t, `C:\Games\Steam`, block.String("path"))
}

func TestParseVDF_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"unclosed quote", `"root" { "key" "value`},
		{"unclosed block", `"root" { "key" "value"`},
		{"dangling key", `"root"`},
		{"stray close", `}`},
		{"missing value", `"root" { "key" }`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseVDF(strings.NewReader(tt.input))
			assert.Error(t, err)
		})
	}
}

func TestParseVDF_Empty(t *testing.T) {
	root, err := ParseVDF(strings.NewReader("  \n"))
	require.NoError(t, err)
	assert.Empty(t, root)
	assert.Nil(t, libraryPaths(root))
}

func TestParseAppManifest(t *testing.T) {
	acf := `
"AppState"
{
	"appid"		"2767030"
	"Universe"		"1"
	"name"		"Marvel Rivals"
	"installdir"		"MarvelRivals"
}
`
	m, err := ParseAppManifest(strings.NewReader(acf))
	require.NoError(t, err)
	assert.Equal(t, "2767030", m.AppID)
	assert.Equal(t, "Marvel Rivals", m.Name)
	assert.Equal(t, "MarvelRivals", m.InstallDir)

	_, err = ParseAppManifest(strings.NewReader(`"Other" { }`))
	assert.Error(t, err)
}
