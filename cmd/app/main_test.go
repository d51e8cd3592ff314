package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command in a clean directory, so no stray .env is picked up.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("TELEGRAM_ALLOWED_USERS", "")

	var out bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { dataFile = "" })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestMenuAddsBook(t *testing.T) {
	file := filepath.Join(t.TempDir(), "library.txt")

	out, err := execute(t, "1\nDune\nHerbert\n1965\n6\n", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Книга успешно добавлена!")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "1;Dune;Herbert;1965;available\n", string(data))
}

func TestListAndSearch(t *testing.T) {
	file := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(file, []byte("1;Dune;Herbert;1965;available\n2;Solaris;Lem;1961;checked_out\n"), 0644))

	out, err := execute(t, "", "list", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "| ID: 2 | Название: Solaris, Автор: Lem, Год: 1961, Статус: выдана")

	out, err = execute(t, "", "search", "--file", file, "1965")
	require.NoError(t, err)
	assert.Contains(t, out, "Dune")
	assert.NotContains(t, out, "Solaris")
}

func TestCorruptFileAbortsStartup(t *testing.T) {
	file := filepath.Join(t.TempDir(), "library.txt")
	require.NoError(t, os.WriteFile(file, []byte("1;Dune;Herbert\n"), 0644))

	_, err := execute(t, "", "list", "--file", file)
	assert.Error(t, err)
}

func TestImport(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "library.txt")
	page := filepath.Join(dir, "books.html")
	html := `<table>
<tr><th>Title</th><th>Author</th><th>Year</th></tr>
<tr><td>Dune</td><td>Herbert</td><td>1965</td></tr>
<tr><td>Solaris</td><td>Lem</td><td>unknown</td></tr>
<tr><td>Roadside Picnic</td><td>Strugatsky</td><td>1972</td></tr>
</table>`
	require.NoError(t, os.WriteFile(page, []byte(html), 0644))

	out, err := execute(t, "", "import", "--file", file, page)
	require.NoError(t, err)
	assert.Contains(t, out, "Добавлено книг: 2, пропущено: 1")

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "1;Dune;Herbert;1965;available\n2;Roadside Picnic;Strugatsky;1972;available\n", string(data))
}

func TestBotRequiresToken(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "")
	_, err := execute(t, "", "bot", "--file", filepath.Join(t.TempDir(), "library.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_TOKEN")
}
