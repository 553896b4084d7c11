package song

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/geocine/koliadnyk/internal/frontmatter"
	"github.com/geocine/koliadnyk/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const novaRadist = `# Нова радість стала

Нова радість стала,
Яка не бувала

:::chorus
Небесний цар
:::

Над вертепом звізда ясна
Світу засіяла

Де Христос родився,
З Діви воплотився
`

func TestProcessChorusSong(t *testing.T) {
	a := NewAssembler(Options{HeadingShift: 2})

	s, err := a.Process("колядки/nova-radist.md", []byte(novaRadist))
	require.NoError(t, err)

	assert.Equal(t, "nova-radist", s.ID)
	assert.Equal(t, "Нова радість стала", s.Title)
	assert.Equal(t, "колядки/nova-radist.md", s.Source)
	assert.Contains(t, s.Body, "<h3>Нова радість стала</h3>")
	assert.Contains(t, s.Body, "Нова радість стала,<br/>\nЯка не бувала")
	assert.NotContains(t, s.Body, "<footer>")
	assert.Equal(t, 3, strings.Count(s.Body, `<div class="chorus">`))
	assert.Equal(t, 3, strings.Count(s.Body, "<i>Небесний цар</i>"))

	// verse, chorus, verse, chorus, verse, chorus
	order := []string{"Яка не бувала", "Небесний цар", "Світу засіяла", "Небесний цар", "З Діви воплотився", "Небесний цар"}
	pos := 0
	for _, want := range order {
		i := strings.Index(s.Body[pos:], want)
		require.GreaterOrEqual(t, i, 0, "%q after offset %d", want, pos)
		pos += i + len(want)
	}
}

func TestProcessCollection(t *testing.T) {
	a := NewAssembler(Options{HeadingShift: 2})
	sources := map[string]string{
		"колядки/nova-radist.md":   "# Нова радість стала\n\nверс\n",
		"колядки/dobryi-vechir.md": "# Добрий вечір тобі\n\nверс\n",
	}

	var songs []*models.Song
	for _, name := range []string{"колядки/dobryi-vechir.md", "колядки/nova-radist.md"} {
		s, err := a.Process(name, []byte(sources[name]))
		require.NoError(t, err)
		songs = append(songs, s)
	}
	SortByTitle(songs)

	c, err := models.NewCollection(models.Group{Name: "колядки"}, songs)
	require.NoError(t, err)
	assert.Equal(t, []string{"Добрий вечір тобі", "Нова радість стала"}, c.Titles())
	assert.Equal(t, []string{"dobryi-vechir", "nova-radist"}, ids(c.Songs))
}

func TestProcessFooter(t *testing.T) {
	a := NewAssembler(Options{})

	s, err := a.Process("shchedryk.md", []byte("# Щедрик\n\nЩедрик, щедрик\n\n---\n\nСлова народні\n"))
	require.NoError(t, err)
	assert.Contains(t, s.Body, "<h1>Щедрик</h1>")
	assert.Contains(t, s.Body, "<footer>\n<p>Слова народні</p>\n</footer>")
	assert.NotContains(t, s.Body, "<hr")
}

func TestProcessLeadingDividerIsNotFrontMatter(t *testing.T) {
	a := NewAssembler(Options{})

	s, err := a.Process("kolochava.md", []byte("---\n# Щедрик\n\nЩедрик, щедрик\n\n---\nСлова народні\n"))
	require.NoError(t, err)
	assert.Equal(t, "Щедрик", s.Title)
	assert.Contains(t, s.Body, "<p>Щедрик, щедрик</p>")
	assert.Contains(t, s.Body, "<footer>\n<p>Слова народні</p>\n</footer>")
}

func TestProcessChorusWithTable(t *testing.T) {
	a := NewAssembler(Options{})

	s, err := a.Process("table.md", []byte("# T\n\nV1\n\n:::Chorus\n| a | b |\n|---|---|\n| 1 | 2 |\n:::\n\nV2\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(s.Body, "<table>"))
	assert.Equal(t, 2, strings.Count(s.Body, `class="chorus"`))
}

func TestProcessTitleFallback(t *testing.T) {
	a := NewAssembler(Options{})

	s, err := a.Process("shchedryk.md", []byte("---\ntitle: Щедрик\n---\nЩедрик, щедрик\n"))
	require.NoError(t, err)
	assert.Equal(t, "Щедрик", s.Title)
	assert.NotContains(t, s.Body, "title:")

	s, err = a.Process("dir/shchedryk.markdown", []byte("Щедрик, щедрик\n"))
	require.NoError(t, err)
	assert.Equal(t, "shchedryk", s.Title)
	assert.Equal(t, "shchedryk", s.ID)
}

func TestProcessRawHTMLHeadingShifts(t *testing.T) {
	a := NewAssembler(Options{HeadingShift: 1})

	s, err := a.Process("raw.md", []byte("<h1>Сирий <em>заголовок</em></h1>\n\nверс\n"))
	require.NoError(t, err)
	assert.Contains(t, s.Body, "<h2>Сирий <em>заголовок</em></h2>")
	assert.Equal(t, "Сирий заголовок", s.Title)
}

func TestProcessNormalizesInput(t *testing.T) {
	a := NewAssembler(Options{})

	s, err := a.Process("bom.md", []byte("\ufeff# Щедрик\r\n\r\nрядок\r\nдругий\r\n"))
	require.NoError(t, err)
	assert.Equal(t, "Щедрик", s.Title)
	assert.Contains(t, s.Body, "рядок<br/>\nдругий")
	assert.NotContains(t, s.Body, "\r")
}

func TestProcessErrors(t *testing.T) {
	a := NewAssembler(Options{})

	_, err := a.Process("bad.md", []byte{0xff, 0xfe, 'x'})
	assert.True(t, errors.Is(err, ErrParse))
	assert.Contains(t, err.Error(), "bad.md")

	_, err = a.Process("front.md", []byte("---\ntitle: [unclosed\n---\ntext\n"))
	assert.True(t, errors.Is(err, ErrParse))
	assert.True(t, errors.Is(err, frontmatter.ErrMalformed))

	_, err = a.Process("table.md", []byte(":::chorus\n| a |\n|---|\n| b |\n:::\n\nверс\n"))
	assert.True(t, errors.Is(err, ErrParse))
}

func TestProcessConcurrently(t *testing.T) {
	a := NewAssembler(Options{HeadingShift: 2})

	var wg sync.WaitGroup
	results := make([]*models.Song, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, err := a.Process(fmt.Sprintf("song-%d.md", i), []byte(novaRadist))
			assert.NoError(t, err)
			results[i] = s
		}(i)
	}
	wg.Wait()

	for i, s := range results {
		require.NotNil(t, s)
		assert.Equal(t, fmt.Sprintf("song-%d", i), s.ID)
		assert.Equal(t, results[0].Body, s.Body)
	}
}

func TestNewAssemblerClampsShift(t *testing.T) {
	assert.Zero(t, NewAssembler(Options{HeadingShift: -3}).HeadingShift())
}

func TestID(t *testing.T) {
	assert.Equal(t, "shchedryk", ID("колядки/shchedryk.md"))
	assert.Equal(t, "v.1", ID("v.1.mkd"))
	assert.Equal(t, "plain", ID("plain"))
}
