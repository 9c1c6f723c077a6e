package goquery_test

import (
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/goquery"
	"github.com/fwojciec/bisscrape/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const characterPage = `<!DOCTYPE html>
<html>
<head><title>Aelektra - That's My BIS</title></head>
<body>
<div class="container">
	<h1><a class="text-shaman" href="/11258/chonglers/c/540876/aelektra">Aelektra</a></h1>
	<ul class="list-inline">
		<li><small>Draenei</small></li>
		<li><small>Level 80</small></li>
		<li><span class="fas fa-fw fa-heart"></span> Restoration Shaman</li>
		<li><small>Jewelcrafting, Alchemy</small></li>
	</ul>
	<div class="row">
		<div class="col-12">
			<div><span class="text-legendary">Main Wishlist</span></div>
			<ol class="js-wishlist-sorted">
				<li value="1"><a class="q4" data-wowhead="item=51242">Sanctified Frost Witch's Helm</a></li>
				<li value="2"><a class="q4" data-wowhead="item=40395">Torch of Holy Fire</a></li>
			</ol>
			<ol class="js-wishlist-unsorted">
				<li value="2"><a class="q4" data-wowhead="item=40395">Torch of Holy Fire</a>
					<ul><li>Note: after tanks</li></ul>
				</li>
				<li value="1"><a class="q4" data-wowhead="item=51242">Sanctified Frost Witch's Helm</a></li>
			</ol>
		</div>
	</div>
	<div class="row">
		<div class="col-12">
			<div><span class="text-success">Loot Received</span></div>
			<ol>
				<li><a class="q3" data-wowhead="item=100">Blue Ring</a></li>
			</ol>
		</div>
	</div>
	<div class="row">
		<div class="col-12">
			<div><span class="text-muted">Public Note</span></div>
			<div class="js-markdown-parsed"><p>Healer <strong>main</strong></p></div>
		</div>
	</div>
</div>
</body>
</html>`

var fixedTime = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func TestCharacterExtractor_ExtractCharacter(t *testing.T) {
	t.Parallel()

	t.Run("extracts a complete character page", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewCharacterExtractor(goquery.WithClock(func() time.Time { return fixedTime }))
		c, err := e.ExtractCharacter(characterPage, characterURL)

		require.NoError(t, err)
		assert.Equal(t, "Aelektra", c.Name)
		assert.Equal(t, "Shaman", c.Class)
		assert.Equal(t, "Draenei", c.Race)
		require.NotNil(t, c.Level)
		assert.Equal(t, 80, *c.Level)
		assert.Equal(t, []string{"Jewelcrafting", "Alchemy"}, c.Professions)
		assert.Equal(t, "Healer main", c.PublicNote)
		assert.Equal(t, characterURL, c.URL)
		assert.Equal(t, fixedTime, c.ScrapedAt)
		assert.NotNil(t, c.Recipes)
		assert.Empty(t, c.Recipes)

		require.Len(t, c.LootReceived, 1)
		assert.Equal(t, "Blue Ring", c.LootReceived[0].Name)
		assert.Equal(t, bisscrape.QualityRare, c.LootReceived[0].Quality)
	})

	t.Run("counts wishlist items from the unsorted list only", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewCharacterExtractor()
		c, err := e.ExtractCharacter(characterPage, characterURL)

		require.NoError(t, err)
		require.Len(t, c.Wishlists, 1)
		w := c.Wishlists[0]
		assert.Equal(t, "Main Wishlist", w.Name)
		require.Len(t, w.Items, 2)
		assert.Equal(t, "Torch of Holy Fire", w.Items[0].Name)
		assert.Equal(t, "after tanks", w.Items[0].Note)
		require.NotNil(t, w.Items[0].Priority)
		assert.Equal(t, 2, *w.Items[0].Priority)
		assert.Equal(t, "51242", w.Items[1].CatalogID)
		assert.Equal(t, 2, c.ItemCount())
	})

	t.Run("falls back to a styled heading for the name", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Other - That's My BIS</title></head>
<body><h1><a class="text-unknown-class" href="#">Zed</a></h1></body></html>`

		c, err := goquery.NewCharacterExtractor().ExtractCharacter(html, characterURL)

		require.NoError(t, err)
		assert.Equal(t, "Zed", c.Name)
	})

	t.Run("falls back to the page title for the name", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Thrall - That’s My BIS</title></head><body></body></html>`

		c, err := goquery.NewCharacterExtractor().ExtractCharacter(html, characterURL)

		require.NoError(t, err)
		assert.Equal(t, "Thrall", c.Name)
	})

	t.Run("treats an em-dash note as absent", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div class="col-12">
<div><span class="text-muted">Public Note</span></div>
<div class="js-markdown-parsed">—</div>
</div></body></html>`

		c, err := goquery.NewCharacterExtractor().ExtractCharacter(html, characterURL)

		require.NoError(t, err)
		assert.Empty(t, c.PublicNote)
	})

	t.Run("converts the note with the configured converter", func(t *testing.T) {
		t.Parallel()

		var got string
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "Healer **main**\n", nil
			},
		}

		c, err := goquery.NewCharacterExtractor(goquery.WithNoteConverter(conv)).ExtractCharacter(characterPage, characterURL)

		require.NoError(t, err)
		assert.Equal(t, "Healer **main**", c.PublicNote)
		assert.Contains(t, got, "<strong>main</strong>")
	})

	t.Run("keeps plain text when conversion fails", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) {
				return "", errors.New("boom")
			},
		}

		c, err := goquery.NewCharacterExtractor(goquery.WithNoteConverter(conv)).ExtractCharacter(characterPage, characterURL)

		require.NoError(t, err)
		assert.Equal(t, "Healer main", c.PublicNote)
	})

	t.Run("returns an empty record for an empty page", func(t *testing.T) {
		t.Parallel()

		c, err := goquery.NewCharacterExtractor().ExtractCharacter("", characterURL)

		require.NoError(t, err)
		assert.Empty(t, c.Name)
		assert.Nil(t, c.Level)
		assert.NotNil(t, c.Wishlists)
		assert.Empty(t, c.Wishlists)
		assert.NotNil(t, c.LootReceived)
		assert.NotNil(t, c.Professions)
		assert.Equal(t, 0, c.ItemCount())
	})
}
