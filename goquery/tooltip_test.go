package goquery_test

import (
	"testing"

	"github.com/fwojciec/bisscrape"
	"github.com/fwojciec/bisscrape/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTooltip(t *testing.T) {
	t.Parallel()

	t.Run("parses a full armor tooltip", func(t *testing.T) {
		t.Parallel()

		text := `Sanctified Frost Witch's Helm
Item Level 277
Binds when picked up
Head
1458 Armor
+109 Stamina
+97 Intellect
Durability 100 / 100
Classes: Shaman
Requires Level 80
Frost Witch's Regalia (2/5)
(2) Set: Increases the critical effect chance of your Chain Heal by 10%.
(4) Set: Your Riptide spell grants 20% haste.`

		tt := goquery.ParseTooltip(text)

		require.NotNil(t, tt)
		require.NotNil(t, tt.ItemLevel)
		assert.Equal(t, 277, *tt.ItemLevel)
		require.NotNil(t, tt.Armor)
		assert.Equal(t, 1458, *tt.Armor)
		require.NotNil(t, tt.Durability)
		assert.Equal(t, bisscrape.Durability{Current: 100, Maximum: 100}, *tt.Durability)
		require.NotNil(t, tt.RequiredLevel)
		assert.Equal(t, 80, *tt.RequiredLevel)
		assert.Equal(t, "Head", tt.Slot)
		assert.Equal(t, "Binds when picked up", tt.Binding)
		assert.Equal(t, []string{"Shaman"}, tt.Classes)
		assert.Equal(t, []bisscrape.Stat{
			{Stat: "Stamina", Value: 109},
			{Stat: "Intellect", Value: 97},
		}, tt.Stats)
		require.NotNil(t, tt.SetInfo)
		assert.Equal(t, "Frost Witch's Regalia", tt.SetInfo.Name)
		assert.Equal(t, 2, tt.SetInfo.CurrentPieces)
		assert.Equal(t, 5, tt.SetInfo.TotalPieces)
		require.Len(t, tt.SetInfo.Bonuses, 2)
		assert.Equal(t, 4, tt.SetInfo.Bonuses[1].Pieces)
		assert.Equal(t, "Your Riptide spell grants 20% haste.", tt.SetInfo.Bonuses[1].Bonus)
	})

	t.Run("marks rating percentages", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("Equip: +2% Crit\n+3% Haste")

		require.NotNil(t, tt)
		assert.Equal(t, []bisscrape.Stat{
			{Stat: "Critical Strike", Value: 2, Percentage: true},
			{Stat: "Haste", Value: 3, Percentage: true},
		}, tt.Stats)
	})

	t.Run("splits an explicit class list", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("Classes: Priest, Mage, Warlock, Mage")

		require.NotNil(t, tt)
		assert.Equal(t, []string{"Priest", "Mage", "Warlock"}, tt.Classes)
	})

	t.Run("falls back to a single mentioned class", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("Only usable by a Paladin")

		require.NotNil(t, tt)
		assert.Equal(t, []string{"Paladin"}, tt.Classes)
	})

	t.Run("ignores class names inside other words", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("Two-Hand Axe\n120 - 180 Damage\n+40 Strength")

		require.NotNil(t, tt)
		assert.Empty(t, tt.Classes)
	})

	t.Run("ignores slot names inside other words", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("Headmaster's Charge\nTwo-Hand Staff\n+20 Intellect")

		require.NotNil(t, tt)
		assert.Empty(t, tt.Slot)
	})

	t.Run("reports vocabulary spelling regardless of case", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("worn on the head\nonly a death knight may wear this")

		require.NotNil(t, tt)
		assert.Equal(t, "Head", tt.Slot)
		assert.Equal(t, []string{"Death Knight"}, tt.Classes)
	})

	t.Run("each rule is independent", func(t *testing.T) {
		t.Parallel()

		tt := goquery.ParseTooltip("Requires Level 70")

		require.NotNil(t, tt)
		require.NotNil(t, tt.RequiredLevel)
		assert.Equal(t, 70, *tt.RequiredLevel)
		assert.Nil(t, tt.ItemLevel)
		assert.Nil(t, tt.Armor)
		assert.Nil(t, tt.SetInfo)
		assert.Empty(t, tt.Stats)
	})

	t.Run("returns nil when nothing matches", func(t *testing.T) {
		t.Parallel()

		assert.Nil(t, goquery.ParseTooltip("A pleasant breeze"))
		assert.Nil(t, goquery.ParseTooltip(""))
	})
}
