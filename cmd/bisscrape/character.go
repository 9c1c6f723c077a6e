package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/bisscrape"
)

// previewItems is the number of items listed per wishlist.
const previewItems = 3

// Run executes the character command.
func (c *CharacterCmd) Run(deps *Dependencies) error {
	character, err := deps.Scraper.Character(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", bisscrape.ErrorMessage(err))
		return err
	}

	if c.JSON {
		enc := json.NewEncoder(deps.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(character)
	}

	name := character.Name
	if name == "" {
		name = "(unknown)"
	}
	fmt.Fprintf(deps.Stdout, "Name:      %s\n", name)
	fmt.Fprintf(deps.Stdout, "Class:     %s\n", orDash(character.Class))
	if character.Level != nil {
		fmt.Fprintf(deps.Stdout, "Level:     %d\n", *character.Level)
	} else {
		fmt.Fprintln(deps.Stdout, "Level:     -")
	}
	fmt.Fprintf(deps.Stdout, "Wishlists: %d\n", len(character.Wishlists))

	for i, w := range character.Wishlists {
		fmt.Fprintf(deps.Stdout, "\nWishlist %d: %s (%d items)\n", i+1, w.Name, len(w.Items))
		if len(w.Items) == 0 {
			fmt.Fprintln(deps.Stdout, "  no items found")
			continue
		}
		for j, item := range w.Items {
			if j == previewItems {
				fmt.Fprintf(deps.Stdout, "  ... %d more\n", len(w.Items)-previewItems)
				break
			}
			fmt.Fprintf(deps.Stdout, "  %d. %s (%s)\n", j+1, item.Name, item.Quality)
		}
	}

	if len(character.LootReceived) > 0 {
		fmt.Fprintf(deps.Stdout, "\nLoot received: %d items\n", len(character.LootReceived))
	}

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
