// Package items provides the player inventory and crafting mechanics.
// Item and recipe definitions come from config; this package only
// applies them.
package items

import (
	"errors"
	"fmt"

	"github.com/talgya/tidewood/internal/config"
)

var (
	// ErrUnknownRecipe is returned when crafting a name no recipe matches.
	ErrUnknownRecipe = errors.New("unknown recipe")
	// ErrMissingInputs is returned when the inventory cannot cover a
	// recipe's inputs.
	ErrMissingInputs = errors.New("missing inputs")
)

// Inventory is a counted bag of item kinds. Not safe for concurrent
// use; the session loop owns it.
type Inventory struct {
	counts map[string]int
}

// NewInventory creates an empty inventory.
func NewInventory() *Inventory {
	return &Inventory{counts: make(map[string]int)}
}

// Add deposits n of an item kind. Non-positive n is a no-op.
func (inv *Inventory) Add(kind string, n int) {
	if n <= 0 || kind == "" {
		return
	}
	inv.counts[kind] += n
}

// Count returns how many of a kind the inventory holds.
func (inv *Inventory) Count(kind string) int {
	return inv.counts[kind]
}

// Remove withdraws n of a kind. Returns false without changing
// anything if the inventory holds fewer than n.
func (inv *Inventory) Remove(kind string, n int) bool {
	if n <= 0 {
		return true
	}
	if inv.counts[kind] < n {
		return false
	}
	inv.counts[kind] -= n
	if inv.counts[kind] == 0 {
		delete(inv.counts, kind)
	}
	return true
}

// All returns a copy of the counts.
func (inv *Inventory) All() map[string]int {
	out := make(map[string]int, len(inv.counts))
	for k, v := range inv.counts {
		out[k] = v
	}
	return out
}

// Crafter applies recipes to an inventory.
type Crafter struct {
	recipes map[string]config.Recipe
}

// NewCrafter indexes the recipe table. Recipes with no output are
// dropped rather than rejected, so a bad config entry degrades instead
// of aborting startup.
func NewCrafter(recipes []config.Recipe) *Crafter {
	c := &Crafter{recipes: make(map[string]config.Recipe, len(recipes))}
	for _, r := range recipes {
		if r.Name == "" || r.Output == "" {
			continue
		}
		if r.Count <= 0 {
			r.Count = 1
		}
		c.recipes[r.Name] = r
	}
	return c
}

// Recipes returns the indexed recipe names.
func (c *Crafter) Recipes() []config.Recipe {
	out := make([]config.Recipe, 0, len(c.recipes))
	for _, r := range c.recipes {
		out = append(out, r)
	}
	return out
}

// Craft consumes a recipe's inputs from the inventory and deposits the
// output. The inventory is untouched on failure.
func (c *Crafter) Craft(inv *Inventory, name string) error {
	r, ok := c.recipes[name]
	if !ok {
		return fmt.Errorf("craft %q: %w", name, ErrUnknownRecipe)
	}
	for kind, n := range r.Inputs {
		if inv.Count(kind) < n {
			return fmt.Errorf("craft %q: %w", name, ErrMissingInputs)
		}
	}
	for kind, n := range r.Inputs {
		inv.Remove(kind, n)
	}
	inv.Add(r.Output, r.Count)
	return nil
}
