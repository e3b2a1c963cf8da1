package shell

import (
	"fmt"
	"strings"

	"tasterover/cmd/tasterover/ui"
	"tasterover/internal/api"
)

// productMarkdown renders a menu item for the detail screen. Optional
// sections are omitted when the backend has nothing for them.
func productMarkdown(item api.MenuItem) string {
	var sb strings.Builder
	n := item.Nutrition

	fmt.Fprintf(&sb, "# %s\n\n", item.Name)
	fmt.Fprintf(&sb, "**%s**\n\n", item.DisplayPrice())
	if item.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", item.Description)
	}

	sb.WriteString("## Nutrition Information\n\n")
	sb.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&sb, "| Energy | %.0f kcal (%.0f kJ) |\n", n.EnergyKcal, n.EnergyKJ)
	fmt.Fprintf(&sb, "| Protein | %s |\n", ui.Grams(n.Protein))
	fmt.Fprintf(&sb, "| Carbs | %s |\n", ui.Grams(n.Carbohydrates))
	fmt.Fprintf(&sb, "| Sugars | %s |\n", ui.Grams(n.Sugars))
	fmt.Fprintf(&sb, "| Fat | %s |\n", ui.Grams(n.Fat))
	fmt.Fprintf(&sb, "| Saturates | %s |\n", ui.Grams(n.Saturates))
	fmt.Fprintf(&sb, "| Fibre | %s |\n", ui.Grams(n.Fibre))
	fmt.Fprintf(&sb, "| Salt | %s |\n\n", ui.Grams(n.Salt))

	if item.Ingredients != "" {
		fmt.Fprintf(&sb, "## Ingredients\n\n%s\n\n", item.Ingredients)
	}
	if item.Allergens != "" {
		fmt.Fprintf(&sb, "## Allergen Information\n\n%s\n\n", item.Allergens)
	}
	if item.ImageURL != "" {
		fmt.Fprintf(&sb, "[Image](%s)\n", item.ImageURL)
	}
	return sb.String()
}
