package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"tasterover/cmd/tasterover/ui"
	"tasterover/internal/api"
	"tasterover/internal/failure"
	"tasterover/internal/flow"
	"tasterover/internal/session"
)

var menuItem string

// errFailed marks a request that ended in a Failed state. The message has
// already been printed.
var errFailed = errors.New("request failed")

var weatherCmd = &cobra.Command{
	Use:     "weather [postcode]",
	Short:   "Show the current weather and forecast for a UK postcode",
	Example: `  tasterover weather "SW1A 1AA"`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runWeather,
}

var nutritionCmd = &cobra.Command{
	Use:   "nutrition [ingredient]...",
	Short: "Estimate calories for a list of ingredients",
	Long: `Estimates calories for each ingredient. Ingredients are taken from the
arguments, one per argument, or from stdin one per line when no arguments
are given.`,
	Example: `  tasterover nutrition "2 eggs" "100g chicken breast"
  printf '2 eggs\n1 banana\n' | tasterover nutrition`,
	RunE: runNutrition,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "List the McDonald's menu, or show one product with --item",
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the backend is reachable",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

// report prints a Failed state and converts it to errFailed.
func report[T any](w io.Writer, st flow.State[T]) error {
	if !st.IsFailed() {
		return nil
	}
	prefix := "Error:"
	if st.Kind == failure.QuotaExhausted {
		prefix = "Quota:"
	}
	fmt.Fprintln(w, prefix, st.Message)
	return errFailed
}

func runWeather(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, _ := newSession(cfg)

	postcode := strings.Join(args, " ")
	logger.Debug("weather lookup", zap.String("postcode", postcode))

	st, err := sess.WeatherFlow().Run(cmd.Context(), postcode)
	if err != nil && !flow.IsValidation(err) {
		return err
	}
	if err := report(cmd.ErrOrStderr(), st); err != nil {
		return err
	}

	printWeather(cmd.OutOrStdout(), st.Result)
	return nil
}

func printWeather(w io.Writer, res api.WeatherResult) {
	fmt.Fprintf(w, "Current weather · %s\n", res.Postcode)
	fmt.Fprintf(w, "%s  %s  %s\n\n", ui.WeatherIcon(res.Current.Condition), ui.Temp(res.Current.Temperature), res.Current.Condition)

	now := nowFunc()
	for _, d := range res.Forecast {
		fmt.Fprintf(w, "%-11s %s  %7s  %s\n", ui.FormatDate(d.Date, now), ui.WeatherIcon(d.Mainly), ui.Temp(d.AvgTemp), d.Mainly)
	}
}

func runNutrition(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, _ := newSession(cfg)

	var lines []string
	for _, arg := range args {
		lines = append(lines, session.SplitLines(arg)...)
	}
	if len(args) == 0 {
		lines, err = readLines(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read ingredients: %w", err)
		}
	}
	logger.Debug("nutrition estimate", zap.Int("lines", len(lines)))

	st, err := sess.NutritionFlow().Run(cmd.Context(), lines)
	if err != nil && !flow.IsValidation(err) {
		return err
	}
	if err := report(cmd.ErrOrStderr(), st); err != nil {
		return err
	}

	printNutrition(cmd.OutOrStdout(), st.Result)
	return nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func printNutrition(w io.Writer, res api.NutritionResult) {
	for _, it := range res.Items {
		fmt.Fprintf(w, "%-30s %-14s %6d kcal", it.Ingredient, it.AssumedAmount, it.CaloriesKcal)
		if it.Notes != "" {
			fmt.Fprintf(w, "  (%s)", it.Notes)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "\nTotal: %d kcal\n", res.TotalCaloriesKcal)
}

func runMenu(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	sess, _ := newSession(cfg)

	task, err := sess.Navigate(session.Menu)
	if err != nil {
		return err
	}
	if task != nil {
		task(cmd.Context())
	}
	if err := report(cmd.ErrOrStderr(), sess.MenuFlow().State()); err != nil {
		return err
	}

	items := sess.MenuItems()
	out := cmd.OutOrStdout()
	if menuItem == "" {
		fmt.Fprintf(out, "Browse %d products\n\n", len(items))
		for _, it := range items {
			fmt.Fprintf(out, "%-40s %10s %6.0f kcal\n", it.Name, it.DisplayPrice(), it.Nutrition.EnergyKcal)
		}
		return nil
	}

	for _, it := range items {
		if !strings.EqualFold(it.Name, menuItem) {
			continue
		}
		if err := sess.OpenDetail(it.Key); err != nil {
			return err
		}
		selected, _ := sess.Selected()
		printProduct(out, selected)
		return nil
	}
	return fmt.Errorf("%q: %w", menuItem, session.ErrUnknownItem)
}

func printProduct(w io.Writer, it api.MenuItem) {
	n := it.Nutrition
	fmt.Fprintf(w, "%s  (%s)\n", it.Name, it.DisplayPrice())
	if it.Description != "" {
		fmt.Fprintf(w, "\n%s\n", it.Description)
	}
	fmt.Fprintf(w, "\nEnergy     %.0f kcal (%.0f kJ)\n", n.EnergyKcal, n.EnergyKJ)
	fmt.Fprintf(w, "Protein    %s\n", ui.Grams(n.Protein))
	fmt.Fprintf(w, "Carbs      %s\n", ui.Grams(n.Carbohydrates))
	fmt.Fprintf(w, "Sugars     %s\n", ui.Grams(n.Sugars))
	fmt.Fprintf(w, "Fat        %s\n", ui.Grams(n.Fat))
	fmt.Fprintf(w, "Saturates  %s\n", ui.Grams(n.Saturates))
	fmt.Fprintf(w, "Fibre      %s\n", ui.Grams(n.Fibre))
	fmt.Fprintf(w, "Salt       %s\n", ui.Grams(n.Salt))
	if it.Ingredients != "" {
		fmt.Fprintf(w, "\nIngredients: %s\n", it.Ingredients)
	}
	if it.Allergens != "" {
		fmt.Fprintf(w, "\nAllergens: %s\n", it.Allergens)
	}
}

func runHealth(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, client := newSession(cfg)

	ok, err := client.Health(cmd.Context())
	if err != nil {
		return fmt.Errorf("backend %s unreachable: %w", client.BaseURL(), err)
	}
	if !ok {
		return fmt.Errorf("backend %s reports unhealthy", client.BaseURL())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "ok  %s\n", client.BaseURL())
	return nil
}
