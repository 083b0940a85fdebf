// README: One-shot CLI; prints travel options (and optionally a summary) for one trip.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"pathplanner/internal/ai"
	"pathplanner/internal/config"
	"pathplanner/internal/maps"
	"pathplanner/internal/modules/summary"
	"pathplanner/internal/modules/travel"
)

func main() {
	from := flag.String("from", "Delhi", "source location")
	to := flag.String("to", "Mumbai", "destination")
	pref := flag.String("pref", "Cheapest", "Cheapest, Fastest, Comfortable or Eco-friendly")
	sortBy := flag.String("sort", "Default", "Default, Lowest Price or Shortest Duration")
	lang := flag.String("lang", "en", "summary language code")
	withSummary := flag.Bool("summary", false, "also print a prose summary")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	q, err := travel.NewQuery(*from, *to, *pref)
	if err != nil {
		log.Fatalf("invalid query: %v", err)
	}
	mode, err := travel.ParseSortMode(*sortBy)
	if err != nil {
		log.Fatalf("invalid sort: %v", err)
	}
	langCode, ok := summary.ParseLanguage(*lang)
	if !ok {
		log.Fatalf("unknown language %q", *lang)
	}

	ctx := context.Background()
	provider, closeProvider, err := ai.NewProvider(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("Failed to initialize AI provider: %v", err)
	}
	defer closeProvider()
	model := ai.Instrument(provider, ai.CallSiteOptions, cfg.AI.Timeout, nil)

	var geocoder maps.Geocoder
	if cfg.Maps.APIKey != "" {
		if geocoder, err = maps.NewGeocodeService(cfg.Maps.APIKey); err != nil {
			log.Fatalf("Failed to initialize geocoder: %v", err)
		}
	}

	svc := travel.NewService(model, travel.NewCurrencyResolver(geocoder, nil, nil), cfg.Maps.Timeout, nil)
	out, err := svc.Search(ctx, q)
	if err != nil {
		var me *travel.MalformedResponseError
		if errors.As(err, &me) {
			fmt.Fprintf(os.Stderr, "Model reply is not valid JSON:\n%s\nJSON Error: %s\n", me.Raw, me.Diagnostic)
			os.Exit(1)
		}
		log.Fatalf("Search failed: %v", err)
	}

	fmt.Printf("🌍 Travel Options from %s to %s\n", q.Source, q.Destination)
	settings := travel.DisplaySettings{SortBy: mode, Language: langCode, CurrencySymbol: out.CurrencySymbol}
	for _, view := range travel.Present(out.Result, settings, nil) {
		fmt.Printf("\n%s %s\n", view.Icon, view.Title)
		for _, card := range view.Cards {
			fmt.Printf("  %-20s %10s  %-10s %s\n", card.Provider, card.PriceText, card.Duration, card.Description)
			if card.BookingURL != "" {
				fmt.Printf("  %-20s %s\n", "", card.BookingURL)
			}
		}
	}

	if *withSummary {
		sumModel := ai.Instrument(provider, ai.CallSiteSummary, cfg.AI.Timeout, nil)
		sumSvc := summary.NewService(sumModel, ai.Instrument(provider, ai.CallSiteTranslate, cfg.AI.Timeout, nil), nil, 0, nil)
		sum, err := sumSvc.Summarize(ctx, q.Source, q.Destination, langCode)
		if err != nil {
			log.Fatalf("Summary failed: %v", err)
		}
		fmt.Printf("\nTravel Summary (%s)\n\n%s\n", summary.LanguageName(sum.Language), sum.Text)
	}
}
