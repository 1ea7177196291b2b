package search

import (
	"reflect"
	"testing"

	"github.com/marosa/locator-service/internal/cities"
	"github.com/marosa/locator-service/internal/places"
)

func testCities() []cities.City {
	return []cities.City{
		{EnglishName: "Sofia", BulgarianName: "София", Latitude: 42.7, Longitude: 23.3},
		{EnglishName: "Plovdiv", BulgarianName: "Пловдив", Latitude: 42.14, Longitude: 24.75},
		{EnglishName: "Varna", BulgarianName: "Варна", Latitude: 43.21, Longitude: 27.91},
	}
}

func place(id, name string) places.Place {
	return places.Place{
		PlaceID:     id,
		DisplayName: &places.DisplayName{Text: name},
	}
}

func placeNames(r Result) []string {
	out := make([]string, 0, len(r.Places))
	for _, p := range r.Places {
		out = append(out, p.Name())
	}
	return out
}

func cityNames(r Result) []string {
	out := make([]string, 0, len(r.Cities))
	for _, c := range r.Cities {
		out = append(out, c.EnglishName)
	}
	return out
}

func TestMatchEmptyQuery(t *testing.T) {
	pool := []places.Place{place("p1", "Мароса София Център")}

	for _, query := range []string{"", "   ", "\t\n"} {
		result := Match(query, testCities(), pool, Options{})
		if len(result.Cities) != 0 || len(result.Places) != 0 {
			t.Errorf("Match(%q) = %d cities, %d places, want empty", query, len(result.Cities), len(result.Places))
		}
		if result.Cities == nil || result.Places == nil {
			t.Errorf("Match(%q) returned nil slices", query)
		}
	}
}

func TestMatchScriptSensitivity(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantCities []string
	}{
		{"Cyrillic matches bulgarian name", "пловдив", []string{"Plovdiv"}},
		{"Cyrillic uppercase folds", "ПЛОВДИВ", []string{"Plovdiv"}},
		{"Latin matches english name", "plovdiv", []string{"Plovdiv"}},
		{"Latin uppercase folds", "PLOVDIV", []string{"Plovdiv"}},
		{"Latin does not match bulgarian name", "sofiya-bg", []string{}},
		{"Cyrillic substring", "ловди", []string{"Plovdiv"}},
		{"Latin substring", "arn", []string{"Varna"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Match(tt.query, testCities(), nil, Options{})
			got := cityNames(result)
			if !reflect.DeepEqual(got, tt.wantCities) {
				t.Errorf("Match(%q) cities = %v, want %v", tt.query, got, tt.wantCities)
			}
		})
	}
}

func TestMatchPlacesAlwaysBulgarianFolding(t *testing.T) {
	// Place names are Bulgarian-authored, so even a Latin-script query is
	// folded with Bulgarian rules when matched against them.
	pool := []places.Place{
		place("p1", "Marosa Garden Сердика"),
		place("p2", "Мароса Витоша"),
	}

	result := Match("MAROSA", testCities(), pool, Options{})
	if got := placeNames(result); !reflect.DeepEqual(got, []string{"Marosa Garden Сердика"}) {
		t.Errorf("Match(MAROSA) places = %v, want [Marosa Garden Сердика]", got)
	}
}

func TestMatchRankingPrefixFirst(t *testing.T) {
	pool := []places.Place{
		place("p1", "Градински Център Мароса"),
		place("p2", "Мароса Люлин"),
		place("p3", "Бургас Парк"),
		place("p4", "Мароса Младост"),
		place("p5", "Нова Мароса"),
	}

	result := Match("мароса", testCities(), pool, Options{})
	want := []string{
		// Prefix matches first, keeping input order among themselves.
		"Мароса Люлин",
		"Мароса Младост",
		// Interior matches after, also in input order.
		"Градински Център Мароса",
		"Нова Мароса",
	}
	if got := placeNames(result); !reflect.DeepEqual(got, want) {
		t.Errorf("Match ranking = %v, want %v", got, want)
	}
}

func TestMatchDeterminism(t *testing.T) {
	pool := []places.Place{
		place("p1", "Мароса София Център"),
		place("p2", "Мароса Бургас"),
	}

	first := Match("мароса", testCities(), pool, Options{MaxResults: 5})
	for i := 0; i < 10; i++ {
		again := Match("мароса", testCities(), pool, Options{MaxResults: 5})
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Match is not deterministic: %v vs %v", first, again)
		}
	}
}

func TestMatchTruncationPerPool(t *testing.T) {
	pool := []places.Place{
		place("p1", "София Изток"),
		place("p2", "София Запад"),
		place("p3", "София Юг"),
	}

	result := Match("со", testCities(), pool, Options{MaxResults: 2})
	if len(result.Cities) > 2 {
		t.Errorf("cities truncation: got %d, want <= 2", len(result.Cities))
	}
	if len(result.Places) != 2 {
		t.Errorf("places truncation: got %d, want 2", len(result.Places))
	}
	// Truncation happens after ranking, so the first two survivors are the
	// first two ranked entries.
	if got := placeNames(result); !reflect.DeepEqual(got, []string{"София Изток", "София Запад"}) {
		t.Errorf("truncated places = %v", got)
	}
}

func TestMatchExcludesNamelessPlaces(t *testing.T) {
	pool := []places.Place{
		{PlaceID: "p1"}, // no display name at all
		{PlaceID: "p2", DisplayName: &places.DisplayName{}},
		place("p3", "Мароса Варна"),
	}

	result := Match("мароса", testCities(), pool, Options{})
	if got := placeNames(result); !reflect.DeepEqual(got, []string{"Мароса Варна"}) {
		t.Errorf("Match with nameless places = %v, want [Мароса Варна]", got)
	}
}

func TestMatchEndToEnd(t *testing.T) {
	cityPool := []cities.City{
		{EnglishName: "Sofia", BulgarianName: "София", Latitude: 42.7, Longitude: 23.3},
	}
	pool := []places.Place{
		place("p1", "Мароса София Център"),
		place("p2", "Градински Център Бургас"),
	}

	result := Match("софия", cityPool, pool, Options{})
	if got := cityNames(result); !reflect.DeepEqual(got, []string{"Sofia"}) {
		t.Errorf("cities = %v, want [Sofia]", got)
	}
	if got := placeNames(result); !reflect.DeepEqual(got, []string{"Мароса София Център"}) {
		t.Errorf("places = %v, want [Мароса София Център]", got)
	}
}
