package restaurant

import (
	"sort"
	"strings"
)

const PageSize = 10

// SearchParams carries normalized search input. SelectedCuisines is the
// already-split term list; SortOption is one of the whitelisted API
// field names, never raw client input.
type SearchParams struct {
	City             string
	SearchQuery      string
	SelectedCuisines []string
	SortOption       string
	Page             int
}

// sortColumns whitelists sortable fields and maps them to their storage
// columns. Unknown options fall back to lastUpdated instead of erroring.
var sortColumns = map[string]string{
	"lastUpdated":           "last_updated",
	"restaurantName":        "restaurant_name",
	"city":                  "city",
	"country":               "country",
	"deliveryPrice":         "delivery_price",
	"estimatedDeliveryTime": "estimated_delivery_time",
}

const defaultSortOption = "lastUpdated"

// NormalizeParams applies the search defaults: page floors to 1,
// cuisine terms are split on commas with blanks dropped, and the sort
// option falls back to lastUpdated when absent or unknown.
func NormalizeParams(city, searchQuery, selectedCuisines, sortOption string, page int) SearchParams {
	if page < 1 {
		page = 1
	}

	var terms []string
	if selectedCuisines != "" {
		for _, term := range strings.Split(selectedCuisines, ",") {
			if term = strings.TrimSpace(term); term != "" {
				terms = append(terms, term)
			}
		}
	}

	if _, ok := sortColumns[sortOption]; !ok {
		sortOption = defaultSortOption
	}

	return SearchParams{
		City:             city,
		SearchQuery:      searchQuery,
		SelectedCuisines: terms,
		SortOption:       sortOption,
		Page:             page,
	}
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func anyCuisineContains(cuisines []string, term string) bool {
	for _, cuisine := range cuisines {
		if containsFold(cuisine, term) {
			return true
		}
	}
	return false
}

// Matches reports whether r satisfies every filter in p: the city
// substring, ALL cuisine terms, and the free-text condition (name OR
// cuisine). Empty optional filters are no-ops, not match-nothing.
func (p SearchParams) Matches(r *Restaurant) bool {
	if !containsFold(r.City, p.City) {
		return false
	}
	for _, term := range p.SelectedCuisines {
		if !anyCuisineContains(r.Cuisines, term) {
			return false
		}
	}
	if p.SearchQuery != "" {
		if !containsFold(r.RestaurantName, p.SearchQuery) &&
			!anyCuisineContains(r.Cuisines, p.SearchQuery) {
			return false
		}
	}
	return true
}

// sortRestaurants orders ascending by the whitelisted sort field.
func sortRestaurants(restaurants []*Restaurant, sortOption string) {
	sort.SliceStable(restaurants, func(i, j int) bool {
		a, b := restaurants[i], restaurants[j]
		switch sortOption {
		case "restaurantName":
			return a.RestaurantName < b.RestaurantName
		case "city":
			return a.City < b.City
		case "country":
			return a.Country < b.Country
		case "deliveryPrice":
			return a.DeliveryPrice < b.DeliveryPrice
		case "estimatedDeliveryTime":
			return a.EstimatedDeliveryTime < b.EstimatedDeliveryTime
		default:
			return a.LastUpdated.Before(b.LastUpdated)
		}
	})
}
