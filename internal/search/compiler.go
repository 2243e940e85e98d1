package search

import (
	"fmt"
	"strings"

	"github.com/spec-kit/realty-service/internal/domain"
)

// Predicate is an ordered set of condition fragments and their bound
// values. Fragment text comes only from the fixed catalogue below; user
// input is never concatenated into the clause, it travels exclusively as a
// bound parameter at the position the fragment was appended.
type Predicate struct {
	clauses []string
	args    []any
}

// add appends a fragment template with one numbered placeholder and its
// bound value.
func (p *Predicate) add(template string, value any) {
	p.args = append(p.args, value)
	p.clauses = append(p.clauses, fmt.Sprintf(template, len(p.args)))
}

// Where returns the combined WHERE clause without the keyword.
func (p *Predicate) Where() string {
	return strings.Join(p.clauses, " AND ")
}

// Args returns bound values in placeholder order.
func (p *Predicate) Args() []any {
	return p.args
}

// Fragment catalogue. Each entry carries exactly one %d placeholder filled
// with the parameter position at append time, mirroring positional $n
// binding.
const (
	fragStatusIn      = "status = ANY($%d)"
	fragFreeText      = "(LOWER(title) LIKE $%d OR LOWER(description) LIKE $%d)"
	fragListingType   = "listing_type = $%d"
	fragPropertyTypes = "property_type = ANY($%d)"
	fragMinPrice      = "price >= $%d"
	fragMaxPrice      = "price <= $%d"
	fragCity          = "LOWER(city) = LOWER($%d)"
	fragState         = "UPPER(state) = $%d"
	fragMinBedrooms   = "bedrooms >= $%d"
	fragMinBathrooms  = "bathrooms >= $%d"
	fragMinSquareFeet = "square_footage >= $%d"
	fragMaxSquareFeet = "square_footage <= $%d"
	fragFurnished     = "furnished = $%d"
	fragPetFriendly   = "pet_friendly = $%d"
	fragFeatured      = "featured = $%d"
)

// Compile translates criteria into a predicate. The base predicate always
// restricts results to publicly visible listing statuses; empty criteria
// never produce an unconstrained query. Min/max bounds are independent
// inequalities and are deliberately not cross-validated: min above max
// yields a well-defined empty result.
func Compile(criteria Criteria) *Predicate {
	pred := &Predicate{}

	statuses := make([]string, 0, 2)
	for _, s := range domain.PublicStatuses() {
		statuses = append(statuses, string(s))
	}
	pred.add(fragStatusIn, statuses)

	if criteria.Query != nil {
		term := strings.TrimSpace(*criteria.Query)
		if term != "" {
			needle := "%" + strings.ToLower(term) + "%"
			// title and description share the same bound parameter position
			pred.args = append(pred.args, needle)
			pos := len(pred.args)
			pred.clauses = append(pred.clauses, fmt.Sprintf(fragFreeText, pos, pos))
		}
	}
	if criteria.ListingType != nil {
		pred.add(fragListingType, string(*criteria.ListingType))
	}
	if len(criteria.PropertyTypes) > 0 {
		types := make([]string, 0, len(criteria.PropertyTypes))
		for _, t := range criteria.PropertyTypes {
			types = append(types, string(t))
		}
		pred.add(fragPropertyTypes, types)
	}
	if criteria.MinPrice != nil {
		pred.add(fragMinPrice, *criteria.MinPrice)
	}
	if criteria.MaxPrice != nil {
		pred.add(fragMaxPrice, *criteria.MaxPrice)
	}
	if criteria.City != nil && strings.TrimSpace(*criteria.City) != "" {
		pred.add(fragCity, strings.TrimSpace(*criteria.City))
	}
	if criteria.State != nil && strings.TrimSpace(*criteria.State) != "" {
		pred.add(fragState, strings.ToUpper(strings.TrimSpace(*criteria.State)))
	}
	if criteria.MinBedrooms != nil {
		pred.add(fragMinBedrooms, *criteria.MinBedrooms)
	}
	if criteria.MinBathrooms != nil {
		pred.add(fragMinBathrooms, *criteria.MinBathrooms)
	}
	if criteria.MinSquareFeet != nil {
		pred.add(fragMinSquareFeet, *criteria.MinSquareFeet)
	}
	if criteria.MaxSquareFeet != nil {
		pred.add(fragMaxSquareFeet, *criteria.MaxSquareFeet)
	}
	if criteria.Furnished != nil {
		pred.add(fragFurnished, *criteria.Furnished)
	}
	if criteria.PetFriendly != nil {
		pred.add(fragPetFriendly, *criteria.PetFriendly)
	}
	if criteria.Featured != nil {
		pred.add(fragFeatured, *criteria.Featured)
	}

	return pred
}

// Sort keys honored by the ordering policy, in priority order. Only one
// sort key is ever applied; the first priority entry matching the hint
// wins, everything else falls through to recency.
var sortPriority = []struct {
	key    string
	column string
}{
	{"price", "price"},
	{"square_footage", "square_footage"},
	{"view_count", "view_count"},
}

// OrderBy resolves a sort hint into a safe ORDER BY clause. Column names
// come from the fixed table above, never from the caller.
func OrderBy(sortBy, sortOrder string) string {
	direction := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		direction = "ASC"
	}
	for _, entry := range sortPriority {
		if strings.EqualFold(sortBy, entry.key) {
			return entry.column + " " + direction
		}
	}
	return "created_at " + direction
}
