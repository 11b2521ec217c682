package application

import (
	"fmt"
	"strconv"

	"github.com/offbeatjs/hacktoberfest-projects/internal/domain/model"
)

// StarsExpression builds the stars qualifier for a search term from the raw
// range bounds. Both bounds present produce an inclusive range, a single
// bound an open comparison, and no bounds no qualifier at all.
func StarsExpression(start, end string) string {
	switch {
	case start != "" && end != "":
		return fmt.Sprintf("stars:%s..%s", start, end)
	case start != "":
		return fmt.Sprintf("stars:>%s", start)
	case end != "":
		return fmt.Sprintf("stars:<%s", end)
	default:
		return ""
	}
}

// PageNumber coerces the raw page parameter to a usable page index. Anything
// that is not a positive integer falls back to the first page.
func PageNumber(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// BuildQuery assembles the search query for a language listing. The term
// always pins the event topic and the language; the free-text term and the
// stars qualifier are appended as given, so an absent term leaves consecutive
// spaces in place. GitHub's search parser ignores the extra whitespace.
func BuildQuery(language string, params model.ListingParams) model.SearchQuery {
	stars := StarsExpression(params.StartStars, params.EndStars)
	term := fmt.Sprintf("topic:%s language:%s %s %s", model.EventTopic, language, params.Query, stars)

	return model.SearchQuery{
		Term:  term,
		Sort:  params.Sort,
		Order: params.Order,
		Page:  PageNumber(params.Page),
	}
}
