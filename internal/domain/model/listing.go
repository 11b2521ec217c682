package model

// EventTopic is the GitHub topic every listed repository must carry.
const EventTopic = "hacktoberfest"

// ResultsPerPage is the fixed page size for repository listings. Callers
// cannot request more or fewer items per page.
const ResultsPerPage = 21

// ListingParams are the raw query parameters of a listing request, exactly
// as they arrived on the URL. Coercion (page number, stars bounds) happens in
// the application layer so that degraded input is handled in one place.
type ListingParams struct {
	Page       string
	Sort       string
	Order      string
	Query      string
	StartStars string
	EndStars   string
}

// SearchQuery is the fully composed request sent to the repository-search
// API. Sort and Order pass through verbatim; invalid values are the API's
// error to raise, not ours.
type SearchQuery struct {
	Term  string
	Sort  string
	Order string
	Page  int
}

// ListingPage is the assembled record handed to the presentation layer:
// the resolved page number, the language segment from the route, and the
// moderation-filtered search result. A nil ListingPage is the absence signal.
type ListingPage struct {
	Page     int
	Language string
	Result   SearchResult
}
