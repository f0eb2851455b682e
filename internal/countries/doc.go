// Package countries models the country list and fetches it from a REST
// Countries style HTTP endpoint.
//
// # Overview
//
// The package is split into three files:
//
//   - types.go: the Country record and the lenient JSON parser
//   - client.go: HTTP client implementing Fetcher
//   - sort.go: the four list orderings and the border lookup
//
// # Parsing
//
// Parse accepts the v2 schema (name, nativeName, area, alpha3Code, borders).
// Individual fields are never fatal:
//
//   - text fields that are missing or not strings become "undefined"
//   - a missing or non-numeric area becomes 0
//   - borders that are missing, not an array, or hold a non-string become empty
//
// Only a body that is not a JSON array returns an error (wrapping ErrPayload).
// Parse returns all records or none, so callers never observe a partial list.
//
// # Client Usage
//
//	client, err := countries.NewClient("", 10*time.Second)
//	if err != nil {
//		return err
//	}
//	list, err := client.FetchCountries(ctx)
//
// # Sorting and Borders
//
// Sort reorders a slice in place by name or area, ascending or descending.
// Bordering filters the full list down to the neighbours of one country,
// keeping list order rather than the order of the Borders field.
package countries
