// Package query translates client-supplied request parameters into a
// constrained collection query: filter, sort, field projection and pagination.
// Malformed inputs degrade to defaults; the builder never fails.
package query

import (
	"net/url"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"
)

const (
	// DefaultLimit is applied when the client supplies no limit.
	DefaultLimit = 100
	// MaxLimit caps client-supplied limits to prevent resource exhaustion.
	MaxLimit = 1000

	defaultSortField = "createdAt"
)

// reserved parameters drive query shaping and are never treated as filters.
var reserved = map[string]bool{
	"page":   true,
	"sort":   true,
	"limit":  true,
	"fields": true,
}

// comparison operators accepted as bracketed key qualifiers, e.g. price[gte]=500.
var operators = map[string]string{
	"gte": "$gte",
	"gt":  "$gt",
	"lte": "$lte",
	"lt":  "$lt",
}

// Features is a fully shaped collection query, ready for execution.
type Features struct {
	Filter     bson.M
	Sort       bson.D
	Projection bson.M
	Skip       int64
	Limit      int64
}

// Build shapes a query from raw request parameters. internalFields are
// bookkeeping fields that are always excluded from projections, whether or
// not the client supplied a field allow-list.
func Build(params url.Values, internalFields ...string) *Features {
	return &Features{
		Filter:     buildFilter(params),
		Sort:       buildSort(params.Get("sort")),
		Projection: buildProjection(params.Get("fields"), internalFields),
		Skip:       buildSkip(params),
		Limit:      buildLimit(params.Get("limit")),
	}
}

// buildFilter treats every non-reserved parameter as an equality or comparison
// constraint. No validation against the resource's schema happens here; the
// persistence layer owns that.
func buildFilter(params url.Values) bson.M {
	filter := bson.M{}

	for key, values := range params {
		if reserved[key] || len(values) == 0 {
			continue
		}

		field, op, ok := splitOperator(key)
		if ok {
			merge, exists := filter[field].(bson.M)
			if !exists {
				merge = bson.M{}
				filter[field] = merge
			}
			merge[op] = coerce(values[0])

			continue
		}

		if len(values) > 1 {
			coerced := make([]any, len(values))
			for i, v := range values {
				coerced[i] = coerce(v)
			}
			filter[key] = bson.M{"$in": coerced}

			continue
		}

		filter[key] = coerce(values[0])
	}

	return filter
}

// splitOperator recognizes the bracketed form field[op]. Unrecognized
// qualifiers fall back to plain equality on the raw key.
func splitOperator(key string) (field, op string, ok bool) {
	if !strings.HasSuffix(key, "]") {
		return "", "", false
	}

	open := strings.Index(key, "[")
	if open <= 0 {
		return "", "", false
	}

	mongoOp, known := operators[key[open+1:len(key)-1]]
	if !known {
		return "", "", false
	}

	return key[:open], mongoOp, true
}

// coerce attempts numeric and boolean interpretation so comparisons work on
// typed document fields; anything else stays a string.
func coerce(value string) any {
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		return n
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}

	return value
}

// buildSort parses the comma-separated sort list; a leading '-' means
// descending. Fields apply in left-to-right priority order. An explicit sort
// takes precedence over the default order by creation time descending.
func buildSort(raw string) bson.D {
	if raw == "" {
		return bson.D{{Key: defaultSortField, Value: -1}}
	}

	var sort bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}

		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}

		sort = append(sort, bson.E{Key: field, Value: order})
	}

	if len(sort) == 0 {
		return bson.D{{Key: defaultSortField, Value: -1}}
	}

	return sort
}

// buildProjection combines the client's field allow-list with the mandatory
// exclusion of internal fields. With an allow-list the projection is
// inclusive, minus any internal field the client tried to select; without one
// it is a plain exclusion of the internal fields.
func buildProjection(fields string, internal []string) bson.M {
	excluded := make(map[string]bool, len(internal))
	for _, f := range internal {
		excluded[f] = true
	}

	if fields == "" {
		if len(internal) == 0 {
			return nil
		}

		projection := bson.M{}
		for _, f := range internal {
			projection[f] = 0
		}

		return projection
	}

	projection := bson.M{}
	for _, field := range strings.Split(fields, ",") {
		field = strings.TrimSpace(strings.TrimPrefix(field, "+"))
		if field == "" || excluded[field] {
			continue
		}

		projection[field] = 1
	}

	if len(projection) == 0 {
		// The allow-list named only internal fields; fall back to exclusion.
		projection = bson.M{}
		for _, f := range internal {
			projection[f] = 0
		}
		if len(projection) == 0 {
			return nil
		}
	}

	return projection
}

func buildSkip(params url.Values) int64 {
	page, err := strconv.ParseInt(params.Get("page"), 10, 64)
	if err != nil || page < 1 {
		page = 1
	}

	return (page - 1) * buildLimit(params.Get("limit"))
}

func buildLimit(raw string) int64 {
	limit, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || limit < 1 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}

	return limit
}
