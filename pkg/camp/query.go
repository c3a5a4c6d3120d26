package camp

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/jmylchreest/colourcamp/pkg/colour"
)

// QueryOptions selects what Query matches against.
type QueryOptions struct {
	// Keys and Values select the metadata parts searched. Leaving both
	// unset searches both.
	Keys   bool
	Values bool
	// Buckets restricts the search to the named buckets. Empty means all.
	Buckets []string
	// Literal matches the pattern as a plain substring instead of a
	// regular expression anchored at the start.
	Literal bool
}

type described interface {
	Named
	Metadata() map[string]any
}

// Query returns, per bucket, the sorted names of objects with a metadata key
// or value matching pattern. Non-string values are matched on their default
// text form.
func (c *Camp) Query(pattern string, opts QueryOptions) (map[string][]string, error) {
	match, err := matcher(pattern, opts.Literal)
	if err != nil {
		return nil, err
	}
	keys, vals := opts.Keys, opts.Values
	if !keys && !vals {
		keys, vals = true, true
	}

	buckets := opts.Buckets
	if len(buckets) == 0 {
		buckets = BucketNames
	}

	matches := func(metadata map[string]any) bool {
		for k, v := range metadata {
			if keys && match(k) {
				return true
			}
			if vals && match(fmt.Sprint(v)) {
				return true
			}
		}
		return false
	}

	found := make(map[string][]string, len(buckets))
	for _, kind := range buckets {
		var names []string
		switch kind {
		case BucketColors:
			names = queryBucket(c.Colors, matches)
		case BucketPalettes:
			names = queryBucket(c.Palettes, matches)
		case BucketScales:
			names = queryBucket(c.Scales, matches)
		case BucketMaps:
			names = queryBucket(c.Maps, matches)
		default:
			return nil, fmt.Errorf("%w: unknown bucket %q, expected one of %v", colour.ErrInvalidValue, kind, BucketNames)
		}
		found[kind] = names
	}
	return found, nil
}

func matcher(pattern string, literal bool) (func(string) bool, error) {
	if literal {
		return func(s string) bool { return strings.Contains(s, pattern) }, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf("%w: invalid pattern %q: %w", colour.ErrInvalidValue, pattern, err)
	}
	return re.MatchString, nil
}

func queryBucket[T described](b *Bucket[T], matches func(map[string]any) bool) []string {
	names := []string{}
	for name, item := range b.All() {
		if matches(item.Metadata()) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}
