// Package tagset implements the commend/recommend/challenge selection model:
// a feedback criterion belongs to at most one bucket at a time.
package tagset

// Bucket identifies one of the three feedback categories.
type Bucket string

const (
	Commend   Bucket = "commend"
	Recommend Bucket = "recommend"
	Challenge Bucket = "challenge"
)

// Buckets holds the current selection. The zero value is a valid empty
// selection.
type Buckets struct {
	Commend   []string
	Recommend []string
	Challenge []string
}

// Toggle returns the selection after toggling item for the target bucket.
// An item already in the target bucket is removed; otherwise it is removed
// from every bucket and appended to the target, so the disjointness invariant
// holds after any sequence of calls. The receiver is not mutated.
func Toggle(b Buckets, item string, target Bucket) Buckets {
	wasInTarget := contains(b.bucket(target), item)

	next := Buckets{
		Commend:   remove(b.Commend, item),
		Recommend: remove(b.Recommend, item),
		Challenge: remove(b.Challenge, item),
	}

	if wasInTarget {
		return next
	}

	switch target {
	case Commend:
		next.Commend = append(next.Commend, item)
	case Recommend:
		next.Recommend = append(next.Recommend, item)
	case Challenge:
		next.Challenge = append(next.Challenge, item)
	}

	return next
}

// Disjoint reports whether no item appears in more than one bucket.
func (b Buckets) Disjoint() bool {
	seen := make(map[string]struct{}, b.Total())
	for _, list := range [][]string{b.Commend, b.Recommend, b.Challenge} {
		for _, item := range list {
			if _, dup := seen[item]; dup {
				return false
			}
			seen[item] = struct{}{}
		}
	}
	return true
}

// Total is the combined size of the three buckets.
func (b Buckets) Total() int {
	return len(b.Commend) + len(b.Recommend) + len(b.Challenge)
}

// BucketOf returns the bucket currently holding item, or "" if unselected.
func (b Buckets) BucketOf(item string) Bucket {
	switch {
	case contains(b.Commend, item):
		return Commend
	case contains(b.Recommend, item):
		return Recommend
	case contains(b.Challenge, item):
		return Challenge
	}
	return ""
}

func (b Buckets) bucket(target Bucket) []string {
	switch target {
	case Commend:
		return b.Commend
	case Recommend:
		return b.Recommend
	case Challenge:
		return b.Challenge
	}
	return nil
}

func contains(list []string, item string) bool {
	for _, candidate := range list {
		if candidate == item {
			return true
		}
	}
	return false
}

func remove(list []string, item string) []string {
	result := make([]string, 0, len(list))
	for _, candidate := range list {
		if candidate != item {
			result = append(result, candidate)
		}
	}
	return result
}
