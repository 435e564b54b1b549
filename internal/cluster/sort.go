package cluster

import (
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/csl-go/citeproc/internal/style"
	"github.com/csl-go/citeproc/internal/value"
)

// SortReferences orders refs in place by the style's bibliography sort keys
// (§3 style.SortKey, §4.9), comparing string-valued keys with a
// locale-aware collator instead of naive byte comparison so accented and
// non-Latin author names sort the way a reader of lang would expect. Ties
// fall back to the reference id for a deterministic order.
func SortReferences(refs []*value.Reference, keys []style.SortKey, lang string) {
	col := collatorFor(lang)
	sortWithCollator(refs, keys, col)
}

func collatorFor(lang string) *collate.Collator {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return collate.New(tag)
}

func sortWithCollator(refs []*value.Reference, keys []style.SortKey, col *collate.Collator) {
	less := func(i, j int) bool {
		for _, k := range keys {
			// Date-valued keys compare numerically first, since a zero-padded
			// string rendering of the year (e.g. "%08d") sorts BC years
			// (negative) the wrong way round relative to AD years.
			if ay, aOK := dateYear(refs[i], k.Variable); aOK {
				by, bOK := dateYear(refs[j], k.Variable)
				switch {
				case !bOK:
					return true
				case ay == by:
					continue
				case k.Ascending:
					return ay < by
				default:
					return ay > by
				}
			}

			a, aOK := sortValue(refs[i], k.Variable)
			b, bOK := sortValue(refs[j], k.Variable)
			if a == b {
				continue
			}
			if !aOK {
				return false
			}
			if !bOK {
				return true
			}
			cmp := col.CompareString(a, b)
			if cmp == 0 {
				continue
			}
			if k.Ascending {
				return cmp < 0
			}
			return cmp > 0
		}
		return refs[i].ID < refs[j].ID
	}
	insertionSort(refs, less)
}

// dateYear reports the year of variable's date, if it has one, for the
// numeric year comparison sortWithCollator performs before falling back to
// sortValue's string/collator comparison.
func dateYear(ref *value.Reference, variable string) (int, bool) {
	d, ok := ref.DateVariable(variable)
	if !ok {
		return 0, false
	}
	return d.Year(), true
}

// insertionSort is a small stable sort, avoiding sort.SliceStable's reliance
// on reflection for a comparator that already closes over refs by index.
func insertionSort(refs []*value.Reference, less func(i, j int) bool) {
	for i := 1; i < len(refs); i++ {
		for j := i; j > 0 && less(j, j-1); j-- {
			refs[j], refs[j-1] = refs[j-1], refs[j]
		}
	}
}

// sortValue handles every sort-key variable dateYear doesn't: date
// variables are compared numerically in sortWithCollator before this is
// ever reached.
func sortValue(ref *value.Reference, variable string) (string, bool) {
	if names, ok := ref.NameVariable(variable); ok && len(names) > 0 {
		return names[0].SortKey(), true
	}
	if v, ok := ref.Variable(variable); ok {
		return v, true
	}
	return "", false
}
