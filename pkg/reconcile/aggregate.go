package reconcile

import (
	"sort"
	"strings"
	"unicode"
)

// MainnetSuffix is the sentinel suffix assigned to names without an
// internal uppercase boundary, and always sorts first within a group.
const MainnetSuffix = "Mainnet"

// GroupEntry is one network inside an ecosystem group. Address is
// empty for networks without a deployment.
type GroupEntry struct {
	Name    string
	Suffix  string
	Address string
}

// Group is an ecosystem bucket of networks sharing a derived prefix.
type Group struct {
	Prefix  string
	Entries []GroupEntry
}

// SplitName splits a network name at its first internal uppercase
// letter into an ecosystem prefix and a network suffix. Names without
// such a letter are the ecosystem's mainnet: the whole name is the
// prefix and the suffix is the Mainnet sentinel.
//
// The split is deliberately literal. A name with several camel humps
// splits at the first one only ("polygonZkEvm" -> "polygon", "ZkEvm").
func SplitName(name string) (prefix, suffix string) {
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			return name[:i], name[i:]
		}
	}
	return name, MainnetSuffix
}

// Aggregate groups deployments into ecosystem buckets.
func Aggregate(deployments []Deployment) []Group {
	entries := make([]GroupEntry, 0, len(deployments))
	prefixes := make([]string, 0, len(deployments))
	for _, d := range deployments {
		prefix, suffix := SplitName(d.Network)
		prefixes = append(prefixes, prefix)
		entries = append(entries, GroupEntry{Name: d.Network, Suffix: suffix, Address: d.Address})
	}
	return group(prefixes, entries)
}

// AggregateNames groups bare network names into ecosystem buckets.
func AggregateNames(names []string) []Group {
	entries := make([]GroupEntry, 0, len(names))
	prefixes := make([]string, 0, len(names))
	for _, name := range names {
		prefix, suffix := SplitName(name)
		prefixes = append(prefixes, prefix)
		entries = append(entries, GroupEntry{Name: name, Suffix: suffix})
	}
	return group(prefixes, entries)
}

// AggregateListing groups found and missing networks into one set of
// ecosystem buckets; entries without an address are the missing ones.
func AggregateListing(found []Deployment, missing []string) []Group {
	entries := make([]GroupEntry, 0, len(found)+len(missing))
	prefixes := make([]string, 0, len(found)+len(missing))
	for _, d := range found {
		prefix, suffix := SplitName(d.Network)
		prefixes = append(prefixes, prefix)
		entries = append(entries, GroupEntry{Name: d.Network, Suffix: suffix, Address: d.Address})
	}
	for _, name := range missing {
		prefix, suffix := SplitName(name)
		prefixes = append(prefixes, prefix)
		entries = append(entries, GroupEntry{Name: name, Suffix: suffix})
	}
	return group(prefixes, entries)
}

// group buckets entries by prefix. Prefixes order lexicographically;
// within a group the Mainnet sentinel sorts first, then suffixes
// lexicographically.
func group(prefixes []string, entries []GroupEntry) []Group {
	byPrefix := make(map[string][]GroupEntry)
	for i, entry := range entries {
		byPrefix[prefixes[i]] = append(byPrefix[prefixes[i]], entry)
	}

	keys := make([]string, 0, len(byPrefix))
	for prefix := range byPrefix {
		keys = append(keys, prefix)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, prefix := range keys {
		members := byPrefix[prefix]
		sort.SliceStable(members, func(i, j int) bool {
			if (members[i].Suffix == MainnetSuffix) != (members[j].Suffix == MainnetSuffix) {
				return members[i].Suffix == MainnetSuffix
			}
			return members[i].Suffix < members[j].Suffix
		})
		groups = append(groups, Group{Prefix: prefix, Entries: members})
	}
	return groups
}

// TitleCase transforms a camelCase token into a display form: a space
// is inserted before any uppercase letter that follows a lowercase
// letter or digit, then the first letter of each word is capitalized.
// Interior capitalization is preserved, so acronym humps survive
// ("polygonZkEVM" -> "Polygon Zk EVM"). Grouping always uses the raw
// token; this form is for rendered output only.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 4)

	prev := rune(0)
	wordStart := true
	for _, r := range s {
		if unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteRune(' ')
			wordStart = true
		}
		if wordStart {
			b.WriteRune(unicode.ToUpper(r))
			wordStart = false
		} else {
			b.WriteRune(r)
		}
		prev = r
	}
	return b.String()
}

// DisplayName is the rendered form of a full network name: its prefix
// and suffix title-cased and joined.
func DisplayName(name string) string {
	prefix, suffix := SplitName(name)
	return TitleCase(prefix) + " " + TitleCase(suffix)
}
