package outline

import (
	"fmt"
	"sort"
	"strings"
)

// Search returns the section whose heading is exactly query, or else every
// section containing all words of query.
func (m *Manual) Search(query string) []*Section {
	query = strings.ToLower(strings.TrimSpace(query))
	fields := words(query)

	switch len(fields) {
	case 0:
		return nil
	}

	if s, ok := m.Headings[query]; ok {
		return []*Section{s}
	}

	results := map[*Section]int{}
	for _, f := range fields {
		for _, s := range m.Keywords[f] {
			results[s]++
		}
	}

	keys := make([]*Section, 0, len(results))
	for s, num := range results {
		if num == len(fields) {
			keys = append(keys, s)
		}
	}

	sort.Slice(keys, func(i, j int) bool {
		s1 := keys[i]
		s2 := keys[j]

		var basic bool
		if s1.Level != s2.Level {
			// deeper sections first, they are more specific
			basic = s2.Level < s1.Level
		} else {
			basic = s1.Heading < s2.Heading
		}

		title1, title2 := strings.ToLower(s1.Heading), strings.ToLower(s2.Heading)
		c1, c2 := strings.Contains(title1, query), strings.Contains(title2, query)
		switch {
		case c1 && c2:
			return basic
		case c1:
			return true
		case c2:
			return false
		}

		c1, c2 = strings.Contains(s1.text(), query), strings.Contains(s2.text(), query)
		switch {
		case c1 && c2:
			return basic
		case c1:
			return true
		case c2:
			return false
		}

		return basic
	})
	return keys
}

func (s *Section) text() string {
	var b strings.Builder
	for _, n := range s.Content {
		b.WriteString(strings.ToLower(plain(n)))
		b.WriteRune('\n')
	}
	return b.String()
}

// Match is the one line summary of s in a result list.
func (s Section) Match() string {
	return fmt.Sprintf("> %s (%d subsections)\n", s.Heading, len(s.Sections))
}

// Render formats the section and its subsections as markdown, stopping once
// limit bytes have been written. The flag reports whether anything was left
// out.
func (s Section) Render(limit int) (string, bool) {
	md, more := s.render(limit)
	if more {
		md += "*More documentation omitted*"
	}
	return md, more
}

func (s Section) render(limit int) (string, bool) {
	switch len(s.Content) + len(s.Sections) {
	case 0:
		return "", false
	}

	var more bool

	var b strings.Builder
	for _, c := range s.Content {
		if b.Len() > limit {
			more = true
			break
		}
		b.WriteString(c.Markdown())
		b.WriteRune('\n')
	}

	for _, sub := range s.Sections {
		if more || b.Len() > limit {
			more = true
			break
		}
		b.WriteString(Heading{Level: sub.Level, Text: sub.Heading}.Markdown())
		b.WriteRune('\n')
		md, subMore := sub.render(limit - b.Len())
		b.WriteString(md)
		more = subMore
	}

	return b.String(), more
}
