package knowledge

import "strings"

// Letters is a set of lowercase ASCII letters, one bit per letter.
type Letters uint32

// LettersOf returns the set of distinct letters in s.
func LettersOf(s string) Letters {
	var l Letters
	for i := 0; i < len(s); i++ {
		l = l.Add(s[i])
	}
	return l
}

// Add returns l with c included. Non a–z bytes are ignored.
func (l Letters) Add(c byte) Letters {
	if c < 'a' || c > 'z' {
		return l
	}
	return l | 1<<(c-'a')
}

// Remove returns l without c.
func (l Letters) Remove(c byte) Letters {
	if c < 'a' || c > 'z' {
		return l
	}
	return l &^ (1 << (c - 'a'))
}

// Has reports whether c is in l.
func (l Letters) Has(c byte) bool {
	if c < 'a' || c > 'z' {
		return false
	}
	return l&(1<<(c-'a')) != 0
}

// Union returns l ∪ o.
func (l Letters) Union(o Letters) Letters { return l | o }

// Minus returns l \ o.
func (l Letters) Minus(o Letters) Letters { return l &^ o }

// Intersect returns l ∩ o.
func (l Letters) Intersect(o Letters) Letters { return l & o }

// Len counts the letters in l.
func (l Letters) Len() int {
	n := 0
	for v := uint32(l); v != 0; v &= v - 1 {
		n++
	}
	return n
}

// Empty reports whether l has no letters.
func (l Letters) Empty() bool { return l == 0 }

// String lists the letters alphabetically.
func (l Letters) String() string {
	var sb strings.Builder
	for c := byte('a'); c <= 'z'; c++ {
		if l.Has(c) {
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// MarshalText encodes the set as its alphabetical letters.
func (l Letters) MarshalText() ([]byte, error) { return []byte(l.String()), nil }
