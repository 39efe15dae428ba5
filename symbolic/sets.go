package symbolic

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
// Real sets: results of SolveSet
// ============================================================

// Set is a subset of the real line.
type Set interface {
	Contains(x float64) bool
	String() string
	intervals() []Interval
}

// Interval is a connected subset of the reals. Endpoints may be ±Inf,
// in which case the matching side is open.
type Interval struct {
	Lo, Hi              float64
	LeftOpen, RightOpen bool
}

// Union is a union of at least two disjoint intervals in ascending order.
type Union struct{ Intervals []Interval }

// Reals is the whole real line.
type Reals struct{}

// EmptySet contains nothing.
type EmptySet struct{}

// FiniteSet is a finite collection of isolated points in ascending order.
type FiniteSet struct{ Points []float64 }

// Bounded reports whether both endpoints are finite.
func (i Interval) Bounded() bool { return !math.IsInf(i.Lo, 0) && !math.IsInf(i.Hi, 0) }

func (i Interval) Contains(x float64) bool {
	if x < i.Lo || x > i.Hi {
		return false
	}
	if x == i.Lo && i.LeftOpen {
		return false
	}
	if x == i.Hi && i.RightOpen {
		return false
	}
	return true
}

func (i Interval) empty() bool {
	return i.Lo > i.Hi || (i.Lo == i.Hi && (i.LeftOpen || i.RightOpen))
}

func (i Interval) intervals() []Interval { return []Interval{i} }

func (i Interval) String() string {
	left, right := "[", "]"
	if i.LeftOpen {
		left = "("
	}
	if i.RightOpen {
		right = ")"
	}
	return left + formatBound(i.Lo) + ", " + formatBound(i.Hi) + right
}

func formatBound(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "oo"
	case math.IsInf(f, -1):
		return "-oo"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (u Union) Contains(x float64) bool {
	for _, i := range u.Intervals {
		if i.Contains(x) {
			return true
		}
	}
	return false
}

func (u Union) intervals() []Interval { return u.Intervals }

func (u Union) String() string {
	parts := make([]string, len(u.Intervals))
	for i, iv := range u.Intervals {
		parts[i] = iv.String()
	}
	return strings.Join(parts, " U ")
}

func (Reals) Contains(float64) bool { return true }
func (Reals) String() string        { return "Reals" }
func (Reals) intervals() []Interval {
	return []Interval{{Lo: math.Inf(-1), Hi: math.Inf(1), LeftOpen: true, RightOpen: true}}
}

func (EmptySet) Contains(float64) bool { return false }
func (EmptySet) String() string        { return "EmptySet" }
func (EmptySet) intervals() []Interval { return nil }

func (f FiniteSet) Contains(x float64) bool {
	for _, p := range f.Points {
		if p == x {
			return true
		}
	}
	return false
}

func (f FiniteSet) String() string {
	parts := make([]string, len(f.Points))
	for i, p := range f.Points {
		parts[i] = formatBound(p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (f FiniteSet) intervals() []Interval {
	out := make([]Interval, len(f.Points))
	for i, p := range f.Points {
		out[i] = Interval{Lo: p, Hi: p}
	}
	return out
}

// UnionOf returns the canonical union of sets.
func UnionOf(sets ...Set) Set {
	var all []Interval
	for _, s := range sets {
		all = append(all, s.intervals()...)
	}
	return canonicalSet(all)
}

// IntersectionOf returns the canonical intersection of a and b.
func IntersectionOf(a, b Set) Set {
	var out []Interval
	for _, x := range a.intervals() {
		for _, y := range b.intervals() {
			iv := Interval{Lo: x.Lo, LeftOpen: x.LeftOpen, Hi: x.Hi, RightOpen: x.RightOpen}
			switch {
			case y.Lo > iv.Lo:
				iv.Lo, iv.LeftOpen = y.Lo, y.LeftOpen
			case y.Lo == iv.Lo:
				iv.LeftOpen = iv.LeftOpen || y.LeftOpen
			}
			switch {
			case y.Hi < iv.Hi:
				iv.Hi, iv.RightOpen = y.Hi, y.RightOpen
			case y.Hi == iv.Hi:
				iv.RightOpen = iv.RightOpen || y.RightOpen
			}
			if !iv.empty() {
				out = append(out, iv)
			}
		}
	}
	return canonicalSet(out)
}

// canonicalSet merges overlapping or touching intervals and picks the
// narrowest Set type that describes the result.
func canonicalSet(ivs []Interval) Set {
	live := make([]Interval, 0, len(ivs))
	for _, iv := range ivs {
		if !iv.empty() {
			live = append(live, iv)
		}
	}
	if len(live) == 0 {
		return EmptySet{}
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].Lo != live[j].Lo {
			return live[i].Lo < live[j].Lo
		}
		return !live[i].LeftOpen && live[j].LeftOpen
	})
	merged := []Interval{live[0]}
	for _, iv := range live[1:] {
		cur := &merged[len(merged)-1]
		touches := iv.Lo < cur.Hi || (iv.Lo == cur.Hi && !(iv.LeftOpen && cur.RightOpen))
		if !touches {
			merged = append(merged, iv)
			continue
		}
		switch {
		case iv.Hi > cur.Hi:
			cur.Hi, cur.RightOpen = iv.Hi, iv.RightOpen
		case iv.Hi == cur.Hi:
			cur.RightOpen = cur.RightOpen && iv.RightOpen
		}
	}
	if len(merged) == 1 {
		iv := merged[0]
		switch {
		case math.IsInf(iv.Lo, -1) && math.IsInf(iv.Hi, 1):
			return Reals{}
		case iv.Lo == iv.Hi:
			return FiniteSet{Points: []float64{iv.Lo}}
		}
		return iv
	}
	points := make([]float64, 0, len(merged))
	for _, iv := range merged {
		if iv.Lo != iv.Hi {
			return Union{Intervals: merged}
		}
		points = append(points, iv.Lo)
	}
	return FiniteSet{Points: points}
}
