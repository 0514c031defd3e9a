// Package resolve implements the capturing-group resolver (spec component
// F): a first pass numbers every capturing group in source order and
// builds a name→number map, and a second pass resolves every Reference
// against that map, recording whether each one points forward or backward.
package resolve

import (
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/diag"
	"github.com/pomsky-lang/pomsky-sub000/internal/conv"
	"github.com/pomsky-lang/pomsky-sub000/internal/sparse"
	"github.com/pomsky-lang/pomsky-sub000/parse"
)

// Target is what a Reference was ultimately resolved to.
type Target struct {
	Number  uint32
	Forward bool // true if the referenced group appears later in source order
}

// Result is the output of Resolve: everything later stages (ir, codegen)
// need to turn Group/Reference nodes into numbered, cross-checked regex
// constructs.
type Result struct {
	TotalGroups  uint32
	GroupNumber  map[*parse.Group]uint32
	NameToNumber map[string]uint32
	RefTarget    map[*parse.Reference]Target
}

type refSite struct {
	ref    *parse.Reference
	before uint32 // groups already numbered strictly before this reference
}

type resolver struct {
	letValues map[string]parse.Rule
	varIndex  map[string]uint32 // variable -> its index in declaration order, for expanding

	counter      uint32
	groupNumber  map[*parse.Group]uint32
	nameToNumber map[string]uint32
	names        map[string]diag.Span // first-seen span, for duplicate-name diagnostics

	expanding *sparse.SparseSet // variable indices currently on the expansion stack, for recursion detection
	expanded  map[string]bool   // variables already numbered once (see DESIGN.md: expand-once policy)

	refSites []refSite
	diags    []diag.Diagnostic
}

// growExpanding doubles the expanding set's backing capacity when a fresh
// variable index would overflow it; starts at a small guess since most
// patterns declare only a handful of `let` bindings.
func (r *resolver) growExpanding(atLeast uint32) {
	if r.expanding != nil && atLeast < r.expanding.Capacity() {
		return
	}
	cap := uint32(16)
	for cap <= atLeast {
		cap *= 2
	}
	fresh := sparse.NewSparseSet(cap)
	if r.expanding != nil {
		for _, v := range r.expanding.Values() {
			fresh.Insert(v)
		}
	}
	r.expanding = fresh
}

// indexOf returns name's declaration-order index, assigning the next free
// one the first time name is seen, and growing the expanding set to cover
// it.
func (r *resolver) indexOf(name string) uint32 {
	if idx, ok := r.varIndex[name]; ok {
		return idx
	}
	idx := uint32(len(r.varIndex))
	r.varIndex[name] = idx
	r.growExpanding(idx + 1)
	return idx
}

// Resolve runs both passes over m and returns the resolved Result plus any
// diagnostics (duplicate names, unknown/recursive variables, unknown or
// out-of-range references — all Resolve-kind, spec §7).
func Resolve(m *parse.Modified) (*Result, []diag.Diagnostic) {
	r := &resolver{
		letValues:    map[string]parse.Rule{},
		varIndex:     map[string]uint32{},
		groupNumber:  map[*parse.Group]uint32{},
		nameToNumber: map[string]uint32{},
		names:        map[string]diag.Span{},
		expanded:     map[string]bool{},
	}
	for _, s := range m.Stmts {
		if let, ok := s.(*parse.LetStmt); ok {
			r.letValues[let.Name] = let.Value
			r.indexOf(let.Name)
		}
	}

	r.numberAndCollect(m.Root, false)
	total := r.counter

	target := make(map[*parse.Reference]Target, len(r.refSites))
	for _, site := range r.refSites {
		if t, ok := r.resolveOne(site, total); ok {
			target[site.ref] = t
		}
	}

	return &Result{
		TotalGroups:  total,
		GroupNumber:  r.groupNumber,
		NameToNumber: r.nameToNumber,
		RefTarget:    target,
	}, r.diags
}

func (r *resolver) numberAndCollect(rule parse.Rule, inLet bool) {
	if rule == nil {
		return
	}
	switch n := rule.(type) {
	case *parse.Group:
		if n.Kind == parse.GroupCapturing {
			r.counter++
			r.groupNumber[n] = r.counter
			if n.Name != "" {
				if prev, dup := r.names[n.Name]; dup {
					_ = prev
					r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeNameUsedMultipleTimes, n.Span(),
						fmt.Sprintf("group name %q is already used", n.Name)))
				} else {
					r.names[n.Name] = n.Span()
					r.nameToNumber[n.Name] = r.counter
				}
			}
		}
		for _, part := range n.Parts {
			r.numberAndCollect(part, inLet)
		}
	case *parse.Alternation:
		for _, part := range n.Parts {
			r.numberAndCollect(part, inLet)
		}
	case *parse.Intersection:
		for _, part := range n.Parts {
			r.numberAndCollect(part, inLet)
		}
	case *parse.Repetition:
		r.numberAndCollect(n.Inner, inLet)
	case *parse.Lookaround:
		r.numberAndCollect(n.Inner, inLet)
	case *parse.Negation:
		r.numberAndCollect(n.Inner, inLet)
	case *parse.StmtExpr:
		for _, s := range n.Stmts {
			if let, ok := s.(*parse.LetStmt); ok {
				r.letValues[let.Name] = let.Value
				r.indexOf(let.Name)
			}
		}
		r.numberAndCollect(n.Inner, inLet)
	case *parse.Reference:
		if inLet {
			r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeReferenceInsideLet, n.Span(),
				"a `let` binding cannot contain a reference to a capturing group"))
			return
		}
		r.refSites = append(r.refSites, refSite{ref: n, before: r.counter})
	case *parse.Variable:
		idx, declared := r.varIndex[n.Name]
		if declared && r.expanding.Contains(idx) {
			r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeRecursiveVariable, n.Span(),
				fmt.Sprintf("variable %q refers to itself", n.Name)))
			return
		}
		if r.expanded[n.Name] {
			return // expand-once policy: second and later uses share the first use's numbering
		}
		val, ok := r.letValues[n.Name]
		if !ok {
			r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeUnknownVariable, n.Span(),
				fmt.Sprintf("unknown variable %q", n.Name)))
			return
		}
		r.expanding.Insert(idx)
		r.expanded[n.Name] = true
		r.numberAndCollect(val, true)
		r.expanding.Remove(idx)
	default:
		// Literal, CharClass, Dot, Boundary, RangeLit, RegexLit, Recursion,
		// Grapheme: leaves, nothing to number or collect.
	}
}

func (r *resolver) resolveOne(site refSite, total uint32) (Target, bool) {
	ref := site.ref
	switch ref.Mode {
	case parse.RefByNumber:
		if ref.Number == 0 || ref.Number > total {
			r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeUnknownReferenceNumber, ref.Span(),
				fmt.Sprintf("there is no group number %d (only %d groups exist)", ref.Number, total)))
			return Target{}, false
		}
		return Target{Number: ref.Number, Forward: ref.Number > site.before}, true
	case parse.RefByName:
		num, ok := r.nameToNumber[ref.Name]
		if !ok {
			msg := fmt.Sprintf("unknown group name %q", ref.Name)
			if suggestion, sok := suggest(ref.Name, r.nameToNumber); sok {
				r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeUnknownReferenceName, ref.Span(), msg).
					WithHelp(fmt.Sprintf("did you mean %q?", suggestion)))
			} else {
				r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeUnknownReferenceName, ref.Span(), msg))
			}
			return Target{}, false
		}
		return Target{Number: num, Forward: num > site.before}, true
	case parse.RefByRelative:
		// Relative offsets count from the reference's own position in the
		// numbering sequence: `::-1` is the group immediately before it,
		// `::+1` the group immediately after.
		target := int64(site.before) + int64(ref.Relative)
		if ref.Relative < 0 {
			target++ // site.before is itself the group immediately before
		}
		if target < 1 || target > int64(total) {
			r.diags = append(r.diags, diag.New(diag.KindResolve, diag.CodeUnknownReferenceNumber, ref.Span(),
				fmt.Sprintf("relative reference %+d does not resolve to an existing group", ref.Relative)))
			return Target{}, false
		}
		num := conv.Uint64ToUint32(uint64(target))
		return Target{Number: num, Forward: num > site.before}, true
	default:
		return Target{}, false
	}
}

// suggest finds the closest name in candidates to want by edit distance,
// capped at 2 (see SPEC_FULL.md Supplemented Features and DESIGN.md's
// resolved Open Question on the suggestion threshold).
func suggest(want string, candidates map[string]uint32) (string, bool) {
	best := ""
	bestDist := 3 // anything >= 3 is not offered
	for name := range candidates {
		d := editDistance(want, name)
		if d < bestDist {
			bestDist, best = d, name
		}
	}
	if best == "" {
		return "", false
	}
	return best, true
}

// editDistance is the classic Levenshtein distance over bytes, adequate for
// the short ASCII identifiers pomsky group names are restricted to.
func editDistance(a, b string) int {
	la, lb := len(a), len(b)
	prev := make([]int, lb+1)
	cur := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		cur[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := cur[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			cur[j] = m
		}
		prev, cur = cur, prev
	}
	return prev[lb]
}
