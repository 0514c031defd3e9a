package codegen

import "github.com/pomsky-lang/pomsky-sub000/ir"

// genCharSet emits a UnicodeSet, optimized for the one-element cases per
// spec §4.J's closing bullet: a lone character or a lone property/shorthand
// is written directly, never wrapped in brackets.
func (g *Generator) genCharSet(cs *ir.CharSet) {
	if r, ok := cs.Set.IsSingleChar(); ok && !cs.Negative {
		g.writeLiteralChar(r)
		return
	}
	if len(cs.Set.Ranges) == 0 && len(cs.Set.Properties) == 1 {
		p := cs.Set.Properties[0]
		g.writeProperty(ir.Property{Kind: p.Kind, Value: p.Value, ScriptExtension: p.ScriptExtension, Negative: p.Negative != cs.Negative})
		return
	}

	g.sb.WriteByte('[')
	if cs.Negative {
		g.sb.WriteByte('^')
	}
	first := true
	for _, r := range cs.Set.Ranges {
		g.writeClassRange(r, first)
		first = false
	}
	for _, p := range cs.Set.Properties {
		g.writeProperty(p)
		first = false
	}
	g.sb.WriteByte(']')
}

// genCompoundCharSet emits an intersection of character sets. Native
// intersection syntax (`[a&&b]`) is a Java/Ruby-specific extension; the
// feature validator is responsible for rejecting Intersection on flavors
// that can't express it; codegen just renders the one syntax the pack's
// two such engines share.
func (g *Generator) genCompoundCharSet(c *ir.CompoundCharSet) {
	g.sb.WriteByte('[')
	if c.Negative {
		g.sb.WriteByte('^')
	}
	for i, part := range c.Intersections {
		if i > 0 {
			g.sb.WriteString("&&")
		}
		inner := &part
		g.sb.WriteByte('[')
		if inner.Negative {
			g.sb.WriteByte('^')
		}
		first := true
		for _, r := range inner.Set.Ranges {
			g.writeClassRange(r, first)
			first = false
		}
		for _, p := range inner.Set.Properties {
			g.writeProperty(p)
		}
		g.sb.WriteByte(']')
	}
	g.sb.WriteByte(']')
}

func (g *Generator) writeClassRange(r ir.CharRange, isFirst bool) {
	if r.First == r.Last {
		g.sb.WriteString(escapeChar(r.First, g.Flavor, true, isFirst))
		return
	}
	g.sb.WriteString(escapeChar(r.First, g.Flavor, true, isFirst))
	g.sb.WriteByte('-')
	g.sb.WriteString(escapeChar(r.Last, g.Flavor, true, false))
}
