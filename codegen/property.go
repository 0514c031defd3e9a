package codegen

import (
	"github.com/pomsky-lang/pomsky-sub000/ir"
	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

// writeProperty renders one Property node: a `\w`-class shorthand, or a
// `\p{Name}`/`\P{Name}` (or short `\pL`) Unicode property reference, per
// spec §4.J's Unicode-property bullet.
func (g *Generator) writeProperty(p ir.Property) {
	switch p.Kind {
	case unicodetab.KindWord, unicodetab.KindDigit, unicodetab.KindSpace, unicodetab.KindHorizSpace, unicodetab.KindVertSpace:
		g.sb.WriteString(shorthandEscape(p.Kind, p.Negative))
		return
	}

	switch p.Kind {
	case unicodetab.KindCategory:
		g.writeCategory(p)
	case unicodetab.KindScript:
		g.writeBraced(scriptPrefix(g.Flavor, p.ScriptExtension)+p.Value, p.Negative)
	case unicodetab.KindCodeBlock:
		g.writeBraced(blockName(g.Flavor, p.Value), p.Negative)
	default:
		g.writeBraced(p.Value, p.Negative)
	}
}

func (g *Generator) writeCategory(p ir.Property) {
	if len(p.Value) == 1 && shortCategoryFlavor(g.Flavor) {
		if p.Negative {
			g.sb.WriteString("\\P" + p.Value)
		} else {
			g.sb.WriteString("\\p" + p.Value)
		}
		return
	}
	if g.Flavor == unicodetab.Rust {
		g.writeBraced("gc="+p.Value, p.Negative)
		return
	}
	g.writeBraced(p.Value, p.Negative)
}

func (g *Generator) writeBraced(name string, negative bool) {
	if negative {
		g.sb.WriteString("\\P{" + name + "}")
		return
	}
	g.sb.WriteString("\\p{" + name + "}")
}

func shortCategoryFlavor(f unicodetab.Flavor) bool {
	switch f {
	case unicodetab.Pcre, unicodetab.Java, unicodetab.Rust, unicodetab.Ruby:
		return true
	default:
		return false
	}
}

// scriptPrefix returns the "sc="/"scx=" prefix flavors that don't accept a
// bare script name require (spec §4.J: "JS/Java sc=Greek").
func scriptPrefix(f unicodetab.Flavor, scriptExtension bool) string {
	switch f {
	case unicodetab.JavaScript, unicodetab.Java:
		if scriptExtension {
			return "scx="
		}
		return "sc="
	default:
		if scriptExtension {
			return "scx="
		}
		return ""
	}
}

// blockName rewrites a canonical UCD block name to the flavor's own
// spelling (spec §4.J: "IsBasic_Latin, InBasic_Latin, etc.").
func blockName(f unicodetab.Flavor, block string) string {
	switch f {
	case unicodetab.Java, unicodetab.DotNet:
		return "Is" + block
	case unicodetab.Pcre, unicodetab.Rust:
		return "In" + block
	default:
		return block
	}
}
