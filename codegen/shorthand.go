package codegen

import "github.com/pomsky-lang/pomsky-sub000/unicodetab"

// shorthandEscape renders the `\w \d \s \W \D \S \h \v` class escapes.
// `\h`/`\v` only ever reach this function for flavors that actually have
// them (Pcre/Ruby): ir/shorthand.go already expanded horiz_space/vert_space
// into explicit ranges during lowering for every other flavor. A negated
// horiz_space/vert_space item on Pcre/Ruby renders as `\H`/`\V`.
func shorthandEscape(kind unicodetab.Kind, negative bool) string {
	switch kind {
	case unicodetab.KindWord:
		if negative {
			return "\\W"
		}
		return "\\w"
	case unicodetab.KindDigit:
		if negative {
			return "\\D"
		}
		return "\\d"
	case unicodetab.KindSpace:
		if negative {
			return "\\S"
		}
		return "\\s"
	case unicodetab.KindHorizSpace:
		if negative {
			return "\\H"
		}
		return "\\h"
	case unicodetab.KindVertSpace:
		if negative {
			return "\\V"
		}
		return "\\v"
	default:
		return ""
	}
}
