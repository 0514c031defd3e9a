package codegen

import (
	"fmt"

	"github.com/pomsky-lang/pomsky-sub000/unicodetab"
)

const outsideClassMetachars = ".^$|()[]{}*+?\\"

// escapeChar renders one code point for literal output: a mnemonic escape
// for the common whitespace controls, a metacharacter escape when outside
// (or, for the class-specific set, inside) a character class, a hex escape
// for other control characters, and the literal rune otherwise.
func escapeChar(r rune, flavor unicodetab.Flavor, inClass, isFirstInClass bool) string {
	switch r {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	}

	if inClass {
		switch r {
		case ']', '\\':
			return "\\" + string(r)
		case '^':
			if isFirstInClass {
				return "\\^"
			}
		case '-':
			return "\\-"
		}
	} else {
		for _, m := range outsideClassMetachars {
			if r == m {
				return "\\" + string(r)
			}
		}
	}

	if r < 0x20 || r == 0x7F {
		return hexEscape(r, flavor)
	}
	return string(r)
}

// hexEscape chooses a flavor-appropriate hex escape form: \xHH for bytes,
// otherwise the widest form that flavor's engine accepts.
func hexEscape(r rune, flavor unicodetab.Flavor) string {
	if r <= 0xFF {
		return fmt.Sprintf("\\x%02X", r)
	}
	switch flavor {
	case unicodetab.Pcre, unicodetab.Ruby, unicodetab.Rust, unicodetab.RE2:
		return fmt.Sprintf("\\x{%X}", r)
	case unicodetab.JavaScript:
		return fmt.Sprintf("\\u{%X}", r)
	case unicodetab.Python:
		if r <= 0xFFFF {
			return fmt.Sprintf("\\u%04X", r)
		}
		return fmt.Sprintf("\\U%08X", r)
	default: // Java, DotNet: \uHHHH, surrogate pair above the BMP
		if r <= 0xFFFF {
			return fmt.Sprintf("\\u%04X", r)
		}
		v := r - 0x10000
		hi := 0xD800 + (v >> 10)
		lo := 0xDC00 + (v & 0x3FF)
		return fmt.Sprintf("\\u%04X\\u%04X", hi, lo)
	}
}
