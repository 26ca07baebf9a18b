package classjson

import (
	"fmt"
	"strings"
)

type flagMnemonic struct {
	bit  uint16
	name string
}

// Order matches the tables in JVMS 4.1, 4.5, and 4.6, reproduced verbatim
// in the package design so the rendered mnemonic list reads the same way
// across implementations.
var classFlags = []flagMnemonic{
	{0x0001, "PUBLIC"},
	{0x0010, "FINAL"},
	{0x0020, "SUPER"},
	{0x0200, "INTERFACE"},
	{0x0400, "ABSTRACT"},
	{0x1000, "SYNTHETIC"},
	{0x2000, "ANNOTATION"},
	{0x4000, "ENUM"},
	{0x8000, "MODULE"},
}

var fieldFlags = []flagMnemonic{
	{0x0001, "PUBLIC"},
	{0x0002, "PRIVATE"},
	{0x0004, "PROTECTED"},
	{0x0008, "STATIC"},
	{0x0010, "FINAL"},
	{0x0040, "VOLATILE"},
	{0x0080, "TRANSIENT"},
	{0x1000, "SYNTHETIC"},
	{0x4000, "ENUM"},
}

var methodFlags = []flagMnemonic{
	{0x0001, "PUBLIC"},
	{0x0002, "PRIVATE"},
	{0x0004, "PROTECTED"},
	{0x0008, "STATIC"},
	{0x0010, "FINAL"},
	{0x0020, "SYNCHRONIZED"},
	{0x0040, "BRIDGE"},
	{0x0080, "VARARGS"},
	{0x0100, "NATIVE"},
	{0x0400, "ABSTRACT"},
	{0x0800, "STRICT"},
	{0x1000, "SYNTHETIC"},
}

// renderFlags formats flags as "<decimal> (<MNEMONIC | ...>)", e.g.
// "33 (PUBLIC | SUPER)", or "0 ()" when no bit is set.
func renderFlags(flags uint16, table []flagMnemonic) string {
	var names []string
	for _, m := range table {
		if flags&m.bit != 0 {
			names = append(names, m.name)
		}
	}
	return fmt.Sprintf("%d (%s)", flags, strings.Join(names, " | "))
}

func classAccessFlags(flags uint16) string  { return renderFlags(flags, classFlags) }
func fieldAccessFlags(flags uint16) string  { return renderFlags(flags, fieldFlags) }
func methodAccessFlags(flags uint16) string { return renderFlags(flags, methodFlags) }
