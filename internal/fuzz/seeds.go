package fuzztests

import "testing"

const maxFuzzInput = 1 << 16 // 64 KiB

// sourceSeeds cover the attribute forms the parser accepts.
var sourceSeeds = []string{
	"",
	"func f() {}\n",
	"@available(*, unavailable)\nfunc f() {}\nfunc g() { f() }\n",
	"@available(*, deprecated, renamed: \"g(x:)\")\nfunc f(x: Int) {}\nfunc use() { f(x: 1) }\n",
	"@available(iOS 8.0, OSX 10.10, *)\nfunc f() {}\n",
	"@available(macOS, introduced: 10.10, deprecated: 10.11, obsoleted: 10.12, message: \"m\")\nfunc f() {}\n",
	"@available(badPlatform, unavailable)\nstruct S {}\n",
	"struct MyCollection<Element> {\n  @available(*, unavailable, renamed: \"Element\")\n  typealias T = Element\n}\n",
	"extension S {\n  @available(*, unavailable)\n  func m() {}\n}\n",
	"@available(*, unavailable, message: \"double \\\" quote\")\nfunc q() {}\n",
	"@available(*, deprecated, renamed: \"S.init(a:b:)\")\nfunc make(a: Int, _ b: Int) {}\n",
	"@available(\n",
	"@available(*, renamed: )\nfunc f() {}\n",
	"func f() { let x = g(a: 1, b: 2) + h()\n }\n",
	"/* unterminated",
	"// comment only\n",
}

// renameSeeds are renamed: arguments, valid and not.
var renameSeeds = []string{
	"bar",
	"bar(x:)",
	"bar(_:y:)",
	"S.init(a:b:)",
	"getter:S.prop()",
	"setter:S.prop(_:)",
	"S.Inner.name",
	"bar(",
	"(x:)",
	"",
	"a..b",
}

var versionSeeds = []string{"10", "10.10", "10.10.3", "1.2.3.4", "", ".", "10.", "x.y", "99999999999", "-1"}

func addSourceSeeds(f *testing.F) {
	for _, s := range sourceSeeds {
		f.Add([]byte(s))
	}
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
