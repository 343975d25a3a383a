package fuzzer

import "github.com/duskware/blindfuzz/internal/genbytes"

// word is the base building block of strings-mode sentences: a short
// integer text/bytes rendering or a random string/ascii string, with a rare
// much-longer variant.
var word = genbytes.Choice(
	genbytes.W(10, genbytes.I64Text),
	genbytes.W(10, genbytes.I64Bytes),
	genbytes.W(10, genbytes.RandBytes(0, 16)),
	genbytes.W(10, genbytes.RandASCII(0, 16)),
	genbytes.W(10, genbytes.RandBytes(16, 64)),
	genbytes.W(10, genbytes.RandASCII(16, 64)),
	genbytes.W(1, genbytes.RandBytes(256, 4096)),
	genbytes.W(1, genbytes.RandASCII(256, 4096)),
)

var separator = genbytes.Choice(
	genbytes.W(1, genbytes.LiteralString("\n")),
	genbytes.W(1, genbytes.LiteralString("\r\n")),
	genbytes.W(1, genbytes.LiteralString("\r")),
	genbytes.W(1, genbytes.LiteralString("")),
	genbytes.W(1, genbytes.LiteralString("")),
	genbytes.W(1, genbytes.LiteralString(" ")),
)

var wordThenSep = genbytes.Then(word, separator)

var shortSentence = genbytes.Repeat(2, 4, wordThenSep)
var longSentence = genbytes.Repeat(4, 10, wordThenSep)

// stringsGrammar is the Random-phase generator for Strings mode.
var stringsGrammar = genbytes.Choice(
	genbytes.W(1, shortSentence),
	genbytes.W(1, longSentence),
	genbytes.W(1, word),
)

// --- URL grammar ---

var commonProtocol = genbytes.Choice(
	genbytes.W(5, genbytes.LiteralString("http://")),
	genbytes.W(5, genbytes.LiteralString("https://")),
	genbytes.W(1, genbytes.LiteralString("ftp://")),
	genbytes.W(1, genbytes.LiteralString("file://")),
)

var badProtocol = genbytes.Choice(
	genbytes.W(1, genbytes.LiteralString("")),
	genbytes.W(1, genbytes.LiteralString(":")),
	genbytes.W(1, genbytes.LiteralString("://")),
	genbytes.W(1, genbytes.LiteralString(":///")),
	genbytes.W(1, genbytes.LiteralString("a://")),
	genbytes.W(1, genbytes.RandASCII(0, 8)),
)

var protocol = genbytes.Choice(
	genbytes.W(5, commonProtocol),
	genbytes.W(2, badProtocol),
)

var domainWord = genbytes.RandASCII(1, 12)

var commonDomain = genbytes.Choice(
	genbytes.W(3, genbytes.LiteralString("example.com")),
	genbytes.W(3, genbytes.LiteralString("localhost")),
	genbytes.W(1, genbytes.LiteralString("255.255.255.255")),
	genbytes.W(1, genbytes.LiteralString("[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff]")),
	genbytes.W(1, genbytes.LiteralString("[::1]")),
)

var badDomain = genbytes.Choice(
	genbytes.W(1, genbytes.LiteralString("")),
	genbytes.W(1, genbytes.LiteralString(".")),
	genbytes.W(1, genbytes.LiteralString("...")),
	genbytes.W(1, genbytes.LiteralString("[")),
	genbytes.W(1, genbytes.LiteralString("999.999.999.999")),
	genbytes.W(1, genbytes.LiteralString("[ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff:ffff]")),
	genbytes.W(1, genbytes.Chain(domainWord, genbytes.LiteralString(":999999"))),
)

var domain = genbytes.Choice(
	genbytes.W(5, commonDomain),
	genbytes.W(3, genbytes.Chain(domainWord, genbytes.LiteralString("."), domainWord)),
	genbytes.W(2, badDomain),
)

var pathSegment = genbytes.Choice(
	genbytes.W(5, genbytes.RandASCII(0, 10)),
	genbytes.W(1, genbytes.LiteralString("..")),
	genbytes.W(1, genbytes.LiteralString(".")),
	genbytes.W(1, genbytes.RandBytes(0, 10)),
)

var path = genbytes.Choice(
	genbytes.W(3, genbytes.LiteralString("")),
	genbytes.W(5, genbytes.Then(genbytes.LiteralString("/"), genbytes.Repeat(0, 4, genbytes.Then(pathSegment, genbytes.LiteralString("/"))))),
	genbytes.W(1, genbytes.LiteralString("///")),
)

var query = genbytes.Choice(
	genbytes.W(4, genbytes.LiteralString("")),
	genbytes.W(4, genbytes.Chain(genbytes.LiteralString("?"), genbytes.RandASCII(0, 16), genbytes.LiteralString("="), genbytes.RandASCII(0, 16))),
	genbytes.W(1, genbytes.LiteralString("?")),
	genbytes.W(1, genbytes.LiteralString("?=&=&=")),
)

var fragment = genbytes.Choice(
	genbytes.W(4, genbytes.LiteralString("")),
	genbytes.W(2, genbytes.Chain(genbytes.LiteralString("#"), genbytes.RandASCII(0, 16))),
	genbytes.W(1, genbytes.LiteralString("#")),
)

// urlGrammar is the Random-phase generator for Urls mode.
var urlGrammar = genbytes.Chain(protocol, domain, path, query, fragment)
