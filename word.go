// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/proto/mod.rs (impl_words!)
//

package nut

// Word is a single token slot in the NUT wire protocol. It is a closed
// tagged union: the two meta-variants WordArg and WordEOL, plus one
// variant per reserved protocol keyword.
type Word int

const (
	// WordArg stands for any token that is not one of the reserved
	// keywords below.
	WordArg Word = iota
	// WordEOL marks the absence of a token at a given slot position.
	WordEOL

	WordBegin
	WordClient
	WordCmd
	WordCmdDesc
	WordDesc
	WordEnd
	WordEnum
	WordErr
	WordFsd
	WordFsdSet
	WordGet
	WordGoodbye
	WordHelp
	WordInstCmd
	WordList
	WordLogin
	WordLogout
	WordMaster
	WordNetVer
	WordNumLogins
	WordOK
	WordPassword
	WordRange
	WordRW
	WordSet
	WordStartTLS
	WordType
	WordUPS
	WordUPSDesc
	WordUsername
	WordVar
	WordVersion
)

// keywordText holds the exact, case-sensitive wire spelling of every
// reserved keyword. "Goodbye" keeps the server's mixed-case spelling.
var keywordText = map[Word]string{
	WordBegin:     "BEGIN",
	WordClient:    "CLIENT",
	WordCmd:       "CMD",
	WordCmdDesc:   "CMDDESC",
	WordDesc:      "DESC",
	WordEnd:       "END",
	WordEnum:      "ENUM",
	WordErr:       "ERR",
	WordFsd:       "FSD",
	WordFsdSet:    "FSD-SET",
	WordGet:       "GET",
	WordGoodbye:   "Goodbye",
	WordHelp:      "HELP",
	WordInstCmd:   "INSTCMD",
	WordList:      "LIST",
	WordLogin:     "LOGIN",
	WordLogout:    "LOGOUT",
	WordMaster:    "MASTER",
	WordNetVer:    "NETVER",
	WordNumLogins: "NUMLOGINS",
	WordOK:        "OK",
	WordPassword:  "PASSWORD",
	WordRange:     "RANGE",
	WordRW:        "RW",
	WordSet:       "SET",
	WordStartTLS:  "STARTTLS",
	WordType:      "TYPE",
	WordUPS:       "UPS",
	WordUPSDesc:   "UPSDESC",
	WordUsername:  "USERNAME",
	WordVar:       "VAR",
	WordVersion:   "VERSION",
}

// textKeyword is the reverse lookup of keywordText, built once at init time.
var textKeyword = func() map[string]Word {
	m := make(map[string]Word, len(keywordText))
	for w, s := range keywordText {
		m[s] = w
	}
	return m
}()

// Encode returns the wire spelling of a keyword. It returns false for
// WordArg and WordEOL, which have no wire representation of their own.
func (w Word) Encode() (string, bool) {
	s, ok := keywordText[w]
	return s, ok
}

// wordAt decodes the token at position idx in tokens. The second return
// value is false if idx falls at or past the end of tokens (an absent,
// i.e. EOL, slot); otherwise it reports whether the token matched a
// reserved keyword (in which case the Word is that keyword) or not (in
// which case the Word is WordArg, since any non-reserved token is a
// candidate argument).
func wordAt(tokens []string, idx int) (w Word, present bool) {
	if idx < 0 || idx >= len(tokens) {
		return WordEOL, false
	}
	if kw, ok := textKeyword[tokens[idx]]; ok {
		return kw, true
	}
	return WordArg, true
}

// matchesWord reports whether pattern word w matches the token at
// position idx in tokens, per the word-matching rules: WordArg matches
// any present token; a concrete keyword matches iff the slot holds
// exactly that keyword; WordEOL matches iff the slot is absent.
func matchesWord(w Word, tokens []string, idx int) bool {
	got, present := wordAt(tokens, idx)
	switch w {
	case WordArg:
		return present
	case WordEOL:
		return !present
	default:
		return present && got == w
	}
}
