// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/proto/mod.rs (impl_sentences!)
//

package nut

// encodeWords renders a fixed word pattern into wire tokens, substituting
// each WordArg slot with the next value from args (in order) and
// appending any remaining args as a trailing variadic tail. This is the
// single generic encoder that every request type below drives with its
// own pattern and field values, rather than each hand-rolling its own
// token slice.
func encodeWords(pattern []Word, args ...string) []string {
	out := make([]string, 0, len(pattern)+len(args))
	ai := 0
	for _, w := range pattern {
		if w == WordArg {
			out = append(out, args[ai])
			ai++
		} else {
			s, _ := w.Encode()
			out = append(out, s)
		}
	}
	out = append(out, args[ai:]...)
	return out
}

// Request is implemented by every server-bound sentence the driver can
// emit. Encode renders it to wire tokens (the tokenizer adds quoting
// and the trailing newline).
type Request interface {
	Encode() []string
}

// --- GET requests ---

type reqGetNumLogins struct{ Ups string }

func (r reqGetNumLogins) Encode() []string {
	return encodeWords([]Word{WordGet, WordNumLogins, WordArg}, r.Ups)
}

type reqGetUpsDesc struct{ Ups string }

func (r reqGetUpsDesc) Encode() []string {
	return encodeWords([]Word{WordGet, WordUPSDesc, WordArg}, r.Ups)
}

type reqGetVar struct{ Ups, Name string }

func (r reqGetVar) Encode() []string {
	return encodeWords([]Word{WordGet, WordVar, WordArg, WordArg}, r.Ups, r.Name)
}

type reqGetType struct{ Ups, Name string }

func (r reqGetType) Encode() []string {
	return encodeWords([]Word{WordGet, WordType, WordArg, WordArg}, r.Ups, r.Name)
}

type reqGetDesc struct{ Ups, Name string }

func (r reqGetDesc) Encode() []string {
	return encodeWords([]Word{WordGet, WordDesc, WordArg, WordArg}, r.Ups, r.Name)
}

type reqGetCmdDesc struct{ Ups, Cmd string }

func (r reqGetCmdDesc) Encode() []string {
	return encodeWords([]Word{WordGet, WordCmdDesc, WordArg, WordArg}, r.Ups, r.Cmd)
}

// --- LIST requests ---

type reqListUps struct{}

func (r reqListUps) Encode() []string {
	return encodeWords([]Word{WordList, WordUPS})
}

type reqListVar struct{ Ups string }

func (r reqListVar) Encode() []string {
	return encodeWords([]Word{WordList, WordVar, WordArg}, r.Ups)
}

type reqListRw struct{ Ups string }

func (r reqListRw) Encode() []string {
	return encodeWords([]Word{WordList, WordRW, WordArg}, r.Ups)
}

type reqListCmd struct{ Ups string }

func (r reqListCmd) Encode() []string {
	return encodeWords([]Word{WordList, WordCmd, WordArg}, r.Ups)
}

type reqListEnum struct{ Ups, Name string }

func (r reqListEnum) Encode() []string {
	return encodeWords([]Word{WordList, WordEnum, WordArg, WordArg}, r.Ups, r.Name)
}

type reqListRange struct{ Ups, Name string }

func (r reqListRange) Encode() []string {
	return encodeWords([]Word{WordList, WordRange, WordArg, WordArg}, r.Ups, r.Name)
}

type reqListClient struct{ Ups string }

func (r reqListClient) Encode() []string {
	return encodeWords([]Word{WordList, WordClient, WordArg}, r.Ups)
}

// --- action / simple requests ---

type reqSetVar struct{ Ups, Name, Value string }

func (r reqSetVar) Encode() []string {
	return encodeWords([]Word{WordSet, WordVar, WordArg, WordArg, WordArg}, r.Ups, r.Name, r.Value)
}

type reqInstCmd struct {
	Ups, Cmd string
	Arg      string
	HasArg   bool
}

func (r reqInstCmd) Encode() []string {
	if r.HasArg {
		return encodeWords([]Word{WordInstCmd, WordArg, WordArg, WordArg}, r.Ups, r.Cmd, r.Arg)
	}
	return encodeWords([]Word{WordInstCmd, WordArg, WordArg}, r.Ups, r.Cmd)
}

type reqLogout struct{}

func (r reqLogout) Encode() []string { return encodeWords([]Word{WordLogout}) }

type reqLogin struct{ Ups string }

func (r reqLogin) Encode() []string { return encodeWords([]Word{WordLogin, WordArg}, r.Ups) }

type reqMaster struct{ Ups string }

func (r reqMaster) Encode() []string { return encodeWords([]Word{WordMaster, WordArg}, r.Ups) }

type reqFsd struct{ Ups string }

func (r reqFsd) Encode() []string { return encodeWords([]Word{WordFsd, WordArg}, r.Ups) }

type reqPassword struct{ Password string }

func (r reqPassword) Encode() []string {
	return encodeWords([]Word{WordPassword, WordArg}, r.Password)
}

type reqUsername struct{ Username string }

func (r reqUsername) Encode() []string {
	return encodeWords([]Word{WordUsername, WordArg}, r.Username)
}

type reqStartTLS struct{}

func (r reqStartTLS) Encode() []string { return encodeWords([]Word{WordStartTLS}) }

type reqHelp struct{}

func (r reqHelp) Encode() []string { return encodeWords([]Word{WordHelp}) }

type reqVersion struct{}

func (r reqVersion) Encode() []string { return encodeWords([]Word{WordVersion}) }

type reqNetVer struct{}

func (r reqNetVer) Encode() []string { return encodeWords([]Word{WordNetVer}) }

// Response is implemented by every client-bound sentence the driver can
// decode.
type Response interface {
	sentenceName() string
}

type OKResponse struct{}

func (OKResponse) sentenceName() string { return "OK" }

type OKFsdSetResponse struct{}

func (OKFsdSetResponse) sentenceName() string { return "OK FSD-SET" }

type OKStartTLSResponse struct{}

func (OKStartTLSResponse) sentenceName() string { return "OK STARTTLS" }

type OKGoodbyeResponse struct{}

func (OKGoodbyeResponse) sentenceName() string { return "OK Goodbye" }

// ErrResponse is the server's typed error sentence. It is never
// returned as an Ok value by a high-level operation: the sentence I/O
// layer translates it into a [*ProtocolError] at the point of decode.
type ErrResponse struct {
	Code   string
	Extras []string
}

func (ErrResponse) sentenceName() string { return "ERR" }

// BeginListResponse and EndListResponse carry the raw query words that
// followed BEGIN LIST / END LIST, e.g. ["VAR", "nutdev"]. The driver
// compares these against the words of the LIST request it issued to
// enforce query-echo (§8 property 5) rather than the codec knowing
// about every list flavor.
type BeginListResponse struct{ Query []string }

func (BeginListResponse) sentenceName() string { return "BEGIN LIST" }

type EndListResponse struct{ Query []string }

func (EndListResponse) sentenceName() string { return "END LIST" }

type NumLoginsResponse struct{ Ups, N string }

func (NumLoginsResponse) sentenceName() string { return "NUMLOGINS" }

type UpsDescResponse struct{ Ups, Text string }

func (UpsDescResponse) sentenceName() string { return "UPSDESC" }

type VarResponse struct{ Ups, Name, Value string }

func (VarResponse) sentenceName() string { return "VAR" }

type TypeResponse struct {
	Ups, Name string
	Types     []string
}

func (TypeResponse) sentenceName() string { return "TYPE" }

type DescResponse struct{ Ups, Name, Text string }

func (DescResponse) sentenceName() string { return "DESC" }

type CmdDescResponse struct{ Ups, Cmd, Text string }

func (CmdDescResponse) sentenceName() string { return "CMDDESC" }

type UpsItemResponse struct{ Name, Desc string }

func (UpsItemResponse) sentenceName() string { return "UPS" }

type RwResponse struct{ Ups, Name, Value string }

func (RwResponse) sentenceName() string { return "RW" }

type CmdItemResponse struct{ Ups, Name string }

func (CmdItemResponse) sentenceName() string { return "CMD" }

type EnumItemResponse struct{ Ups, Name, Value string }

func (EnumItemResponse) sentenceName() string { return "ENUM" }

type RangeItemResponse struct{ Ups, Name, Min, Max string }

func (RangeItemResponse) sentenceName() string { return "RANGE" }

type ClientItemResponse struct{ Ups, IP string }

func (ClientItemResponse) sentenceName() string { return "CLIENT" }

// responseDef is one row of the declarative response catalog: a fixed
// word pattern (WordArg slots bind positional fields), an optional
// trailing variadic tail, and a constructor from the bound values.
type responseDef struct {
	pattern  []Word
	variadic bool
	build    func(args, tail []string) Response
}

// responseCatalog is the client-bound sentence catalog (§6.3), tried in
// declaration order. A single generic matcher (tryMatchWords) drives
// every row; there is no per-variant decode function.
var responseCatalog = []responseDef{
	{[]Word{WordOK}, false, func(a, t []string) Response { return OKResponse{} }},
	{[]Word{WordOK, WordFsdSet}, false, func(a, t []string) Response { return OKFsdSetResponse{} }},
	{[]Word{WordOK, WordStartTLS}, false, func(a, t []string) Response { return OKStartTLSResponse{} }},
	{[]Word{WordOK, WordGoodbye}, false, func(a, t []string) Response { return OKGoodbyeResponse{} }},
	{[]Word{WordErr, WordArg}, true, func(a, t []string) Response { return ErrResponse{Code: a[0], Extras: t} }},
	{[]Word{WordBegin, WordList}, true, func(a, t []string) Response { return BeginListResponse{Query: t} }},
	{[]Word{WordEnd, WordList}, true, func(a, t []string) Response { return EndListResponse{Query: t} }},
	{[]Word{WordNumLogins, WordArg, WordArg}, false, func(a, t []string) Response { return NumLoginsResponse{Ups: a[0], N: a[1]} }},
	{[]Word{WordUPSDesc, WordArg, WordArg}, false, func(a, t []string) Response { return UpsDescResponse{Ups: a[0], Text: a[1]} }},
	{[]Word{WordVar, WordArg, WordArg, WordArg}, false, func(a, t []string) Response { return VarResponse{Ups: a[0], Name: a[1], Value: a[2]} }},
	{[]Word{WordType, WordArg, WordArg}, true, func(a, t []string) Response { return TypeResponse{Ups: a[0], Name: a[1], Types: t} }},
	{[]Word{WordDesc, WordArg, WordArg, WordArg}, false, func(a, t []string) Response { return DescResponse{Ups: a[0], Name: a[1], Text: a[2]} }},
	{[]Word{WordCmdDesc, WordArg, WordArg, WordArg}, false, func(a, t []string) Response { return CmdDescResponse{Ups: a[0], Cmd: a[1], Text: a[2]} }},
	{[]Word{WordUPS, WordArg, WordArg}, false, func(a, t []string) Response { return UpsItemResponse{Name: a[0], Desc: a[1]} }},
	{[]Word{WordRW, WordArg, WordArg, WordArg}, false, func(a, t []string) Response { return RwResponse{Ups: a[0], Name: a[1], Value: a[2]} }},
	{[]Word{WordCmd, WordArg, WordArg}, false, func(a, t []string) Response { return CmdItemResponse{Ups: a[0], Name: a[1]} }},
	{[]Word{WordEnum, WordArg, WordArg, WordArg}, false, func(a, t []string) Response { return EnumItemResponse{Ups: a[0], Name: a[1], Value: a[2]} }},
	{[]Word{WordRange, WordArg, WordArg, WordArg, WordArg}, false, func(a, t []string) Response {
		return RangeItemResponse{Ups: a[0], Name: a[1], Min: a[2], Max: a[3]}
	}},
	{[]Word{WordClient, WordArg, WordArg}, false, func(a, t []string) Response { return ClientItemResponse{Ups: a[0], IP: a[1]} }},
}

// tryMatchWords matches tokens against pattern starting at index 0,
// returning the bound WordArg values in order and, if variadic, the
// trailing tail beyond the pattern. ok is false if any fixed slot fails
// to match, or (for a non-variadic pattern) extra tokens remain after
// the pattern ends (i.e. EOL does not hold).
func tryMatchWords(pattern []Word, variadic bool, tokens []string) (args, tail []string, ok bool) {
	for i, w := range pattern {
		if !matchesWord(w, tokens, i) {
			return nil, nil, false
		}
		if w == WordArg {
			args = append(args, tokens[i])
		}
	}
	if variadic {
		if len(tokens) < len(pattern) {
			return nil, nil, false
		}
		if len(tokens) > len(pattern) {
			tail = append(tail, tokens[len(pattern):]...)
		}
		return args, tail, true
	}
	if !matchesWord(WordEOL, tokens, len(pattern)) {
		return nil, nil, false
	}
	return args, tail, true
}

// DecodeResponse decodes a tokenized line into its client-bound
// sentence, per the declaration-ordered catalog above. It returns a
// [*ProtocolError] with KindUnknownResponseType if no catalog row
// matches.
func DecodeResponse(tokens []string) (Response, error) {
	for _, def := range responseCatalog {
		if args, tail, ok := tryMatchWords(def.pattern, def.variadic, tokens); ok {
			return def.build(args, tail), nil
		}
	}
	return nil, newProtocolError(KindUnknownResponseType, "unrecognized server response")
}
