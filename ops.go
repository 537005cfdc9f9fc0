//
// SPDX-License-Identifier: GPL-3.0-or-later
//
// Adapted from: _examples/original_source/rups/src/blocking/mod.rs
//

package nut

import "strconv"

// keyword returns the wire spelling of a reserved keyword, panicking if
// w has none; used only for keywords known at compile time to have one.
func keyword(w Word) string {
	s, ok := w.Encode()
	if !ok {
		panic("nut: word has no wire spelling")
	}
	return s
}

// request issues req and returns the single decoded response, whatever its
// concrete type (used for the simple "one line in, one line out" GET
// operations).
func (c *Conn) request(req Request) (Response, error) {
	if err := c.writeSentence(req); err != nil {
		return nil, err
	}
	return c.readSentence()
}

// NumLogins returns the number of clients currently logged in to ups.
func (c *Conn) NumLogins(ups string) (int, error) {
	resp, err := c.request(reqGetNumLogins{Ups: ups})
	if err != nil {
		return 0, err
	}
	r, err := decodeListItem[NumLoginsResponse](resp)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(r.N)
	if err != nil {
		return 0, newProtocolError(KindNotProcessable, "NUMLOGINS value is not an integer: "+r.N)
	}
	return n, nil
}

// UpsDescription returns ups's human-readable description.
func (c *Conn) UpsDescription(ups string) (string, error) {
	resp, err := c.request(reqGetUpsDesc{Ups: ups})
	if err != nil {
		return "", err
	}
	r, err := decodeListItem[UpsDescResponse](resp)
	if err != nil {
		return "", err
	}
	return r.Text, nil
}

// Variable returns the typed value of variable name on ups.
func (c *Conn) Variable(ups, name string) (Variable, error) {
	resp, err := c.request(reqGetVar{Ups: ups, Name: name})
	if err != nil {
		return nil, err
	}
	r, err := decodeListItem[VarResponse](resp)
	if err != nil {
		return nil, err
	}
	return ParseVariable(r.Name, r.Value)
}

// VariableDefinition returns the type tags of variable name on ups.
func (c *Conn) VariableDefinition(ups, name string) (VariableDefinition, error) {
	resp, err := c.request(reqGetType{Ups: ups, Name: name})
	if err != nil {
		return VariableDefinition{}, err
	}
	r, err := decodeListItem[TypeResponse](resp)
	if err != nil {
		return VariableDefinition{}, err
	}
	return NewVariableDefinition(r.Name, r.Types)
}

// VariableDescription returns the human-readable description of
// variable name on ups.
func (c *Conn) VariableDescription(ups, name string) (string, error) {
	resp, err := c.request(reqGetDesc{Ups: ups, Name: name})
	if err != nil {
		return "", err
	}
	r, err := decodeListItem[DescResponse](resp)
	if err != nil {
		return "", err
	}
	return r.Text, nil
}

// CommandDescription returns the human-readable description of instant
// command cmd on ups.
func (c *Conn) CommandDescription(ups, cmd string) (string, error) {
	resp, err := c.request(reqGetCmdDesc{Ups: ups, Cmd: cmd})
	if err != nil {
		return "", err
	}
	r, err := decodeListItem[CmdDescResponse](resp)
	if err != nil {
		return "", err
	}
	return r.Text, nil
}

// ListUps lists every UPS device known to the server.
func (c *Conn) ListUps() ([]UpsItemResponse, error) {
	return runList[UpsItemResponse](c, reqListUps{}, []string{keyword(WordUPS)})
}

// ListVariables lists every variable currently set on ups.
func (c *Conn) ListVariables(ups string) ([]Variable, error) {
	raw, err := runList[VarResponse](c, reqListVar{Ups: ups}, []string{keyword(WordVar), ups})
	if err != nil {
		return nil, err
	}
	vars := make([]Variable, 0, len(raw))
	for _, r := range raw {
		v, err := ParseVariable(r.Name, r.Value)
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	return vars, nil
}

// ListMutableVariables lists the variables on ups that are mutable
// (settable via SET VAR).
func (c *Conn) ListMutableVariables(ups string) ([]RwResponse, error) {
	return runList[RwResponse](c, reqListRw{Ups: ups}, []string{keyword(WordRW), ups})
}

// ListCommands lists the instant commands supported by ups.
func (c *Conn) ListCommands(ups string) ([]CmdItemResponse, error) {
	return runList[CmdItemResponse](c, reqListCmd{Ups: ups}, []string{keyword(WordCmd), ups})
}

// ListEnumValues lists the admissible values of an ENUM-typed variable.
func (c *Conn) ListEnumValues(ups, name string) ([]EnumItemResponse, error) {
	return runList[EnumItemResponse](c, reqListEnum{Ups: ups, Name: name}, []string{keyword(WordEnum), ups, name})
}

// ListRanges lists the admissible (min, max) ranges of a RANGE-typed
// variable.
func (c *Conn) ListRanges(ups, name string) ([]VariableRange, error) {
	raw, err := runList[RangeItemResponse](c, reqListRange{Ups: ups, Name: name}, []string{keyword(WordRange), ups, name})
	if err != nil {
		return nil, err
	}
	ranges := make([]VariableRange, 0, len(raw))
	for _, r := range raw {
		ranges = append(ranges, VariableRange{Min: r.Min, Max: r.Max})
	}
	return ranges, nil
}

// ListClients lists the IP addresses of clients currently connected to
// ups.
func (c *Conn) ListClients(ups string) ([]ClientItemResponse, error) {
	return runList[ClientItemResponse](c, reqListClient{Ups: ups}, []string{keyword(WordClient), ups})
}

// SetVariable sets variable name on ups to value. The server must have
// granted this connection's user the SET permission for name.
func (c *Conn) SetVariable(ups, name, value string) error {
	return c.call(reqSetVar{Ups: ups, Name: name, Value: value})
}

// RunCommand executes instant command cmd on ups with no argument.
func (c *Conn) RunCommand(ups, cmd string) error {
	return c.call(reqInstCmd{Ups: ups, Cmd: cmd})
}

// RunCommandWithArg executes instant command cmd on ups, passing arg.
func (c *Conn) RunCommandWithArg(ups, cmd, arg string) error {
	return c.call(reqInstCmd{Ups: ups, Cmd: cmd, Arg: arg, HasArg: true})
}

// Login registers this connection as monitoring ups (used by upsmon-style
// clients). It may be issued at most once per connection, from the
// Authenticated state.
func (c *Conn) Login(ups string) error {
	if err := c.call(reqLogin{Ups: ups}); err != nil {
		return err
	}
	c.loginUps = ups
	return nil
}

// Master requests exclusive (master) access to ups, as granted by the
// server's upsd.users configuration.
func (c *Conn) Master(ups string) error {
	return c.call(reqMaster{Ups: ups})
}

// ForceShutdown (FSD) tells the server that this client is about to shut
// the system down, and that ups should enter its forced-shutdown
// sequence once its battery runs out.
func (c *Conn) ForceShutdown(ups string) error {
	resp, err := c.request(reqFsd{Ups: ups})
	if err != nil {
		return err
	}
	if _, ok := resp.(OKFsdSetResponse); ok {
		return nil
	}
	if _, ok := resp.(OKResponse); ok {
		return nil
	}
	return newProtocolError(KindUnexpectedResponse, "expected OK FSD-SET response")
}

// Help requests the server's list of supported top-level commands,
// rendered as a single human-readable line.
func (c *Conn) Help() (string, error) {
	if err := c.writeSentence(reqHelp{}); err != nil {
		return "", err
	}
	line, err := c.readRawLine()
	if err != nil {
		return "", err
	}
	return line, nil
}

// Version requests the server daemon's version string.
func (c *Conn) Version() (string, error) {
	if err := c.writeSentence(reqVersion{}); err != nil {
		return "", err
	}
	line, err := c.readRawLine()
	if err != nil {
		return "", err
	}
	return line, nil
}

// NetworkVersion requests the NUT network protocol version the server
// implements (e.g. "1.2").
func (c *Conn) NetworkVersion() (string, error) {
	if err := c.writeSentence(reqNetVer{}); err != nil {
		return "", err
	}
	line, err := c.readRawLine()
	if err != nil {
		return "", err
	}
	return line, nil
}
