// Package gettext provides the stand-in translation functions bound to the
// keyword during extraction. They never translate; each call returns a
// description of the message it names.
package gettext

import (
	"fmt"
	"slices"

	"gettext-extractor/internal/sandbox"
)

// Message keys in the returned description.
const (
	KeyMsgID       = "msgid"
	KeyMsgIDPlural = "msgid_plural"
	KeyMsgCtxt     = "msgctxt"
	KeyDomain      = "domain"
)

// role names what a positional argument means for a gettext function.
type role int

const (
	roleMsgID role = iota
	rolePlural
	roleContext
	roleDomain
	roleCount
)

var roleKeys = map[role]string{
	roleMsgID:   KeyMsgID,
	rolePlural:  KeyMsgIDPlural,
	roleContext: KeyMsgCtxt,
	roleDomain:  KeyDomain,
}

// signatures maps the gettext family to its argument layout.
var signatures = map[string][]role{
	"gettext":   {roleMsgID},
	"ngettext":  {roleMsgID, rolePlural, roleCount},
	"pgettext":  {roleContext, roleMsgID},
	"npgettext": {roleContext, roleMsgID, rolePlural, roleCount},
	"dgettext":  {roleDomain, roleMsgID},
	"dngettext": {roleDomain, roleMsgID, rolePlural, roleCount},
	"dpgettext": {roleDomain, roleContext, roleMsgID},
}

// Names returns the method names installed on the binding, sorted.
func Names() []string {
	out := make([]string, 0, len(signatures))
	for name := range signatures {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

// Binding returns the default keyword binding: callable as gettext(msgid),
// with the rest of the family available as methods.
func Binding() sandbox.Binding {
	methods := make(map[string]sandbox.Func, len(signatures))
	for name, sig := range signatures {
		methods[name] = describe(name, sig)
	}
	return sandbox.Binding{
		Call:    describe("gettext", signatures["gettext"]),
		Methods: methods,
	}
}

// describe forces only the string-valued arguments of sig. Counts stay
// unevaluated, so they may reference variables the sandbox cannot see.
func describe(name string, sig []role) sandbox.Func {
	return func(args []sandbox.Arg) (any, error) {
		out := make(map[string]any, len(sig))
		for i, r := range sig {
			if r == roleCount {
				continue
			}
			if i >= len(args) {
				if r == roleMsgID {
					return nil, fmt.Errorf("%s: missing msgid argument", name)
				}
				continue
			}
			v, err := args[i]()
			if err != nil {
				return nil, err
			}
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%s: %s must be a string, got %T", name, roleKeys[r], v)
			}
			out[roleKeys[r]] = s
		}
		return out, nil
	}
}
