package gettext

import (
	"context"
	"errors"
	"testing"

	"gettext-extractor/internal/sandbox"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func value(v any) sandbox.Arg {
	return func() (any, error) { return v, nil }
}

func failing(msg string) sandbox.Arg {
	return func() (any, error) { return nil, errors.New(msg) }
}

func TestBinding_Gettext(t *testing.T) {
	b := Binding()
	out, err := b.Call([]sandbox.Arg{value("Hello")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{KeyMsgID: "Hello"}, out)
}

func TestBinding_NgettextSkipsCount(t *testing.T) {
	b := Binding()
	out, err := b.Methods["ngettext"]([]sandbox.Arg{value("one file"), value("%d files"), failing("count is not defined")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{KeyMsgID: "one file", KeyMsgIDPlural: "%d files"}, out)
}

func TestBinding_ContextAndDomain(t *testing.T) {
	b := Binding()

	out, err := b.Methods["pgettext"]([]sandbox.Arg{value("menu"), value("Open")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{KeyMsgCtxt: "menu", KeyMsgID: "Open"}, out)

	out, err = b.Methods["dpgettext"]([]sandbox.Arg{value("admin"), value("menu"), value("Quit")})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{KeyDomain: "admin", KeyMsgCtxt: "menu", KeyMsgID: "Quit"}, out)
}

func TestBinding_Errors(t *testing.T) {
	b := Binding()

	_, err := b.Call(nil)
	assert.ErrorContains(t, err, "missing msgid")

	_, err = b.Call([]sandbox.Arg{value(int64(3))})
	assert.ErrorContains(t, err, "msgid must be a string")

	_, err = b.Call([]sandbox.Arg{failing("boom")})
	assert.EqualError(t, err, "boom")
}

func TestBinding_InSandbox(t *testing.T) {
	ev := sandbox.New("_", Binding())

	v, err := ev.Eval(context.Background(), "_.npgettext(() => ('cart'), () => ('%d item'), () => ('%d items'), () => (n))")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{KeyMsgCtxt: "cart", KeyMsgID: "%d item", KeyMsgIDPlural: "%d items"}, v)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Equal(t, []string{"dgettext", "dngettext", "dpgettext", "gettext", "ngettext", "npgettext", "pgettext"}, names)
}
