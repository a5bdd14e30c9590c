package extract

import (
	"context"
	"testing"

	"gettext-extractor/internal/jsast"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAliases(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"this receiver", "this.gettext('a');", "gettext('a');"},
		{"object receiver", "i18n.gettext('a');", "gettext('a');"},
		{"chained receiver", "app.i18n.gettext('a');", "gettext('a');"},
		{"keyword as object", "gettext.ngettext('a', 'b', n);", "gettext.ngettext('a', 'b', n);"},
		{"prefix name", "i18n.gettextual('a');", "i18n.gettextual('a');"},
		{"plain reference", "var f = i18n.gettext;", "var f = gettext;"},
		{"multiline keeps lines", "i18n\n  .gettext('a');\nnext();", "gettext\n('a');\nnext();"},
		{"no keyword", "foo.bar(1);", "foo.bar(1);"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeAliases(context.Background(), tt.src, "gettext", jsast.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := NormalizeAliases(context.Background(), got, "gettext", jsast.Options{})
			require.NoError(t, err)
			assert.Equal(t, got, again, "second pass must be a no-op")
		})
	}
}

func TestFoldTemplates(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"plain", "gettext(`hello`);", "gettext('hello');"},
		{"single quote", "gettext(`it's`);", `gettext('it\'s');`},
		{"double quote", "gettext(`say \"hi\"`);", `gettext('say "hi"');`},
		{"escaped quote", "gettext(`it\\'s`);", `gettext('it\'s');`},
		{"escaped backslash then quote", "gettext(`a\\\\'b`);", `gettext('a\\\'b');`},
		{"substitution", "gettext(`hi ${name}`);", "gettext(`hi ${name}`);"},
		{"empty", "gettext(``);", "gettext(``);"},
		{"multiline", "gettext(`one\ntwo`);", "gettext(`one\ntwo`);"},
		{"tagged", "tag`hello`;", "tag`hello`;"},
		{"outside call", "var s = `x`;", "var s = 'x';"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FoldTemplates(context.Background(), tt.src, jsast.Options{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			again, err := FoldTemplates(context.Background(), got, jsast.Options{})
			require.NoError(t, err)
			assert.Equal(t, got, again, "second pass must be a no-op")
		})
	}
}

func TestNormalize_ParseError(t *testing.T) {
	_, err := NormalizeAliases(context.Background(), "gettext(", "gettext", jsast.Options{})
	var perr *jsast.ParseError
	assert.ErrorAs(t, err, &perr)

	_, err = FoldTemplates(context.Background(), "gettext(", jsast.Options{})
	assert.ErrorAs(t, err, &perr)
}
