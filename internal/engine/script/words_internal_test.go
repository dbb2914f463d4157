// Released under an MIT license. See LICENSE.

package script

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/michaelmacinnis/adapted"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	for _, tc := range []struct {
		line  string
		words []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"function ls", []string{"function", "ls"}},
		{"  set -g x 1 2\t3", []string{"set", "-g", "x", "1", "2", "3"}},
		{"function f -d 'a description'", []string{"function", "f", "-d", "a description"}},
		{`echo "tab\there"`, []string{"echo", "tab\there"}},
		{`echo "say \"hi\""`, []string{"echo", `say "hi"`}},
		{`echo a\ b`, []string{"echo", "a b"}},
		{"echo 'x'\"y\"z", []string{"echo", "xyz"}},
		{"echo '' end", []string{"echo", "", "end"}},
		{"# just a comment", []string{}},
		{"set x 1 # trailing", []string{"set", "x", "1"}},
		{"echo a#b", []string{"echo", "a#b"}},
		{`echo $'a\tb' $HOME a$`, []string{"echo", "a\tb", "$HOME", "a$"}},
	} {
		words, err := Split(tc.line)
		require.NoError(t, err, tc.line)

		if diff := cmp.Diff(tc.words, words); diff != "" {
			t.Fatalf("Split(%q) mismatch (-want +got):\n%s", tc.line, diff)
		}
	}
}

func TestSplitCanonicalString(t *testing.T) {
	for _, s := range []string{"it's", "two\nlines", `back\slash`, "caf\u00e9", ""} {
		words, err := Split("-d " + adapted.CanonicalString(s))
		require.NoError(t, err)
		require.Equal(t, []string{"-d", s}, words)
	}
}

func TestSplitUnterminated(t *testing.T) {
	for _, line := range []string{"echo 'oops", `echo "oops`, `echo "oops\"`, `echo $'oops`} {
		_, err := Split(line)
		require.ErrorIs(t, err, ErrUnterminatedQuote, line)
	}
}
