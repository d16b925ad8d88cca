package sheet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  [][]string
	}{
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "single row without terminator",
			input: "a,b,c",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "quoted field with embedded comma",
			input: `a,"b,c",d`,
			want:  [][]string{{"a", "b,c", "d"}},
		},
		{
			name:  "escaped quotes",
			input: `"he said ""hi"""`,
			want:  [][]string{{`he said "hi"`}},
		},
		{
			name:  "LF rows",
			input: "a,b\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "CRLF rows",
			input: "a,b\r\nc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "bare CR rows",
			input: "a,b\rc,d",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "trailing newline suppressed",
			input: "a,b\n",
			want:  [][]string{{"a", "b"}},
		},
		{
			name:  "blank lines between rows skipped",
			input: "a,b\n\n\r\nc,d\n\n",
			want:  [][]string{{"a", "b"}, {"c", "d"}},
		},
		{
			name:  "tab separated",
			input: "a\tb\tc",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "mixed separators",
			input: "a,b\tc",
			want:  [][]string{{"a", "b", "c"}},
		},
		{
			name:  "quoted newline stays in field",
			input: "\"line1\nline2\",x\ny,z",
			want:  [][]string{{"line1\nline2", "x"}, {"y", "z"}},
		},
		{
			name:  "empty fields kept",
			input: "a,,c\n,,",
			want:  [][]string{{"a", "", "c"}, {"", "", ""}},
		},
		{
			name:  "trailing comma yields empty last field",
			input: "a,b,\n",
			want:  [][]string{{"a", "b", ""}},
		},
		{
			name:  "unterminated quote swallows remainder",
			input: "a,\"b,c\nd,e",
			want:  [][]string{{"a", "b,c\nd,e"}},
		},
		{
			name:  "ragged rows preserved",
			input: "h1,h2,h3\n1\n1,2,3,4",
			want:  [][]string{{"h1", "h2", "h3"}, {"1"}, {"1", "2", "3", "4"}},
		},
		{
			name:  "multibyte text",
			input: "नाम,कक्षा\nअमित,१०",
			want:  [][]string{{"नाम", "कक्षा"}, {"अमित", "१०"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	matrices := [][][]string{
		{{"a"}},
		{{"Class", "Division", "Roll"}, {"10", "A", "1"}, {"9", "B", "22"}},
		{{"x y", "  padded  "}, {"1.5", "-3"}},
	}

	for _, m := range matrices {
		lines := make([]string, len(m))
		for i, row := range m {
			lines[i] = strings.Join(row, ",")
		}

		for _, eol := range []string{"\n", "\r\n"} {
			text := strings.Join(lines, eol)
			require.Equal(t, m, Parse(text), "eol %q", eol)
			require.Equal(t, m, Parse(text+eol), "trailing eol %q", eol)
		}
	}
}
