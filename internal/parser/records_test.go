package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitRecords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected [][]string
	}{
		{
			name:     "simple rows",
			input:    "a,b,c\n1,2,3\n",
			expected: [][]string{{"a", "b", "c"}, {"1", "2", "3"}},
		},
		{
			name:     "last record without newline",
			input:    "a,b\n1,2",
			expected: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "crlf and bare cr",
			input:    "a,b\r\n1,2\r3,4",
			expected: [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}},
		},
		{
			name:     "quoted comma and newline stay in one field",
			input:    "date,desc,amt\n01/05,\"JOE'S, INC\nNEW YORK\",-5.00\n",
			expected: [][]string{{"date", "desc", "amt"}, {"01/05", "JOE'S, INC NEW YORK", "-5.00"}},
		},
		{
			name:     "quoted crlf becomes one space",
			input:    "\"A\r\nB\",1",
			expected: [][]string{{"A B", "1"}},
		},
		{
			name:     "escaped quote",
			input:    `"say ""hi""",x`,
			expected: [][]string{{`say "hi"`, "x"}},
		},
		{
			name:     "fields are trimmed",
			input:    "  a  , b \n",
			expected: [][]string{{"a", "b"}},
		},
		{
			name:     "empty rows dropped",
			input:    "a,b\n\n,,\n1,2\n",
			expected: [][]string{{"a", "b"}, {"1", "2"}},
		},
		{
			name:     "trailing empty field kept",
			input:    "a,b,\n",
			expected: [][]string{{"a", "b", ""}},
		},
		{
			name:     "empty input",
			input:    "",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitRecords(tt.input))
		})
	}
}
