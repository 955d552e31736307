package idgen

import (
	"testing"

	"github.com/ajmorgan/taskgraph/internal/engineerr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTaskIdFlexible(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ParsedID
		wantErr engineerr.Kind
	}{
		{name: "bare integer", input: "42", want: ParsedID{SurrogateID: 42}},
		{name: "zero padded integer", input: "007", want: ParsedID{SurrogateID: 7}},
		{name: "slug and number", input: "auth:001", want: ParsedID{Slug: "auth", Number: 1}},
		{name: "slug and bare number", input: "auth:42", want: ParsedID{Slug: "auth", Number: 42}},
		{name: "empty", input: "", wantErr: engineerr.InvalidTaskId},
		{name: "empty slug", input: ":42", wantErr: engineerr.InvalidTaskId},
		{name: "empty number", input: "auth:", wantErr: engineerr.InvalidTaskId},
		{name: "multiple colons", input: "auth:1:2", wantErr: engineerr.InvalidTaskId},
		{name: "non-digit surrogate", input: "abc", wantErr: engineerr.InvalidCharacter},
		{name: "non-digit number", input: "auth:abc", wantErr: engineerr.InvalidCharacter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskIdFlexible(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				kind, ok := engineerr.KindOf(err)
				require.True(t, ok)
				assert.Equal(t, tt.wantErr, kind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
