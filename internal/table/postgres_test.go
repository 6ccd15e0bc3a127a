package table

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_PostgresWithoutDatabase(t *testing.T) {
	r := NewResolver(NewCSVLoader(DelimiterAuto, 0), nil)
	_, err := r.Load(context.Background(), "pg:public.users")
	assert.ErrorIs(t, err, ErrNoDatabase)

	_, err = NewPostgresLoader(nil).Load(context.Background(), "pg:users")
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{input: "users", want: `"users"`},
		{input: "public.users", want: `"public"."users"`},
		{input: " sales.Orders ", want: `"sales"."Orders"`},
		{input: "", wantErr: true},
		{input: "a.b.c", wantErr: true},
		{input: "a.", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			ident, err := parseIdentifier(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ident.Sanitize())
		})
	}
}
