package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseServeAddr(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr bool
	}{
		{
			name: "default when no args",
			args: []string{"studybot", "serve"},
			want: "127.0.0.1:7860",
		},
		{
			name: "positional address",
			args: []string{"studybot", "serve", ":8080"},
			want: ":8080",
		},
		{
			name: "flag address",
			args: []string{"studybot", "serve", "--addr", "localhost:9000"},
			want: "localhost:9000",
		},
		{
			name:    "invalid address",
			args:    []string{"studybot", "serve", "not-an-addr"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			got, err := parseServeAddr("127.0.0.1:7860")
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
