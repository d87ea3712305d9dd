package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Kinds(t *testing.T) {
	tests := []struct {
		kind string
		want string
	}{
		{kind: "", want: "msg=hello"},
		{kind: KindText, want: "msg=hello"},
		{kind: KindJSON, want: `"msg":"hello"`},
		{kind: KindZap, want: `"msg":"hello"`},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			var buf bytes.Buffer
			l, err := New(tt.kind, "info", &buf)
			require.NoError(t, err)

			l.Info(context.Background(), "hello", "k", "v")
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(KindZap, "warn", &buf)
	require.NoError(t, err)

	l.Info(context.Background(), "skipped")
	l.Warn(context.Background(), "kept")

	var line map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line))
	assert.Equal(t, "kept", line["msg"])
}

func TestNew_Errors(t *testing.T) {
	_, err := New("xml", "", nil)
	require.ErrorIs(t, err, ErrUnknownKind)

	_, err = New(KindText, "loud", nil)
	require.Error(t, err)
}
