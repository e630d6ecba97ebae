package depfile_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/adapters/depfile"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{
			name: "single line",
			in:   "a.o: a.cpp a.h\n",
			want: []string{"a.cpp", "a.h"},
		},
		{
			name: "continuation lines",
			in:   "obj/a.o: /src/a.cpp \\\n  /src/a.h \\\n  /src/b.h\n",
			want: []string{"/src/a.cpp", "/src/a.h", "/src/b.h"},
		},
		{
			name: "escaped spaces and dollars",
			in:   "a.o: My\\ Sources/a.cpp cost$$.h\n",
			want: []string{"My Sources/a.cpp", "cost$.h"},
		},
		{
			name: "phony targets are ignored",
			in:   "a.o: a.cpp a.h\n\na.h:\n",
			want: []string{"a.cpp", "a.h"},
		},
		{
			name: "windows drive letters",
			in:   "C:/obj/a.obj: C:/src/a.cpp C:/src/a.h\r\n",
			want: []string{"C:/src/a.cpp", "C:/src/a.h"},
		},
		{
			name: "detached colon",
			in:   "a.o : a.cpp\n",
			want: []string{"a.cpp"},
		},
		{
			name: "empty",
			in:   "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := depfile.Parse([]byte(tt.in))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReader_MissingRecord(t *testing.T) {
	t.Parallel()
	got, err := depfile.NewReader().Read(filepath.Join(t.TempDir(), "missing.d"))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestWriteThenRead(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "obj", "a.obj.d")
	prereqs := []string{"/src/a.cpp", "/src/with space.h", "/src/price$.h"}

	require.NoError(t, depfile.Write(path, "/obj/a.obj", prereqs))

	got, err := depfile.NewReader().Read(path)
	require.NoError(t, err)
	assert.Equal(t, prereqs, got)
}
