package shell

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name      string
		sysEnv    []string
		overrides []string
		expected  []string
	}{
		{
			name:     "allowed host variables",
			sysEnv:   []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
			expected: []string{"USER=test", "PATH=/bin", "HOME=/home/test"},
		},
		{
			name:     "filtered host variables",
			sysEnv:   []string{"USER=test", "SSH_AUTH_SOCK=/tmp/ssh", "SECRET=key"},
			expected: []string{"USER=test"},
		},
		{
			name:     "windows spelling",
			sysEnv:   []string{"Path=C:\\bin", "SystemRoot=C:\\Windows"},
			expected: []string{"Path=C:\\bin", "SystemRoot=C:\\Windows"},
		},
		{
			name:      "overrides win",
			sysEnv:    []string{"USER=test", "PATH=/bin"},
			overrides: []string{"PATH=/sdk/bin", "SDKROOT=/sdk"},
			expected:  []string{"USER=test", "PATH=/sdk/bin", "SDKROOT=/sdk"},
		},
		{
			name:      "override replaces differently cased key",
			sysEnv:    []string{"Path=C:\\bin"},
			overrides: []string{"PATH=C:\\llvm\\bin"},
			expected:  []string{"PATH=C:\\llvm\\bin"},
		},
		{
			name:     "malformed entries",
			sysEnv:   []string{"PATH", "USER=test"},
			expected: []string{"USER=test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveEnvironment(tt.sysEnv, tt.overrides)
			assert.ElementsMatch(t, tt.expected, got)
		})
	}
}

func TestLookPath_EmptyPATH(t *testing.T) {
	_, err := lookPath("echo", []string{"USER=test"})
	assert.Error(t, err)
}

func TestLookPath_ExecutableNotFound(t *testing.T) {
	_, err := lookPath("nonexistent-command", []string{"PATH=/nonexistent/dir"})
	assert.Error(t, err)
}

func TestFindExecutable_Directory(t *testing.T) {
	assert.Error(t, findExecutable(t.TempDir()))
}

func TestFindExecutable_NonExistent(t *testing.T) {
	assert.Error(t, findExecutable("/nonexistent/file"))
}
