package wiring_test

import (
	"go/parser"
	"go/token"
	"io/fs"
	"path"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/grindlemire/graft"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const modulePath = "go.trai.ch/forge/"

func TestGraftDependencies(t *testing.T) {
	graft.AssertDepsValid(t, "../../internal")
}

// Every package registering a node must be imported here, or
// graft.ExecuteFor fails at startup with an unknown node.
func TestWiring_ImportsEveryNodePackage(t *testing.T) {
	file, err := parser.ParseFile(token.NewFileSet(), "wiring.go", nil, parser.ImportsOnly)
	require.NoError(t, err)

	imported := make(map[string]bool, len(file.Imports))
	for _, spec := range file.Imports {
		p, err := strconv.Unquote(spec.Path.Value)
		require.NoError(t, err)
		imported[p] = true
	}

	root, err := filepath.Abs(filepath.Join("..", ".."))
	require.NoError(t, err)

	var nodePackages []string
	err = filepath.WalkDir(filepath.Join(root, "internal"), func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "testdata" {
			return filepath.SkipDir
		}
		if !d.IsDir() && d.Name() == "node.go" {
			rel, err := filepath.Rel(root, filepath.Dir(p))
			if err != nil {
				return err
			}
			nodePackages = append(nodePackages, modulePath+path.Clean(filepath.ToSlash(rel)))
		}
		return nil
	})
	require.NoError(t, err)
	require.NotEmpty(t, nodePackages)

	for _, pkg := range nodePackages {
		assert.True(t, imported[pkg], "%s registers a node but is not imported by wiring", pkg)
	}
}
