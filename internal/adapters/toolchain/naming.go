package toolchain

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
)

// naming holds the file name conventions of a toolchain.
type naming struct {
	object        string
	staticPrefix  string
	staticExt     string
	dynamicPrefix string
	dynamicExt    string
	appExt        string
}

var (
	unixNaming = naming{
		object:        ".o",
		staticPrefix:  "lib",
		staticExt:     ".a",
		dynamicPrefix: "lib",
		dynamicExt:    ".so",
	}
	appleNaming = naming{
		object:        ".o",
		staticPrefix:  "lib",
		staticExt:     ".a",
		dynamicPrefix: "lib",
		dynamicExt:    ".dylib",
	}
	windowsNaming = naming{
		object:     ".obj",
		staticExt:  ".lib",
		dynamicExt: ".dll",
		appExt:     ".exe",
	}
)

func (n naming) prefix(bt domain.BinaryType) string {
	switch bt {
	case domain.BinaryStaticLibrary:
		return n.staticPrefix
	case domain.BinaryDynamicLibrary:
		return n.dynamicPrefix
	default:
		return ""
	}
}

func (n naming) extension(bt domain.BinaryType) string {
	switch bt {
	case domain.BinaryStaticLibrary:
		return n.staticExt
	case domain.BinaryDynamicLibrary:
		return n.dynamicExt
	case domain.BinaryApplication:
		return n.appExt
	default:
		return ""
	}
}

var (
	cExtensions    = []string{".c", ".i"}
	cxxExtensions  = []string{".cpp", ".cc", ".cxx", ".c++", ".ii"}
	objcExtensions = []string{".m", ".mi"}
	objcxxExts     = []string{".mm", ".mii"}
	shaderExts     = []string{".metal"}
)

// language is the source language clang infers from a file extension.
type language int

const (
	langC language = iota
	langCXX
	langObjC
	langObjCXX
)

func languageOf(source string) language {
	ext := strings.ToLower(filepath.Ext(source))
	switch {
	case slices.Contains(cExtensions, ext):
		return langC
	case slices.Contains(objcExtensions, ext):
		return langObjC
	case slices.Contains(objcxxExts, ext):
		return langObjCXX
	default:
		return langCXX
	}
}

func (l language) isCXX() bool {
	return l == langCXX || l == langObjCXX
}

func (l language) isObjC() bool {
	return l == langObjC || l == langObjCXX
}

// compilerPair derives the C and C++ drivers from a configured compiler name.
// "gcc" and "g++" select the GNU pair, "clang" and "clang++" the LLVM pair;
// any other value is used for both languages.
func compilerPair(name string) (cc, cxx string) {
	dir, base := filepath.Split(name)
	switch base {
	case "gcc", "g++":
		return dir + "gcc", dir + "g++"
	case "clang", "clang++":
		return dir + "clang", dir + "clang++"
	default:
		return name, name
	}
}
