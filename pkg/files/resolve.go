package files

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input is the closed set of things Resolve can turn into a local file path.
// The three variants are PathInput, NamedInput, and ReaderInput.
type Input interface {
	input()
}

// PathInput is a path that already exists on disk. Resolve returns it
// unchanged without checking that it exists.
type PathInput string

func (PathInput) input() {}

// NamedInput pairs a file name with its content. Byte and string content is
// written verbatim; any other value goes through the format-aware serializer
// keyed on the name's extension.
type NamedInput struct {
	Name    string
	Content interface{}
}

func (NamedInput) input() {}

// ReaderInput is an arbitrary readable source. When Name is empty and the
// reader is an *os.File, the file's base name is used; otherwise the name
// falls back to "upload".
type ReaderInput struct {
	Name   string
	Reader io.Reader
}

func (ReaderInput) input() {}

// Resolve turns in into a local file path under dir, ready for upload. An
// empty dir means a fresh temporary directory scoped to this call; Resolve
// never removes it.
func Resolve(in Input, dir string) (string, error) {
	switch v := in.(type) {
	case PathInput:
		return string(v), nil
	case NamedInput:
		return writeNamed(v, dir)
	case ReaderInput:
		name := v.Name
		if name == "" {
			if f, ok := v.Reader.(*os.File); ok {
				name = filepath.Base(f.Name())
			} else {
				name = "upload"
			}
		}
		content, err := io.ReadAll(v.Reader)
		if err != nil {
			return "", err
		}
		return writeNamed(NamedInput{Name: name, Content: content}, dir)
	default:
		return "", fmt.Errorf("unsupported input type %T", in)
	}
}

func writeNamed(in NamedInput, dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = os.MkdirTemp("", "crier-")
		if err != nil {
			return "", err
		}
	}
	path := filepath.Join(dir, in.Name)

	switch content := in.Content.(type) {
	case []byte:
		if err := os.WriteFile(path, content, 0o644); err != nil {
			return "", err
		}
	case string:
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", err
		}
	default:
		if err := serialize(path, content); err != nil {
			return "", err
		}
	}
	return path, nil
}

// serialize writes v to path in the format implied by the extension:
// JSON for .json, YAML for .yaml/.yml, and fmt's %v rendering otherwise.
func serialize(path string, v interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		defer enc.Close()
		return enc.Encode(v)
	default:
		_, err := fmt.Fprintf(f, "%v", v)
		return err
	}
}
