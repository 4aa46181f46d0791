package artifact

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"sigs.k8s.io/kustomize/kyaml/filesys"

	"github.com/darkowlzz/expression-toolkit/generator"
)

const (
	// DefaultFormulaFile is the default name of the formula file.
	DefaultFormulaFile = "result.txt"
	// DefaultImagePattern is the default name pattern of the tree images.
	// The verb is replaced by the depth.
	DefaultImagePattern = "tree%d.png"
)

// Store is a wrapper around the kustomize filesys.FileSystem with methods to
// write the run artifacts under a base directory.
type Store struct {
	filesys.FileSystem
	baseDir string
}

// NewStore returns a Store writing under baseDir of the given filesystem.
func NewStore(fs filesys.FileSystem, baseDir string) *Store {
	return &Store{FileSystem: fs, baseDir: baseDir}
}

// NewDiskStore returns a Store backed by the disk.
func NewDiskStore(baseDir string) *Store {
	return NewStore(filesys.MakeFsOnDisk(), baseDir)
}

// NewMemoryStore returns a Store backed by an in-memory filesystem.
func NewMemoryStore(baseDir string) *Store {
	return NewStore(filesys.MakeFsInMemory(), baseDir)
}

// Path returns the path of an artifact name in the store.
func (s *Store) Path(name string) string {
	if s.baseDir == "" {
		return name
	}
	return filepath.Join(s.baseDir, name)
}

// CreateIfNotExists creates the base directory if not exists.
func (s *Store) CreateIfNotExists() error {
	if s.baseDir == "" || s.Exists(s.baseDir) {
		return nil
	}

	if err := s.MkdirAll(s.baseDir); err != nil {
		return fmt.Errorf("failed to create directory: %q, error: %v", s.baseDir, err)
	}

	return nil
}

// Create creates or truncates an artifact and returns it for writing.
func (s *Store) Create(name string) (io.WriteCloser, error) {
	if err := s.CreateIfNotExists(); err != nil {
		return nil, err
	}
	f, err := s.FileSystem.Create(s.Path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create artifact %q", name)
	}
	return f, nil
}

// Read returns the content of an artifact.
func (s *Store) Read(name string) ([]byte, error) {
	b, err := s.ReadFile(s.Path(name))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read artifact %q", name)
	}
	return b, nil
}

// WriteFormulas writes the formula pairs into the named file, replacing any
// previous content. Every pair is written as two lines:
//
//	x1{depth} = {x1}
//	x2{depth} = {x2}
func (s *Store) WriteFormulas(name string, pairs []generator.Pair) error {
	if err := s.CreateIfNotExists(); err != nil {
		return err
	}

	var b strings.Builder
	for _, p := range pairs {
		fmt.Fprintf(&b, "x1%d = %s\n", p.Depth, p.X1)
		fmt.Fprintf(&b, "x2%d = %s\n", p.Depth, p.X2)
	}

	if err := s.WriteFile(s.Path(name), []byte(b.String())); err != nil {
		return errors.Wrapf(err, "failed to write formulas into %q", name)
	}
	return nil
}

// ImageName returns the name of the tree image of a depth for the given
// pattern.
func ImageName(pattern string, depth int) string {
	if pattern == "" {
		pattern = DefaultImagePattern
	}
	return fmt.Sprintf(pattern, depth)
}

// CheckImagePattern returns an error if the pattern doesn't give a distinct
// name per depth. An empty pattern is the default one.
func CheckImagePattern(pattern string) error {
	if pattern == "" {
		return nil
	}
	first, second := fmt.Sprintf(pattern, 0), fmt.Sprintf(pattern, 1)
	if strings.Contains(first, "%!") || first == second {
		return fmt.Errorf("image pattern %q needs a single integer verb for the depth", pattern)
	}
	return nil
}
