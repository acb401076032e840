package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

// ErrUnknownPlaceholder is returned when a fragment uses a placeholder name
// outside the reserved set.
var ErrUnknownPlaceholder = errors.New("tags: unknown placeholder")

// Store holds the fixed fragments used to render personas. A Store is
// immutable once built.
type Store struct {
	header string
	row    string
	footer string
	form   string
}

// NewStore builds a store from raw fragments after checking that they only
// use recognised placeholders.
func NewStore(header, row, footer, form string) (*Store, error) {
	for name, fragment := range map[string]string{
		HeaderFile: header,
		RowFile:    row,
		FooterFile: footer,
		FormFile:   form,
	} {
		if err := checkPlaceholders(name, fragment); err != nil {
			return nil, err
		}
	}
	return &Store{header: header, row: row, footer: footer, form: form}, nil
}

// LoadStore reads the four fragment files from fsys.
func LoadStore(fsys fs.FS) (*Store, error) {
	if fsys == nil {
		return nil, errors.New("tags: fragment filesystem is nil")
	}
	read := func(name string) (string, error) {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return "", fmt.Errorf("tags: read %s: %w", name, err)
		}
		return string(data), nil
	}

	header, err := read(HeaderFile)
	if err != nil {
		return nil, err
	}
	row, err := read(RowFile)
	if err != nil {
		return nil, err
	}
	footer, err := read(FooterFile)
	if err != nil {
		return nil, err
	}
	form, err := read(FormFile)
	if err != nil {
		return nil, err
	}
	return NewStore(header, row, footer, form)
}

var (
	defaultOnce  sync.Once
	defaultStore *Store
	defaultErr   error
)

// DefaultStore returns the store built from the embedded fragments.
func DefaultStore() *Store {
	defaultOnce.Do(func() {
		defaultStore, defaultErr = LoadStore(TemplatesFS())
	})
	if defaultErr != nil {
		// The embedded bundle is part of the binary.
		panic(defaultErr)
	}
	return defaultStore
}

// Header returns the table header fragment.
func (s *Store) Header() string { return s.header }

// Row returns the table row fragment.
func (s *Store) Row() string { return s.row }

// Footer returns the table footer fragment.
func (s *Store) Footer() string { return s.footer }

// Form returns the editable form fragment.
func (s *Store) Form() string { return s.form }

func checkPlaceholders(name, fragment string) error {
	var unknown []string
	for _, p := range Placeholders(fragment) {
		if !Recognized(p) {
			unknown = append(unknown, p)
		}
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrUnknownPlaceholder, name, strings.Join(unknown, ", "))
	}
	return nil
}
