package excel

import (
	"bytes"
	"fmt"
	"io/fs"
	"path"

	"github.com/xuri/excelize/v2"

	"evidencija/internal/errors"
)

// ContentTypeXLSX is the MIME type of every produced document
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// TemplateStore resolves logical document names to template bytes and their
// parsed layouts. Layouts are parsed once; template bytes are read on every
// Open so a request never shares a workbook with another.
type TemplateStore struct {
	fsys    fs.FS
	layouts map[string]*Layout
}

// NewTemplateStore parses <name>.yaml for every name and checks that the
// referenced template file is readable.
func NewTemplateStore(fsys fs.FS, names ...string) (*TemplateStore, error) {
	s := &TemplateStore{fsys: fsys, layouts: make(map[string]*Layout, len(names))}
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name+".yaml")
		if err != nil {
			return nil, errors.TemplateError(name, err)
		}
		layout, err := ParseLayout(data)
		if err != nil {
			return nil, errors.TemplateError(name, err)
		}
		if _, err := fs.Stat(fsys, path.Clean(layout.Template)); err != nil {
			return nil, errors.TemplateError(name, err)
		}
		s.layouts[name] = layout
	}
	return s, nil
}

// Layout returns the parsed layout of a document type
func (s *TemplateStore) Layout(name string) (*Layout, error) {
	l, ok := s.layouts[name]
	if !ok {
		return nil, errors.TemplateError(name, fmt.Errorf("no layout registered"))
	}
	return l, nil
}

// Open loads a fresh in-memory workbook for the named document type
func (s *TemplateStore) Open(name string) (*Workbook, error) {
	layout, err := s.Layout(name)
	if err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(s.fsys, path.Clean(layout.Template))
	if err != nil {
		return nil, errors.TemplateError(name, err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, errors.TemplateError(name, err)
	}
	sheet, err := NewSheet(f, layout.Sheet)
	if err != nil {
		f.Close()
		return nil, errors.TemplateError(name, err)
	}
	return &Workbook{layout: layout, sheet: sheet}, nil
}
