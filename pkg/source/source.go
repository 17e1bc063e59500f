// Package source loads ABAP source units from local files and directories or
// from any storage URL the afs layer understands, such as mem:// or file://.
package source

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/storage"
	"github.com/viant/afs/url"

	"github.com/nsxbet/abap-reviewer/pkg/types"
)

// DefaultExtensions are the file extensions picked up when walking a directory.
var DefaultExtensions = []string{".abap", ".json", ".txt"}

// Loader reads source units through an afs service.
type Loader struct {
	fs         afs.Service
	extensions []string
}

// NewLoader creates a loader backed by the default afs service.
func NewLoader() *Loader {
	return &Loader{
		fs:         afs.New(),
		extensions: DefaultExtensions,
	}
}

// WithExtensions restricts directory walks to the given extensions.
// The leading dot is optional and case is ignored.
func (l *Loader) WithExtensions(extensions ...string) *Loader {
	l.extensions = make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.extensions = append(l.extensions, ext)
	}
	return l
}

// Load returns the units held at location. A directory is walked
// recursively and its matching files are loaded in lexical URL order.
func (l *Loader) Load(ctx context.Context, location string) ([]*types.SourceUnit, error) {
	object, err := l.fs.Object(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open: %s", location)
	}
	if !object.IsDir() {
		return l.loadFile(ctx, location)
	}

	files, err := l.listFiles(ctx, location)
	if err != nil {
		return nil, err
	}
	var units []*types.SourceUnit
	for _, file := range files {
		loaded, err := l.loadFile(ctx, file)
		if err != nil {
			return nil, err
		}
		units = append(units, loaded...)
	}
	return units, nil
}

func (l *Loader) listFiles(ctx context.Context, root string) ([]string, error) {
	var files []string
	var visitor storage.OnVisit = func(ctx context.Context, baseURL, parent string, info os.FileInfo, _ io.Reader) (bool, error) {
		if info.IsDir() {
			return true, nil
		}
		if l.matches(info.Name()) {
			files = append(files, url.Join(baseURL, path.Join(parent, info.Name())))
		}
		return true, nil
	}
	if err := l.fs.Walk(ctx, root, visitor); err != nil {
		return nil, errors.Wrapf(err, "failed to walk: %s", root)
	}
	slices.Sort(files)
	slog.Debug("Walked source directory", "root", root, "files", len(files))
	return files, nil
}

func (l *Loader) matches(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return slices.Contains(l.extensions, ext)
}

func (l *Loader) loadFile(ctx context.Context, location string) ([]*types.SourceUnit, error) {
	data, err := l.fs.DownloadWithURL(ctx, location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file: %s", location)
	}
	units, err := Parse(path.Base(location), data)
	if err != nil {
		return nil, errors.Wrap(err, location)
	}
	return units, nil
}

// Parse decodes the units of one file. JSON documents (a ".json" name or a
// body starting with '{' or '[') hold one unit or an array of units; anything
// else is raw ABAP scanned as a single PROG unit named after the file, with
// its first line at line 1.
//
// Findings present in the input are dropped.
func Parse(name string, data []byte) ([]*types.SourceUnit, error) {
	trimmed := bytes.TrimSpace(data)
	isJSON := strings.EqualFold(path.Ext(name), ".json") ||
		bytes.HasPrefix(trimmed, []byte("[")) || bytes.HasPrefix(trimmed, []byte("{"))
	if !isJSON {
		program := strings.ToUpper(strings.TrimSuffix(name, path.Ext(name)))
		return []*types.SourceUnit{{
			ProgramName: program,
			IncludeName: program,
			Kind:        "PROG",
			Code:        string(data),
		}}, nil
	}

	var units []*types.SourceUnit
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &units); err != nil {
			return nil, errors.Wrap(err, "failed to parse units")
		}
	} else {
		var unit types.SourceUnit
		if err := json.Unmarshal(trimmed, &unit); err != nil {
			return nil, errors.Wrap(err, "failed to parse unit")
		}
		units = append(units, &unit)
	}
	for i, u := range units {
		if u == nil {
			return nil, errors.Errorf("unit #%d is null", i)
		}
		u.Findings = nil
	}
	return units, nil
}
