package types

import (
	"path/filepath"
	"strings"
)

// FileRecord is a script file discovered during a source tree walk.
type FileRecord struct {
	Path string `json:"path"` // Absolute path of the source file
}

// Name returns the base name of the file
func (r FileRecord) Name() string {
	return filepath.Base(r.Path)
}

// Stem returns the base name without its extension
func (r FileRecord) Stem() string {
	name := r.Name()
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// InstalledName returns the name the script carries after installation:
// the stem with every underscore replaced by a dot, so "i_dr_import.py"
// installs as "i.dr.import".
func (r FileRecord) InstalledName() string {
	return strings.ReplaceAll(r.Stem(), "_", ".")
}
