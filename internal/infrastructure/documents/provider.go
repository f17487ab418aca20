// Package documents resolves document ids against a notes directory on
// disk. The workspace engine treats document ids as opaque; this provider
// is only consulted for display titles.
package documents

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bnema/inkpad/internal/application/port"
	"github.com/bnema/inkpad/internal/domain/entity"
	"github.com/bnema/inkpad/internal/logging"
)

const markdownExt = ".md"

// FilesystemProvider resolves document ids to markdown files under a notes
// directory. A document id is the file path relative to that directory.
type FilesystemProvider struct {
	notesDir string
}

var _ port.DocumentProvider = (*FilesystemProvider)(nil)

// NewFilesystemProvider creates a provider rooted at notesDir.
func NewFilesystemProvider(notesDir string) *FilesystemProvider {
	return &FilesystemProvider{notesDir: notesDir}
}

// Title returns a display title for the document: the file name without its
// markdown extension. The second return reports whether the file exists.
func (p *FilesystemProvider) Title(ctx context.Context, id entity.DocumentID) (string, bool) {
	rel := filepath.Clean(string(id))
	if rel == "." || strings.HasPrefix(rel, "..") {
		return "", false
	}

	title := strings.TrimSuffix(filepath.Base(rel), markdownExt)

	path := filepath.Join(p.notesDir, rel)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		logging.FromContext(ctx).Debug().
			Str("document_id", string(id)).
			Msg("document not found on disk")
		return title, false
	}

	return title, true
}
