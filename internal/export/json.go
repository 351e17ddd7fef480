// Package export moves data across the process boundary: backup
// documents to and from files, and measurement reports as CSV.
package export

import (
	"fmt"
	"os"

	"github.com/dfarias/obralog/internal/backup"
)

// WriteBackup serializes a backup document to path.
func WriteBackup(doc *backup.Document, path string) error {
	data, err := doc.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// ReadBackup parses a backup document from path. The envelope is
// validated; collection content is checked during restore.
func ReadBackup(path string) (*backup.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read backup file: %w", err)
	}
	return backup.Parse(data)
}
