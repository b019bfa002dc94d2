// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Present*/Print* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/abenson/pbbdash/internal/workflow"
)

// WriteSummaryToFile saves a workflow summary as indented JSON at the given
// path, creating parent directories as needed.
//
// Parameters:
//   - summary: The completed workflow summary.
//   - path: The destination file path.
//
// Returns:
//   - error: An error if the directory or file cannot be written.
func WriteSummaryToFile(summary workflow.Summary, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing summary to %s: %w", path, err)
	}
	return nil
}
