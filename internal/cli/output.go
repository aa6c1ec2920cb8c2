package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/hollySizzle/redmine-epic-ladder-sub005/internal/hierarchy"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (app *App) isTerminal(w io.Writer) bool {
	if app.IsTerminal != nil {
		return app.IsTerminal(w)
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// FormatError renders err for the terminal. Hierarchy violations carry a
// remediation hint.
func FormatError(err error) string {
	var herr *hierarchy.Error
	if errors.As(err, &herr) {
		return herr.UserMessage()
	}
	return fmt.Sprintf("Error: %v", err)
}
