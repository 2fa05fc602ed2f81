package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tasksync/tasksync/internal/errors"
)

// printJSON writes v as indented JSON followed by a newline.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// RenderError writes a user-facing description of err: the mapped message,
// and a suggested action when one is known.
func RenderError(w io.Writer, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(w, "Error: %s\n", errors.UserMessage(err))
	if action := errors.Actionable(err); action != "" {
		fmt.Fprintf(w, "  %s\n", action)
	}
}
