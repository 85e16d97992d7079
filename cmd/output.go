package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/charmbracelet/glamour"
)

// printMarkdown renders the markdown document for the terminal on w. The raw
// markdown is printed if it cannot be rendered.
func printMarkdown(w io.Writer, doc string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		fmt.Fprint(w, doc)
		return
	}
	out, err := r.Render(doc)
	if err != nil {
		fmt.Fprint(w, doc)
		return
	}
	fmt.Fprint(w, out)
}

// selectJSON writes on w the part of v's JSON document selected by the json
// path.
func selectJSON(w io.Writer, path string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return err
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return fmt.Errorf("error selecting %q: %w", path, err)
	}
	// jsonpath returns a list of 1 answer for a single answer, keep the answer.
	if jlist, ok := jval.([]any); ok && len(jlist) == 1 {
		jval = jlist[0]
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(jval)
}

// writeFile creates the file and writes it with 'write'.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}
