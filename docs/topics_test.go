package docs

import (
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

func TestReadmeListsEveryTopic(t *testing.T) {
	readme, err := Topic(Readme)
	if err != nil {
		t.Fatal(err)
	}
	topicRegex := regexp.MustCompile(`(?m)^\*\s+([^:]+):.*$`)
	var listed []string
	for _, m := range topicRegex.FindAllStringSubmatch(readme, -1) {
		listed = append(listed, strings.TrimSpace(m[1]))
	}
	slices.Sort(listed)

	if got := Names(); !slices.Equal(got, listed) {
		t.Errorf("Names() = %v, readme lists %v", got, listed)
	}
}

func TestTopics(t *testing.T) {
	for _, name := range append(Names(), Readme) {
		t.Run(name, func(t *testing.T) {
			content, err := Topic(name)
			if err != nil {
				t.Fatalf("Topic(%q) unexpected error: %v", name, err)
			}
			source := []byte(content)
			root := goldmark.DefaultParser().Parse(text.NewReader(source))

			h, ok := root.FirstChild().(*ast.Heading)
			if !ok || h.Level != 1 {
				t.Errorf("topic %q does not start with a title", name)
			}

			// every example runs plb
			ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
				fcb, ok := n.(*ast.FencedCodeBlock)
				if !entering || !ok {
					return ast.WalkContinue, nil
				}
				for i := 0; i < fcb.Lines().Len(); i++ {
					line := fcb.Lines().At(i)
					cmd := strings.TrimSpace(string(line.Value(source)))
					if !strings.HasPrefix(cmd, "plb ") && !strings.HasPrefix(cmd, "echo ") {
						t.Errorf("topic %q: unexpected example %q", name, cmd)
					}
				}
				return ast.WalkContinue, nil
			})
		})
	}
}

func TestTopics_Star(t *testing.T) {
	all, err := Topics("*")
	if err != nil {
		t.Fatal(err)
	}
	for _, title := range []string{"# Lots", "# Daily balance", "# SBI exports", "# Configuration"} {
		if !strings.Contains(all, title) {
			t.Errorf("Topics(\"*\") does not contain %q", title)
		}
	}
	if strings.Contains(all, "# plb") {
		t.Error("Topics(\"*\") contains the readme")
	}
	if _, err := Topics("nope"); err == nil {
		t.Error("Topics(\"nope\") expected an error")
	}
}
