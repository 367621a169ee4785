package main

import (
	"embed"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicsFS embed.FS

func newDocsCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "docs [topic]",
		Short:     MsgDocsShort,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: topicNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				cmd.Println("Available topics:")
				for _, name := range topicNames() {
					cmd.Printf("  %s\n", name)
				}
				return nil
			}

			content, err := topicsFS.ReadFile("topics/" + args[0] + ".md")
			if err != nil {
				return fmt.Errorf("unknown topic %q, run 'dotbash docs' to list topics", args[0])
			}

			cmd.Print(renderMarkdown(string(content)))
			return nil
		},
	}
}

func topicNames() []string {
	entries, err := topicsFS.ReadDir("topics")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// renderMarkdown converts markdown to terminal output, falling back to the
// raw text when rendering is unavailable (e.g. no TTY)
func renderMarkdown(content string) string {
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return content
	}

	rendered, err := renderer.Render(content)
	if err != nil {
		return content
	}

	return rendered
}
