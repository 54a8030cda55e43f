package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/bassista/mermaider/internal/logger"
	"github.com/bassista/mermaider/internal/snippet"
	"github.com/spf13/cobra"
)

// usageArgs wraps a cobra arg validator so its failures map to errUsage.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := fn(cmd, args); err != nil {
			return fmt.Errorf("%w: %v", errUsage, err)
		}
		return nil
	}
}

func newSaveCmd(c *cli) *cobra.Command {
	var createdAt int64
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "save [file]",
		Short: "Save a snippet read from a file or stdin",
		Long: `Save a snippet read from a file, or from stdin when no file (or "-") is given.
The snippet type is detected from the code and the id is printed.`,
		Args: usageArgs(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := c.readInput(args)
			if err != nil {
				return err
			}

			s, err := c.app.Snippets.SaveSnippet(cmd.Context(), code, createdAt)
			if err != nil {
				return err
			}
			logger.WithComponent("cli").Debugf("saved snippet %s (%s)", s.ID, s.Type)

			if asJSON {
				return c.printJSON(s)
			}
			c.printf("%s\n", s.ID)
			return nil
		},
	}
	cmd.Flags().Int64Var(&createdAt, "created-at", 0, "creation time in Unix milliseconds (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the saved snippet as JSON")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List saved snippets, newest first",
		Args:    usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			snippets, err := c.app.Snippets.GetAllSnippets(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return c.printJSON(snippets)
			}
			c.printTable(snippets)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print snippets as a JSON array")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print the code of a snippet",
		Args:  usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.app.Snippet(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return c.printJSON(s)
			}
			c.printf("%s\n", s.Code)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the whole snippet as JSON")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a snippet (unknown ids are ignored)",
		Args:    usageArgs(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Snippets.DeleteSnippet(cmd.Context(), args[0])
		},
	}
}

func newClearCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete every snippet",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Snippets.ClearAllSnippets(cmd.Context())
		},
	}
}

func newDetectCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:         "detect [file]",
		Short:       "Print the detected type of a snippet without saving it",
		Args:        usageArgs(cobra.MaximumNArgs(1)),
		Annotations: map[string]string{annotationNoStore: "true"},
		RunE: func(_ *cobra.Command, args []string) error {
			code, err := c.readInput(args)
			if err != nil {
				return err
			}
			c.printf("%s\n", snippet.DetectSnippetType(code))
			return nil
		},
	}
}

func newWatchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the snippet list every time the store changes",
		Args:  usageArgs(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			render := func() {
				snippets, err := c.app.Snippets.GetAllSnippets(ctx)
				if err != nil {
					logger.WithComponent("cli").Errorf("list snippets: %v", err)
					return
				}
				c.printTable(snippets)
			}

			if err := c.app.StartWatchers(render); err != nil {
				return fmt.Errorf("cannot start watcher: %w", err)
			}
			render()

			<-ctx.Done()
			return nil
		},
	}
}

func (c *cli) printJSON(v interface{}) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	c.printf("%s", buf.String())
	return nil
}

func (c *cli) printTable(snippets []snippet.Snippet) {
	if len(snippets) == 0 {
		c.printf("No snippets saved.\n")
		return
	}

	var buf bytes.Buffer
	tw := tabwriter.NewWriter(&buf, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tTITLE")
	for _, s := range snippets {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.ID, s.Type, s.Title)
	}
	tw.Flush()
	c.printf("%s", buf.String())
}
