package main

import (
	"errors"
	"fmt"
	"log/slog"
	"munsite/internal/router"
	"munsite/internal/site"
	"munsite/internal/view"
	"strings"

	"github.com/spf13/cobra"
)

var renderPage bool

var renderCmd = &cobra.Command{
	Use:   "render ROUTE",
	Short: "Print the HTML for a route",
	Long:  "ROUTE is a hash fragment (#/topics, #/topic/slug) or a path (/board). Prints the main-content fragment, or the full document with --page.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().BoolVar(&renderPage, "page", false, "print the full HTML document")
}

func parseRoute(arg string) router.Route {
	if strings.HasPrefix(arg, "#") {
		return router.Resolve(arg)
	}
	return router.FromPath(arg)
}

func runRender(cmd *cobra.Command, args []string) error {
	style := view.HashLinks
	if renderPage {
		style = view.PathLinks
	}
	_, svc, cleanup, err := openService(style)
	defer cleanup()
	if err != nil {
		return err
	}

	route := parseRoute(args[0])
	page, err := svc.Render(cmd.Context(), route)
	if err != nil && !errors.Is(err, site.ErrTopicNotFound) {
		return err
	}
	if err != nil {
		slog.Warn("rendering not-found page", "slug", route.Slug)
	}

	out := page.Banner + page.Main
	if renderPage {
		if out, err = svc.Document(page); err != nil {
			return err
		}
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
