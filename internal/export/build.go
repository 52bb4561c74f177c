package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"munsite/internal/calendar"
	"munsite/internal/meeting"
	"munsite/internal/router"
	"munsite/internal/site"
	"munsite/internal/view"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Result lists the files written by Build, relative to the output directory.
type Result struct {
	Files   []string
	Skipped []string
}

// Build renders every route into outDir as static pages, plus the hash-router
// fragments and the meeting calendar. Any load failure aborts the build.
func Build(ctx context.Context, svc *site.Service, outDir string) (*Result, error) {
	topics, err := svc.Loader().Topics(ctx)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	routes := []router.Route{
		{Kind: router.Home},
		{Kind: router.Topics},
		{Kind: router.Board},
	}
	res := &Result{}
	for _, t := range topics {
		slug := t.Key()
		if !safeSlug(slug) {
			slog.Warn("skipping topic with unsafe slug", "slug", slug)
			res.Skipped = append(res.Skipped, slug)
			continue
		}
		routes = append(routes, router.TopicRoute(slug))
	}

	fragments := site.NewService(svc.Loader(), view.New(view.HashLinks), svc.Location())

	for _, route := range routes {
		page, err := svc.Render(ctx, route)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		doc, err := svc.Document(page)
		if err != nil {
			return nil, fmt.Errorf("export %s: %w", route.Path(), err)
		}
		if err := res.write(outDir, pagePath(route), doc); err != nil {
			return nil, err
		}

		frag, err := fragments.Render(ctx, route)
		if err != nil {
			return nil, fmt.Errorf("export: %w", err)
		}
		if err := res.write(outDir, fragmentPath(route), frag.Banner+frag.Main); err != nil {
			return nil, err
		}
	}

	if err := buildCalendar(ctx, svc, outDir, res); err != nil {
		return nil, err
	}

	slog.Info("export finished", "dir", outDir, "files", len(res.Files))
	return res, nil
}

func buildCalendar(ctx context.Context, svc *site.Service, outDir string, res *Result) error {
	data, err := svc.LoadHome(ctx)
	if err != nil {
		return fmt.Errorf("export calendar: %w", err)
	}

	var buf bytes.Buffer
	err = calendar.Write(&buf, data.Meetings, meeting.NewPolicy(data.Site), svc.Location(), time.Now())
	if errors.Is(err, calendar.ErrEmpty) {
		slog.Info("no meetings to export, skipping calendar")
		res.Skipped = append(res.Skipped, "meetings.ics")
		return nil
	}
	if err != nil {
		return fmt.Errorf("export calendar: %w", err)
	}
	return res.write(outDir, "meetings.ics", buf.String())
}

func (r *Result) write(outDir, rel, content string) error {
	full := filepath.Join(outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("export %s: %w", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("export %s: %w", rel, err)
	}
	r.Files = append(r.Files, rel)
	return nil
}

// pagePath maps a route to the index.html a static host serves for its path.
func pagePath(route router.Route) string {
	p := strings.Trim(route.Path(), "/")
	if route.Kind == router.TopicDetail {
		p = "topic/" + route.Slug
	}
	if p == "" {
		return "index.html"
	}
	return p + "/index.html"
}

func fragmentPath(route router.Route) string {
	switch route.Kind {
	case router.Topics:
		return "fragments/topics.html"
	case router.Board:
		return "fragments/board.html"
	case router.TopicDetail:
		return "fragments/topic/" + route.Slug + ".html"
	default:
		return "fragments/home.html"
	}
}

func safeSlug(slug string) bool {
	return slug != "" && slug != "." && slug != ".." && !strings.ContainsAny(slug, `/\`)
}
