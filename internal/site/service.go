package site

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"munsite/internal/loader"
	"munsite/internal/meeting"
	"munsite/internal/model"
	"munsite/internal/router"
	"munsite/internal/view"
	"time"

	"golang.org/x/sync/errgroup"
)

// ErrTopicNotFound is returned, with a rendered page, when a slug matches no topic.
var ErrTopicNotFound = errors.New("topic not found")

// Page is a rendered view: the main content plus the banner above it.
type Page struct {
	Route  router.Route
	Title  string
	Banner string
	Main   string
}

// Service loads fresh data for every render and hands it to the renderer.
type Service struct {
	loader   *loader.Loader
	renderer *view.Renderer
	loc      *time.Location
	now      func() time.Time
}

func NewService(l *loader.Loader, r *view.Renderer, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{loader: l, renderer: r, loc: loc, now: time.Now}
}

func (s *Service) Loader() *loader.Loader {
	return s.loader
}

func (s *Service) Renderer() *view.Renderer {
	return s.renderer
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// Render builds the page for route. Load failures are returned as errors; the
// caller shows them with the renderer's error panel.
func (s *Service) Render(ctx context.Context, route router.Route) (*Page, error) {
	var (
		page *Page
		err  error
	)
	switch route.Kind {
	case router.Topics:
		page, err = s.renderTopics(ctx)
	case router.Board:
		page, err = s.renderBoard(ctx)
	case router.TopicDetail:
		page, err = s.renderTopicDetail(ctx, route.Slug)
	default:
		page, err = s.renderHome(ctx)
	}
	if page != nil {
		page.Route = route
	}
	if err != nil && !errors.Is(err, ErrTopicNotFound) {
		return nil, fmt.Errorf("render %s: %w", route.Kind, err)
	}
	return page, err
}

// HomeData is everything the home page needs, loaded concurrently.
type HomeData struct {
	Site     model.SiteConfig
	Meetings []model.Meeting
	Topics   []model.Topic
}

// LoadHome fetches site config, meetings and topics in parallel. The first
// failure cancels the rest.
func (s *Service) LoadHome(ctx context.Context) (*HomeData, error) {
	var data HomeData
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		site, err := s.loader.Site(gctx)
		data.Site = site
		return err
	})
	g.Go(func() error {
		meetings, err := s.loader.Meetings(gctx)
		data.Meetings = meetings
		return err
	})
	g.Go(func() error {
		topics, err := s.loader.Topics(gctx)
		data.Topics = topics
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &data, nil
}

// NextMeeting resolves the next upcoming, non-cancelled meeting.
func (s *Service) NextMeeting(data *HomeData) (model.Meeting, bool) {
	return meeting.Next(data.Meetings, meeting.NewPolicy(data.Site), s.now(), s.loc)
}

func (s *Service) renderHome(ctx context.Context) (*Page, error) {
	data, err := s.LoadHome(ctx)
	if err != nil {
		return nil, err
	}

	var next *view.NextMeeting
	if m, ok := s.NextMeeting(data); ok {
		next = view.NewNextMeeting(m, meeting.StartsAt(m, s.loc).Format())
	}

	main, err := s.renderer.Home(data.Site, next, data.Topics)
	if err != nil {
		return nil, err
	}
	banner, err := s.renderer.Banner(data.Site)
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Home", Banner: banner, Main: main}, nil
}

func (s *Service) renderTopics(ctx context.Context) (*Page, error) {
	topics, err := s.loader.Topics(ctx)
	if err != nil {
		return nil, err
	}
	main, err := s.renderer.Topics(topics)
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Topics", Main: main}, nil
}

func (s *Service) renderTopicDetail(ctx context.Context, slug string) (*Page, error) {
	topics, err := s.loader.Topics(ctx)
	if err != nil {
		return nil, err
	}

	for _, t := range topics {
		if t.Key() != slug {
			continue
		}
		matrix, _ := s.loader.Matrix(ctx, t)
		main, err := s.renderer.TopicDetail(t, matrix)
		if err != nil {
			return nil, err
		}
		return &Page{Title: t.DisplayTitle(), Main: main}, nil
	}

	slog.Info("topic not found", "slug", slug)
	main, err := s.renderer.TopicNotFound()
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Topic not found", Main: main}, ErrTopicNotFound
}

func (s *Service) renderBoard(ctx context.Context) (*Page, error) {
	board, err := s.loader.Board(ctx)
	if err != nil {
		return nil, err
	}
	main, err := s.renderer.Board(board)
	if err != nil {
		return nil, err
	}
	return &Page{Title: "Board", Main: main}, nil
}

// Document renders page as a full HTML document.
func (s *Service) Document(p *Page) (string, error) {
	return s.renderer.Page(p.Title+" · Model UN", p.Route, p.Banner, p.Main)
}

// ErrorDocument renders a load failure in place of the main content.
func (s *Service) ErrorDocument(route router.Route, cause error) (string, error) {
	panel, err := s.renderer.Error(cause)
	if err != nil {
		return "", err
	}
	return s.renderer.Page("Error · Model UN", route, "", panel)
}
