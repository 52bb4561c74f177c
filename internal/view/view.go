// Package view renders the site's pages and fragments as HTML. Every function
// is pure: the same data always produces the same markup.
package view

import (
	"bytes"
	"embed"
	"html/template"
	"munsite/internal/loader"
	"munsite/internal/model"
	"munsite/internal/router"
	"regexp"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// previewLimit is how many research links and notes a topic preview shows.
const previewLimit = 2

// LinkStyle selects how internal links are written.
type LinkStyle int

const (
	// HashLinks produce "#/topic/slug" for the client-side router.
	HashLinks LinkStyle = iota
	// PathLinks produce "/topic/slug" for server and static pages.
	PathLinks
)

// Renderer turns loaded data into HTML.
type Renderer struct {
	style LinkStyle
}

func New(style LinkStyle) *Renderer {
	return &Renderer{style: style}
}

func (r *Renderer) href(route router.Route) string {
	if r.style == PathLinks {
		return route.Path()
	}
	return route.Fragment()
}

func execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type pill struct {
	URL   string
	Label string
}

type note struct {
	Text string
	Pill *pill
}

func pills(links []model.Link, label func(model.Link) string) []pill {
	out := make([]pill, 0, len(links))
	for _, l := range links {
		out = append(out, pill{URL: l.URL, Label: label(l)})
	}
	return out
}

func labelOr(fallback func(model.Link) string) func(model.Link) string {
	return func(l model.Link) string {
		if l.Label != "" {
			return l.Label
		}
		return fallback(l)
	}
}

var (
	previewLabel  = labelOr(func(model.Link) string { return "Link" })
	detailLabel   = labelOr(func(l model.Link) string { return l.URL })
	researchLabel = model.Link.DisplayLabel
)

func notes(in []model.Note) []note {
	out := make([]note, 0, len(in))
	for _, n := range in {
		if n.Link != nil {
			out = append(out, note{Pill: &pill{URL: n.Link.URL, Label: n.Link.DisplayLabel()}})
			continue
		}
		out = append(out, note{Text: n.Text})
	}
	return out
}

// NavLink is one entry of the top navigation.
type NavLink struct {
	Href    string
	Label   string
	Current bool
}

// Nav lists Home, Topics and Board, marking the one matching current.
// Topic pages highlight nothing.
func (r *Renderer) Nav(current router.Route) []NavLink {
	entries := []struct {
		route router.Route
		label string
	}{
		{router.Route{Kind: router.Home}, "Home"},
		{router.Route{Kind: router.Topics}, "Topics"},
		{router.Route{Kind: router.Board}, "Board"},
	}

	links := make([]NavLink, 0, len(entries))
	for _, e := range entries {
		links = append(links, NavLink{
			Href:    r.href(e.route),
			Label:   e.label,
			Current: current.Kind == e.route.Kind,
		})
	}
	return links
}

// BannerText is the site-wide cancellation notice, or "" when there is none.
func BannerText(site model.SiteConfig) string {
	if site.CancelAllUpcoming {
		return "All upcoming meetings are cancelled until further notice."
	}
	if site.CancelUntil != "" {
		return "All meetings are cancelled through " + site.CancelUntil + "."
	}
	return ""
}

func (r *Renderer) Banner(site model.SiteConfig) (string, error) {
	return execute("banner", BannerText(site))
}

type topicPreview struct {
	Title         string
	Href          string
	Resources     []pill
	ShowResearch  bool
	Research      []pill
	ResearchTotal int
	ShowDebate    bool
	Debate        []note
	DebateTotal   int
}

func (r *Renderer) preview(t model.Topic, full bool) *topicPreview {
	p := &topicPreview{
		Title:        t.DisplayTitle(),
		Href:         r.href(router.TopicRoute(t.Key())),
		Resources:    pills(t.Resources, previewLabel),
		ShowResearch: full,
		ShowDebate:   full,
	}
	if full {
		p.Research = pills(head(t.ResearchLinks, previewLimit), researchLabel)
		p.ResearchTotal = len(t.ResearchLinks)
		p.Debate = notes(head(t.DebateNotes, previewLimit))
		p.DebateTotal = len(t.DebateNotes)
	}
	return p
}

func head[T any](s []T, n int) []T {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// NextMeeting is the hero block for the upcoming meeting.
type NextMeeting struct {
	Type     string
	When     string
	Duration string
	Room     string
}

func NewNextMeeting(m model.Meeting, when string) *NextMeeting {
	typ := m.Type
	if typ == "" {
		typ = "Meeting"
	}
	return &NextMeeting{Type: typ, When: when, Duration: m.Duration, Room: m.Room}
}

// Home renders the landing page: next meeting, current topic and resources.
// next is nil when no meeting is upcoming.
func (r *Renderer) Home(site model.SiteConfig, next *NextMeeting, topics []model.Topic) (string, error) {
	data := struct {
		Next      *NextMeeting
		Current   *topicPreview
		Resources []pill
	}{
		Next:      next,
		Resources: pills(site.Resources, labelOr(func(l model.Link) string { return l.URL })),
	}
	if len(topics) > 0 {
		data.Current = r.preview(topics[0], true)
	}
	return execute("home", data)
}

// Topics renders the current topic in full and earlier topics compactly.
func (r *Renderer) Topics(topics []model.Topic) (string, error) {
	data := struct {
		Current  *topicPreview
		Previous []*topicPreview
	}{}
	if len(topics) > 0 {
		data.Current = r.preview(topics[0], true)
		for _, t := range topics[1:] {
			data.Previous = append(data.Previous, r.preview(t, false))
		}
	}
	return execute("topics", data)
}

var blankLines = regexp.MustCompile(`\n{2,}`)

func paragraphs(desc []string) [][]string {
	var out [][]string
	for _, d := range desc {
		for _, p := range blankLines.Split(d, -1) {
			out = append(out, strings.Split(p, "\n"))
		}
	}
	return out
}

// TopicDetail renders one topic. Cards without data are left out; matrix may be nil.
func (r *Renderer) TopicDetail(t model.Topic, matrix *loader.Matrix) (string, error) {
	data := struct {
		Title       string
		About       [][]string
		Resources   []pill
		Research    []pill
		Debate      []note
		Resolutions []pill
		Stats       []model.SpeakingStat
		Matrix      *loader.Matrix
	}{
		Title:       t.DisplayTitle(),
		About:       paragraphs(t.Description),
		Resources:   pills(t.Resources, detailLabel),
		Research:    pills(t.ResearchLinks, researchLabel),
		Debate:      notes(t.DebateNotes),
		Resolutions: pills(t.ResolutionLinks, detailLabel),
		Stats:       t.SpeakingStats,
		Matrix:      matrix,
	}
	return execute("topic", data)
}

func (r *Renderer) TopicNotFound() (string, error) {
	return execute("topic_not_found", nil)
}

func (r *Renderer) Board(members []model.BoardMember) (string, error) {
	return execute("board", members)
}

// Error is the panel shown in place of the main content when loading fails.
func (r *Renderer) Error(err error) (string, error) {
	return execute("error", err.Error())
}

// Page wraps rendered fragments in the full document.
func (r *Renderer) Page(title string, current router.Route, banner, main string) (string, error) {
	data := struct {
		Title  string
		Nav    []NavLink
		Banner template.HTML
		Main   template.HTML
	}{
		Title:  title,
		Nav:    r.Nav(current),
		Banner: template.HTML(banner),
		Main:   template.HTML(main),
	}
	return execute("page", data)
}
