package router

import (
	"net/url"
	"regexp"
	"strings"
)

type Kind int

const (
	Home Kind = iota
	Topics
	Board
	TopicDetail
)

func (k Kind) String() string {
	switch k {
	case Topics:
		return "topics"
	case Board:
		return "board"
	case TopicDetail:
		return "topic"
	default:
		return "home"
	}
}

// Route is one of the site's views. Slug is set only for TopicDetail.
type Route struct {
	Kind Kind
	Slug string
}

func TopicRoute(slug string) Route {
	return Route{Kind: TopicDetail, Slug: slug}
}

var topicFragment = regexp.MustCompile(`^#/topic/([^\s?#]+)`)

// Resolve maps a location fragment such as "#/topic/water" to a route.
// Unknown fragments resolve to Home.
func Resolve(fragment string) Route {
	if fragment == "" {
		fragment = "#/"
	}
	if m := topicFragment.FindStringSubmatch(fragment); m != nil {
		return TopicRoute(decode(m[1]))
	}
	switch fragment {
	case "#/topics":
		return Route{Kind: Topics}
	case "#/board":
		return Route{Kind: Board}
	default:
		return Route{Kind: Home}
	}
}

// FromPath maps a server path such as "/topic/water" to a route.
func FromPath(p string) Route {
	p = strings.TrimSuffix(p, "/")
	if p == "" {
		p = "/"
	}
	if rest, ok := strings.CutPrefix(p, "/topic/"); ok && rest != "" {
		return Resolve("#/topic/" + rest)
	}
	return Resolve("#" + p)
}

func decode(s string) string {
	d, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return d
}

// Fragment is the canonical location fragment for the route.
func (r Route) Fragment() string {
	switch r.Kind {
	case Topics:
		return "#/topics"
	case Board:
		return "#/board"
	case TopicDetail:
		return "#/topic/" + url.PathEscape(r.Slug)
	default:
		return "#/"
	}
}

// Path is the server path for the route.
func (r Route) Path() string {
	return strings.TrimPrefix(r.Fragment(), "#")
}
