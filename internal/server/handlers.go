package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/ui"
)

const (
	msgSendFailed = "Sorry, there was an error sending your message. Please try again later."
	msgIncomplete = "Please fill in all fields."
	msgBadEmail   = "Please enter a valid email address."
	msgLineBreak  = "Name, email and subject must fit on one line."
	msgSent       = "Thank you for your message! I'll get back to you soon."
)

func (s *Server) routes(r *gin.Engine) {
	r.GET("/", s.index)
	r.GET("/hero/role", s.heroRole)

	r.GET("/sections/:name", s.section)
	r.GET("/cards/experience/:id", s.experienceCard)
	r.GET("/cards/publication/:id", s.publicationCard)
	r.GET("/testimonials", s.testimonial)
	r.GET("/counters/:group/:index", s.counter)

	// HTMX contact form: GET returns just the form, POST the outcome.
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", formData{})
	})
	r.POST("/contact", s.submitContact)

	api := r.Group("/api")
	api.GET("/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, s.catalog)
	})
	api.GET("/projects", s.apiProjects)
	api.GET("/projects/:id", s.apiProject)
	r.GET("/health", s.health)
}

type section[T any] struct {
	Name       string
	Active     string
	Categories []string
	Items      []T
}

func newSection[T any](name string, items []T, categories []string, category func(T) string, active string) section[T] {
	l := ui.NewFilterList(items, category, categories...)
	if active != "" {
		l.Select(active)
	}
	return section[T]{Name: name, Active: l.Active(), Categories: l.Categories(), Items: l.Visible()}
}

func (s *Server) projects(active string) section[content.Project] {
	return newSection("projects", s.catalog.Projects, s.catalog.Filters.Projects, content.ProjectCategory, active)
}

func (s *Server) publications(active string) section[content.Publication] {
	return newSection("publications", s.catalog.Publications, s.catalog.Filters.Publications, content.PublicationType, active)
}

func (s *Server) news(active string) section[content.NewsItem] {
	return newSection("news", s.catalog.News, s.catalog.Filters.News, content.NewsCategory, active)
}

type experienceCard struct {
	Experience content.Experience
	Expanded   bool
}

type publicationCard struct {
	Publication content.Publication
	Expanded    bool
}

type slide struct {
	Testimonial content.Testimonial
	Index       int
	Len         int
}

type counterData struct {
	Group string
	Index int
	Stat  content.Stat
	Value int
	Step  int
	Done  bool
}

type roleData struct {
	Text string
	N    int
	Done bool
}

type formData struct {
	Fields  contact.Submission
	Error   string
	Success string
	ResetMs int64
}

type pageData struct {
	Catalog      *content.Catalog
	Role         roleData
	Projects     section[content.Project]
	Publications section[content.Publication]
	News         section[content.NewsItem]
	Experience   []experienceCard
	Slide        slide
	PeriodMs     int64
	Form         formData
}

func (s *Server) index(c *gin.Context) {
	cards := make([]experienceCard, len(s.catalog.Experience))
	for i, e := range s.catalog.Experience {
		cards[i] = experienceCard{Experience: e}
	}
	c.HTML(http.StatusOK, "index.html", pageData{
		Catalog:      s.catalog,
		Role:         roleData{},
		Projects:     s.projects(ui.All),
		Publications: s.publications(ui.All),
		News:         s.news(ui.All),
		Experience:   cards,
		Slide:        s.slide(0),
		PeriodMs:     s.cfg.CarouselPeriod.Milliseconds(),
	})
}

// heroRole types the role title one rune per request; each fragment asks
// for the next after TypewriterTick until the title is complete.
func (s *Server) heroRole(c *gin.Context) {
	n, _ := strconv.Atoi(c.Query("n"))
	text, done := ui.Reveal(s.catalog.Profile.Role, n)
	c.HTML(http.StatusOK, "role.html", roleData{Text: text, N: n, Done: done})
}

func (s *Server) section(c *gin.Context) {
	filter := c.DefaultQuery("filter", ui.All)
	switch c.Param("name") {
	case "projects":
		c.HTML(http.StatusOK, "projects.html", s.projects(filter))
	case "publications":
		c.HTML(http.StatusOK, "publications.html", s.publications(filter))
	case "news":
		c.HTML(http.StatusOK, "news.html", s.news(filter))
	default:
		s.fragmentError(c, http.StatusNotFound, "Unknown section")
	}
}

func (s *Server) experienceCard(c *gin.Context) {
	e, err := s.catalog.ExperienceByID(c.Param("id"))
	if err != nil {
		s.fragmentError(c, http.StatusNotFound, "Experience not found")
		return
	}
	c.HTML(http.StatusOK, "experience-card.html", experienceCard{Experience: e, Expanded: queryBool(c, "expanded")})
}

func (s *Server) publicationCard(c *gin.Context) {
	p, err := s.catalog.PublicationByID(c.Param("id"))
	if err != nil {
		s.fragmentError(c, http.StatusNotFound, "Publication not found")
		return
	}
	c.HTML(http.StatusOK, "publication-card.html", publicationCard{Publication: p, Expanded: queryBool(c, "expanded")})
}

// testimonial renders the slide at index+step, wrapped into range. The
// auto-advance trigger lives outside the swapped slide so manual navigation
// keeps its phase.
func (s *Server) testimonial(c *gin.Context) {
	index, _ := strconv.Atoi(c.Query("index"))
	step, _ := strconv.Atoi(c.Query("step"))
	c.HTML(http.StatusOK, "testimonial.html", s.slide(index+step))
}

func (s *Server) slide(i int) slide {
	n := len(s.catalog.Testimonials)
	i = ui.Wrap(i, n)
	return slide{Testimonial: s.catalog.Testimonials[i], Index: i, Len: n}
}

// counter renders step k of a stat's count-up. Unfinished steps reload
// themselves after CounterTick.
func (s *Server) counter(c *gin.Context) {
	var stats []content.Stat
	switch c.Param("group") {
	case "about":
		stats = s.catalog.AboutStats
	case "teaching":
		stats = s.catalog.Teaching.Stats
	}
	i, err := strconv.Atoi(c.Param("index"))
	if err != nil || i < 0 || i >= len(stats) {
		s.fragmentError(c, http.StatusNotFound, "Unknown stat")
		return
	}
	step, _ := strconv.Atoi(c.Query("step"))
	step = max(step, 0)
	value, done := ui.RampAt(stats[i].Value, step)
	c.HTML(http.StatusOK, "counter.html", counterData{
		Group: c.Param("group"),
		Index: i,
		Stat:  stats[i],
		Value: value,
		Step:  step,
		Done:  done,
	})
}

func (s *Server) submitContact(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		msg := msgIncomplete
		if strings.Contains(err.Error(), "'email' tag") {
			msg = msgBadEmail
		}
		c.HTML(http.StatusOK, "contact.html", formData{Fields: sub, Error: msg})
		return
	}

	if _, err := s.contact.Submit(c.Request.Context(), sub); err != nil {
		switch {
		case errors.Is(err, contact.ErrIncomplete):
			c.HTML(http.StatusOK, "contact.html", formData{Fields: sub, Error: msgIncomplete})
		case errors.Is(err, contact.ErrLineBreak):
			c.HTML(http.StatusOK, "contact.html", formData{Fields: sub, Error: msgLineBreak})
		case errors.Is(err, context.Canceled):
			c.Status(http.StatusRequestTimeout)
		default:
			s.logger.Error("Error sending contact message", zap.Error(err))
			c.HTML(http.StatusOK, "contact.html", formData{Fields: sub, Error: msgSendFailed})
		}
		return
	}

	c.HTML(http.StatusOK, "contact-success.html", formData{
		Success: msgSent,
		ResetMs: s.cfg.ContactReset.Milliseconds(),
	})
}

func (s *Server) apiProjects(c *gin.Context) {
	sec := s.projects(c.DefaultQuery("filter", ui.All))
	c.JSON(http.StatusOK, gin.H{
		"filter":     sec.Active,
		"categories": sec.Categories,
		"projects":   sec.Items,
	})
}

func (s *Server) apiProject(c *gin.Context) {
	p, err := s.catalog.ProjectByID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusNotFound, "Project not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := s.store.Ping(ctx); err != nil {
		respondError(c, http.StatusServiceUnavailable, "database unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) fragmentError(c *gin.Context, status int, msg string) {
	c.HTML(status, "error.html", gin.H{"error": msg})
}

func respondError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func queryBool(c *gin.Context, key string) bool {
	v, _ := strconv.ParseBool(c.Query(key))
	return v
}

func (s *Server) funcs() template.FuncMap {
	return template.FuncMap{
		"year":         func() int { return s.now().Year() },
		"add":          func(a, b int) int { return a + b },
		"join":         strings.Join,
		"query":        url.QueryEscape,
		"label":        ui.ToggleLabel,
		"slug":         slug,
		"threshold":    groupThreshold,
		"tickMs":       func() int64 { return ui.CounterTick.Milliseconds() },
		"typeMs":       func() int64 { return ui.TypewriterTick.Milliseconds() },
		"stagger":      func(i int) int64 { return int64(i) * ui.CounterStagger.Milliseconds() },
		"stars":        func(n int) []struct{} { return make([]struct{}, max(n, 0)) },
		"counterStart": counterStart,
		"collapsed":    func(p content.Publication) publicationCard { return publicationCard{Publication: p} },
	}
}

// groupThreshold is how much of a stat row must be visible before its
// counters start. The about row waits for more of itself.
func groupThreshold(group string) float64 {
	if group == "about" {
		return ui.ProminentThreshold
	}
	return ui.DefaultThreshold
}

// counterStart is a stat card before it has been seen.
func counterStart(group string, i int, st content.Stat) counterData {
	return counterData{Group: group, Index: i, Stat: st}
}

// slug turns a status or impact label into a CSS class suffix.
func slug(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "-")
}
