// Package tui renders the portfolio in the terminal. It drives the same ui
// components as the web page: sections reveal as they scroll into view, stat
// counters ramp up, lists filter, cards expand, testimonials rotate and the
// contact form walks through its sending and sent phases.
package tui

import (
	"errors"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/schedule"
	"github.com/tanimomor/portfolio/internal/ui"
)

// Section ids in page order. Stat rows are separate so their counters start
// when the numbers themselves come into view.
const (
	secHome          = "home"
	secAbout         = "about"
	secAboutStats    = "about-stats"
	secServices      = "services"
	secExperience    = "experience"
	secTeaching      = "teaching"
	secTeachingStats = "teaching-stats"
	secProjects      = "projects"
	secPublications  = "publications"
	secNews          = "news"
	secTestimonials  = "testimonials"
	secContact       = "contact"
)

var pageOrder = []string{
	secHome, secAbout, secAboutStats, secServices, secExperience, secTeaching,
	secTeachingStats, secProjects, secPublications, secNews, secTestimonials, secContact,
}

// chrome is the number of lines taken by the header and status bar.
const chrome = 2

type frameMsg struct{}

// Options configure a Model.
type Options struct {
	Catalog   *content.Catalog
	Scheduler schedule.Scheduler
	// Send receives each contact submission once its sending delay is over.
	Send func(contact.Submission) error

	SubmitDelay    time.Duration
	ResetDelay     time.Duration
	CarouselPeriod time.Duration

	Width  int
	Height int
}

// Model is the bubbletea model for the terminal page.
type Model struct {
	cat    *content.Catalog
	styles Styles
	jobs   *schedule.Group
	period time.Duration

	view     *ui.Viewport
	watchers map[string]*ui.Watcher

	role         *ui.Typewriter
	aboutStats   []*ui.Counter
	teachStats   []*ui.Counter
	projects     *ui.FilterList[content.Project]
	publications *ui.FilterList[content.Publication]
	news         *ui.FilterList[content.NewsItem]
	cards        []*ui.Card
	carousel     *ui.Carousel
	form         *ui.ContactForm
	menu         ui.Toggle

	width, height int
	scroll        int
	lines         []string
	offsets       map[string]int

	editing  bool
	field    int
	formErr  string
	closed   bool
	quitting bool
}

func New(opts Options) (*Model, error) {
	if opts.Catalog == nil {
		return nil, errors.New("tui: catalog is required")
	}
	if opts.Scheduler == nil {
		opts.Scheduler = schedule.Clock{}
	}
	if opts.SubmitDelay == 0 {
		opts.SubmitDelay = contact.SubmitDelay
	}
	if opts.ResetDelay == 0 {
		opts.ResetDelay = contact.ResetDelay
	}
	if opts.CarouselPeriod <= 0 {
		opts.CarouselPeriod = ui.CarouselPeriod
	}
	if opts.Width <= 0 {
		opts.Width = 80
	}
	if opts.Height <= 0 {
		opts.Height = 24
	}

	carousel, err := ui.NewCarousel(len(opts.Catalog.Testimonials))
	if err != nil {
		return nil, err
	}

	cat := opts.Catalog
	jobs := schedule.NewGroup(opts.Scheduler)
	m := &Model{
		cat:          cat,
		styles:       DefaultStyles(),
		jobs:         jobs,
		period:       opts.CarouselPeriod,
		view:         ui.NewViewport(float64(max(opts.Height-chrome, 1))),
		watchers:     make(map[string]*ui.Watcher, len(pageOrder)),
		role:         ui.NewTypewriter(cat.Profile.Role),
		aboutStats:   counters(jobs, cat.AboutStats),
		teachStats:   counters(jobs, cat.Teaching.Stats),
		projects:     ui.NewFilterList(cat.Projects, content.ProjectCategory, cat.Filters.Projects...),
		publications: ui.NewFilterList(cat.Publications, content.PublicationType, cat.Filters.Publications...),
		news:         ui.NewFilterList(cat.News, content.NewsCategory, cat.Filters.News...),
		carousel:     carousel,
		form: ui.NewContactForm(jobs,
			ui.WithSubmitDelay(opts.SubmitDelay),
			ui.WithResetDelay(opts.ResetDelay),
			ui.WithSender(opts.Send)),
		width:  opts.Width,
		height: opts.Height,
	}
	for _, e := range cat.Experience {
		m.cards = append(m.cards, ui.NewCard("experience/"+e.ID))
	}
	for _, p := range cat.Publications {
		m.cards = append(m.cards, ui.NewCard("publication/"+p.ID))
	}

	for _, id := range pageOrder {
		m.watchers[id] = ui.NewWatcher(id, sectionThreshold(id))
	}
	m.watchers[secAboutStats].OnChange(func(v bool) { setVisible(m.aboutStats, v) })
	m.watchers[secTeachingStats].OnChange(func(v bool) { setVisible(m.teachStats, v) })

	m.layout()
	for _, id := range pageOrder {
		m.watchers[id].Mount(m.view)
	}
	return m, nil
}

// sectionThreshold is the visible share a section needs before it counts as
// seen. About and testimonials wait for more of themselves.
func sectionThreshold(id string) float64 {
	switch id {
	case secAbout, secAboutStats, secTestimonials:
		return ui.ProminentThreshold
	}
	return ui.DefaultThreshold
}

func counters(s schedule.Scheduler, stats []content.Stat) []*ui.Counter {
	out := make([]*ui.Counter, len(stats))
	for i, st := range stats {
		out[i] = ui.NewCounter(s, st.Value, time.Duration(i)*ui.CounterStagger)
	}
	return out
}

func setVisible(cs []*ui.Counter, v bool) {
	for _, c := range cs {
		c.SetVisible(v)
	}
}

func frame() tea.Cmd {
	return tea.Tick(ui.CounterTick, func(time.Time) tea.Msg { return frameMsg{} })
}

// Init starts the typewriter and the carousel and begins redrawing.
func (m *Model) Init() tea.Cmd {
	m.role.Start(m.jobs)
	m.carousel.Start(m.jobs, m.period)
	return frame()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.view.Resize(float64(max(m.height-chrome, 1)))
		m.layout()
		return m, nil

	case frameMsg:
		if m.closed {
			return m, nil
		}
		m.layout()
		return m, frame()

	case tea.KeyMsg:
		if m.editing {
			return m.updateForm(msg)
		}
		return m.updatePage(msg)
	}
	return m, nil
}

func (m *Model) updatePage(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := max(m.height-chrome, 1)
	switch msg.String() {
	case "q", "ctrl+c":
		m.Close()
		m.quitting = true
		return m, tea.Quit
	case "j", "down":
		m.scrollBy(1)
	case "k", "up":
		m.scrollBy(-1)
	case "pgdown", " ":
		m.scrollBy(page)
	case "pgup":
		m.scrollBy(-page)
	case "g", "home":
		m.scrollTo(0)
	case "G", "end":
		m.scrollTo(len(m.lines))
	case "f":
		m.projects.Cycle(1)
	case "F":
		m.projects.Cycle(-1)
	case "p":
		m.publications.Cycle(1)
	case "P":
		m.publications.Cycle(-1)
	case "n":
		m.news.Cycle(1)
	case "N":
		m.news.Cycle(-1)
	case "]", "right":
		m.carousel.Next()
	case "[", "left":
		m.carousel.Prev()
	case "m":
		m.menu.Flip()
	case "c":
		m.editing = true
		m.field = 0
		m.formErr = ""
		m.scrollTo(m.offsets[secContact])
	default:
		if s := msg.String(); len(s) == 1 && s[0] >= '1' && s[0] <= '9' {
			if i := int(s[0] - '1'); i < len(m.cards) {
				m.cards[i].Toggle()
			}
		}
	}
	m.layout()
	return m, nil
}

func (m *Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	name := ui.ContactFields[m.field]
	switch msg.Type {
	case tea.KeyCtrlC:
		m.Close()
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEsc:
		m.editing = false
	case tea.KeyTab, tea.KeyDown:
		m.field = ui.Wrap(m.field+1, len(ui.ContactFields))
	case tea.KeyShiftTab, tea.KeyUp:
		m.field = ui.Wrap(m.field-1, len(ui.ContactFields))
	case tea.KeyEnter:
		m.formErr = ""
		if err := m.form.Submit(); err != nil {
			m.formErr = submitError(err)
		}
	case tea.KeyBackspace:
		if r := []rune(m.form.Get(name)); len(r) > 0 {
			_ = m.form.Set(name, string(r[:len(r)-1]))
		}
	case tea.KeySpace:
		_ = m.form.Set(name, m.form.Get(name)+" ")
	case tea.KeyRunes:
		_ = m.form.Set(name, m.form.Get(name)+string(msg.Runes))
	}
	m.layout()
	return m, nil
}

func submitError(err error) string {
	switch {
	case errors.Is(err, contact.ErrIncomplete):
		return "Please fill in all fields."
	case errors.Is(err, contact.ErrLineBreak):
		return "Name, email and subject must fit on one line."
	case errors.Is(err, ui.ErrBusy):
		return "Your message is already on its way."
	}
	return err.Error()
}

func (m *Model) scrollBy(d int) { m.scrollTo(m.scroll + d) }

func (m *Model) scrollTo(y int) {
	limit := max(len(m.lines)-max(m.height-chrome, 1), 0)
	m.scroll = min(max(y, 0), limit)
	m.view.ScrollTo(float64(m.scroll))
}

// layout renders every section, places it on the viewport and keeps the
// scroll offset in range.
func (m *Model) layout() {
	var lines []string
	offsets := make(map[string]int, len(pageOrder))
	for _, id := range pageOrder {
		block := strings.Split(m.renderSection(id), "\n")
		offsets[id] = len(lines)
		m.view.Place(id, ui.Bounds{Top: float64(len(lines)), Height: float64(len(block))})
		lines = append(lines, block...)
		lines = append(lines, "")
	}
	m.lines = lines
	m.offsets = offsets
	m.scrollTo(m.scroll)
}

// Close cancels every timer and stops observing the viewport. It is safe to
// call more than once.
func (m *Model) Close() {
	if m.closed {
		return
	}
	m.closed = true
	for _, w := range m.watchers {
		w.Unmount()
	}
	m.role.Stop()
	m.carousel.Stop()
	setVisible(m.aboutStats, false)
	setVisible(m.teachStats, false)
	m.form.Close()
	m.jobs.CancelAll()
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	page := max(m.height-chrome, 1)
	end := min(m.scroll+page, len(m.lines))
	clip := lipgloss.NewStyle().MaxWidth(m.width)

	var b strings.Builder
	b.WriteString(clip.Render(m.header()))
	b.WriteString("\n")
	for _, line := range m.lines[m.scroll:end] {
		b.WriteString(clip.Render(line))
		b.WriteString("\n")
	}
	for range page - (end - m.scroll) {
		b.WriteString("\n")
	}
	b.WriteString(clip.Render(m.statusBar()))
	return b.String()
}
