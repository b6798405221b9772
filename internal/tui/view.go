package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/ui"
)

const wrapWidth = 72

func (m *Model) renderSection(id string) string {
	var body string
	switch id {
	case secHome:
		body = m.renderHome()
	case secAbout:
		body = m.renderAbout()
	case secAboutStats:
		body = m.renderStats(m.cat.AboutStats, m.aboutStats)
	case secServices:
		body = m.renderServices()
	case secExperience:
		body = m.renderExperience()
	case secTeaching:
		body = m.renderTeaching()
	case secTeachingStats:
		body = m.renderStats(m.cat.Teaching.Stats, m.teachStats)
	case secProjects:
		body = m.renderProjects()
	case secPublications:
		body = m.renderPublications()
	case secNews:
		body = m.renderNews()
	case secTestimonials:
		body = m.renderTestimonial()
	case secContact:
		body = m.renderContact()
	}
	// Sections fade in once they have been seen.
	if w, ok := m.watchers[id]; ok && w.Mounted() && !w.Visible() {
		return m.styles.Hidden.Render(body)
	}
	return body
}

func (m *Model) header() string {
	title := m.styles.Title.Render(m.cat.Profile.Name)
	if !m.menu.On() {
		return title + m.styles.Muted.Render("  (m: menu)")
	}
	names := make([]string, len(m.cat.Navigation))
	for i, n := range m.cat.Navigation {
		names[i] = n.Name
	}
	return title + "  " + m.styles.Accent.Render(strings.Join(names, " · "))
}

func (m *Model) statusBar() string {
	if m.editing {
		return m.styles.StatusBar.Render(" tab: next field · enter: send · esc: done ")
	}
	return m.styles.StatusBar.Render(" j/k: scroll · f/p/n: filter · 1-9: expand · [/]: testimonials · c: contact · q: quit ")
}

func (m *Model) renderHome() string {
	p := m.cat.Profile
	role := m.role.Text()
	if !m.role.Done() {
		role += "▌"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render("Hi, I'm "+p.Name),
		m.styles.Accent.Render(role),
		wrap(p.Headline),
		m.styles.Muted.Render(p.Location+" · "+p.Email),
	)
}

func (m *Model) renderAbout() string {
	lines := []string{m.styles.Heading.Render("About")}
	for _, para := range m.cat.Profile.Bio {
		lines = append(lines, wrap(para))
	}
	lines = append(lines, m.styles.Tag.Render(strings.Join(m.cat.Profile.Skills, " · ")))
	return strings.Join(lines, "\n")
}

func (m *Model) renderStats(stats []content.Stat, counters []*ui.Counter) string {
	cells := make([]string, len(stats))
	for i, st := range stats {
		cells[i] = lipgloss.JoinVertical(lipgloss.Right,
			m.styles.Stat.Render(strconv.Itoa(counters[i].Value())+st.Suffix),
			m.styles.Muted.Render(st.Label),
		)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced(cells)...)
}

func (m *Model) renderServices() string {
	lines := []string{m.styles.Heading.Render("Services")}
	for _, s := range m.cat.Services {
		lines = append(lines, m.styles.Accent.Render("• "+s.Title), wrap(s.Description))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderExperience() string {
	blocks := []string{m.styles.Heading.Render("Experience")}
	for i, e := range m.cat.Experience {
		card := m.cards[i]
		lines := []string{
			m.styles.Accent.Render(e.Title) + " @ " + e.Company,
			m.styles.Muted.Render(e.Period + " · " + e.Location),
			wrap(e.Description),
		}
		if card.Expanded() {
			lines = append(lines, "Key Achievements:")
			for _, a := range e.Achievements {
				lines = append(lines, wrap("  - "+a))
			}
			lines = append(lines, m.styles.Tag.Render(strings.Join(e.Technologies, ", ")))
		}
		lines = append(lines, m.styles.Muted.Render(fmt.Sprintf("[%d] %s", i+1, card.Label())))
		blocks = append(blocks, m.styles.Card.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(blocks, "\n")
}

func (m *Model) renderTeaching() string {
	t := m.cat.Teaching
	return strings.Join([]string{
		m.styles.Heading.Render("Teaching"),
		m.styles.Accent.Render(t.Title) + " @ " + t.Organization,
		m.styles.Muted.Render(t.Period + " · " + t.Location),
		wrap(t.Description),
		m.styles.Tag.Render(strings.Join(t.Subjects, " · ")),
	}, "\n")
}

func (m *Model) renderFilters(key string, categories []string, active string) string {
	tabs := make([]string, len(categories))
	for i, c := range categories {
		if c == active {
			tabs[i] = m.styles.Active.Render(c)
		} else {
			tabs[i] = m.styles.Inactive.Render(c)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + m.styles.Muted.Render("  ("+key+")")
}

func (m *Model) renderProjects() string {
	lines := []string{
		m.styles.Heading.Render("Projects"),
		m.renderFilters("f", m.projects.Categories(), m.projects.Active()),
	}
	visible := m.projects.Visible()
	if len(visible) == 0 {
		lines = append(lines, m.styles.Muted.Render("No projects in this category."))
	}
	for _, p := range visible {
		lines = append(lines,
			m.styles.Accent.Render(p.Title)+m.styles.Muted.Render("  "+p.Category+" · "+p.Status),
			wrap(p.Description),
			m.styles.Tag.Render(strings.Join(p.Tags, ", ")),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderPublications() string {
	lines := []string{
		m.styles.Heading.Render("Publications"),
		m.renderFilters("p", m.publications.Categories(), m.publications.Active()),
	}
	visible := m.publications.Visible()
	if len(visible) == 0 {
		lines = append(lines, m.styles.Muted.Render("No publications in this category."))
	}
	offset := len(m.cat.Experience)
	for _, p := range visible {
		i := offset + m.publicationIndex(p.ID)
		card := m.cards[i]
		entry := []string{
			m.styles.Accent.Render(p.Title),
			m.styles.Muted.Render(p.Venue + " · " + p.Year + " · " + p.Type),
		}
		if card.Expanded() {
			entry = append(entry, wrap(p.Authors), wrap(p.Abstract))
		}
		entry = append(entry, m.styles.Muted.Render(fmt.Sprintf("[%d] %s", i+1, card.Label())))
		lines = append(lines, m.styles.Card.Render(strings.Join(entry, "\n")))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) publicationIndex(id string) int {
	for i, p := range m.cat.Publications {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func (m *Model) renderNews() string {
	lines := []string{
		m.styles.Heading.Render("News"),
		m.renderFilters("n", m.news.Categories(), m.news.Active()),
	}
	visible := m.news.Visible()
	if len(visible) == 0 {
		lines = append(lines, m.styles.Muted.Render("No news in this category."))
	}
	for _, n := range visible {
		lines = append(lines,
			m.styles.Accent.Render(n.Title)+m.styles.Muted.Render("  "+n.Date+" · "+n.Category),
			wrap(n.Excerpt),
		)
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderTestimonial() string {
	t := m.cat.Testimonials[m.carousel.Index()]
	return strings.Join([]string{
		m.styles.Heading.Render("Testimonials"),
		wrap("“" + t.Quote + "”"),
		m.styles.Accent.Render(t.Author) + m.styles.Muted.Render(", "+t.Role+" at "+t.Company),
		m.styles.Tag.Render(strings.Repeat("★", max(t.Rating, 0))),
		m.styles.Muted.Render(fmt.Sprintf("%d / %d", m.carousel.Index()+1, m.carousel.Len())),
	}, "\n")
}

func (m *Model) renderContact() string {
	st := m.form.State()
	lines := []string{m.styles.Heading.Render("Get In Touch")}
	for _, l := range m.cat.ContactInfo {
		lines = append(lines, m.styles.Muted.Render(l.Label+": "+l.Value))
	}

	switch {
	case st.Submitted:
		return strings.Join(append(lines, m.styles.Success.Render("Thank you for your message! I'll get back to you soon.")), "\n")
	case st.Submitting:
		lines = append(lines, m.styles.Accent.Render("Sending..."))
	}

	for i, name := range ui.ContactFields {
		label := fmt.Sprintf("%-8s ", strings.ToUpper(name[:1])+name[1:]+":")
		value := m.form.Get(name)
		if m.editing && i == m.field {
			lines = append(lines, m.styles.Focused.Render(label+value+"▌"))
			continue
		}
		lines = append(lines, label+value)
	}

	switch {
	case st.Err != nil:
		lines = append(lines, m.styles.Error.Render("Sorry, there was an error sending your message. Please try again later."))
	case m.formErr != "":
		lines = append(lines, m.styles.Error.Render(m.formErr))
	case !m.editing:
		lines = append(lines, m.styles.Muted.Render("Press c to write a message."))
	}
	return strings.Join(lines, "\n")
}

func wrap(s string) string {
	return lipgloss.NewStyle().Width(wrapWidth).Render(s)
}

func spaced(cells []string) []string {
	out := make([]string, 0, 2*len(cells))
	for i, c := range cells {
		if i > 0 {
			out = append(out, "  ")
		}
		out = append(out, c)
	}
	return out
}
