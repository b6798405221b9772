package content

// Profile is the person the page is about.
type Profile struct {
	Name     string   `yaml:"name" json:"name"`
	Role     string   `yaml:"role" json:"role"`
	Headline string   `yaml:"headline" json:"headline"`
	Summary  string   `yaml:"summary" json:"summary"`
	Location string   `yaml:"location" json:"location"`
	Email    string   `yaml:"email" json:"email"`
	Phone    string   `yaml:"phone" json:"phone"`
	Bio      []string `yaml:"bio" json:"bio"`
	Skills   []string `yaml:"skills" json:"skills"`
	Tagline  string   `yaml:"tagline" json:"tagline"`
}

// Link is an external profile or contact anchor.
type Link struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Stat is a number shown on an animated stat card.
type Stat struct {
	Label  string `yaml:"label" json:"label"`
	Value  int    `yaml:"value" json:"value"`
	Suffix string `yaml:"suffix" json:"suffix"`
}

// TextStat is a stat shown verbatim, without animation.
type TextStat struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

type Service struct {
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Features    []string `yaml:"features" json:"features"`
}

type Experience struct {
	ID           string   `yaml:"id" json:"id"`
	Title        string   `yaml:"title" json:"title"`
	Company      string   `yaml:"company" json:"company"`
	Location     string   `yaml:"location" json:"location"`
	Period       string   `yaml:"period" json:"period"`
	Type         string   `yaml:"type" json:"type"`
	Description  string   `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Technologies []string `yaml:"technologies" json:"technologies"`
}

type Education struct {
	Degree      string `yaml:"degree" json:"degree"`
	Institution string `yaml:"institution" json:"institution"`
	Location    string `yaml:"location" json:"location"`
	Period      string `yaml:"period" json:"period"`
}

type Teaching struct {
	Title        string   `yaml:"title" json:"title"`
	Organization string   `yaml:"organization" json:"organization"`
	Period       string   `yaml:"period" json:"period"`
	Location     string   `yaml:"location" json:"location"`
	Description  string   `yaml:"description" json:"description"`
	Achievements []string `yaml:"achievements" json:"achievements"`
	Subjects     []string `yaml:"subjects" json:"subjects"`
	Philosophy   string   `yaml:"philosophy" json:"philosophy"`
	Stats        []Stat   `yaml:"stats" json:"stats"`
}

type Project struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Category    string   `yaml:"category" json:"category"`
	Description string   `yaml:"description" json:"description"`
	Image       string   `yaml:"image" json:"image"`
	Tags        []string `yaml:"tags" json:"tags"`
	Date        string   `yaml:"date" json:"date"`
	Team        string   `yaml:"team" json:"team"`
	GitHub      string   `yaml:"github" json:"github"`
	Demo        string   `yaml:"demo" json:"demo"`
	Status      string   `yaml:"status" json:"status"`
}

type Publication struct {
	ID        string   `yaml:"id" json:"id"`
	Title     string   `yaml:"title" json:"title"`
	Venue     string   `yaml:"venue" json:"venue"`
	Year      string   `yaml:"year" json:"year"`
	Type      string   `yaml:"type" json:"type"`
	Authors   string   `yaml:"authors" json:"authors"`
	Citations int      `yaml:"citations" json:"citations"`
	Impact    string   `yaml:"impact" json:"impact"`
	URL       string   `yaml:"url" json:"url"`
	Abstract  string   `yaml:"abstract" json:"abstract"`
	Tags      []string `yaml:"tags" json:"tags"`
}

type NewsItem struct {
	Title    string   `yaml:"title" json:"title"`
	Category string   `yaml:"category" json:"category"`
	Date     string   `yaml:"date" json:"date"`
	Excerpt  string   `yaml:"excerpt" json:"excerpt"`
	Tags     []string `yaml:"tags" json:"tags"`
	Type     string   `yaml:"type" json:"type"`
	Link     string   `yaml:"link" json:"link"`
}

type Testimonial struct {
	Quote   string `yaml:"quote" json:"quote"`
	Author  string `yaml:"author" json:"author"`
	Role    string `yaml:"role" json:"role"`
	Company string `yaml:"company" json:"company"`
	Avatar  string `yaml:"avatar" json:"avatar"`
	Rating  int    `yaml:"rating" json:"rating"`
	Project string `yaml:"project" json:"project"`
}

type NavItem struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

type FooterGroup struct {
	Title string    `yaml:"title" json:"title"`
	Links []NavItem `yaml:"links" json:"links"`
}

// Filters are the category buttons offered above each filterable list.
type Filters struct {
	Projects     []string `yaml:"projects" json:"projects"`
	Publications []string `yaml:"publications" json:"publications"`
	News         []string `yaml:"news" json:"news"`
}
