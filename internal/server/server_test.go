package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanimomor/portfolio/internal/config"
	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/content"
	"github.com/tanimomor/portfolio/internal/schedule"
	"github.com/tanimomor/portfolio/internal/store"
)

var testNow = time.Date(2024, 11, 15, 12, 0, 0, 0, time.UTC)

type failingRelay struct{}

func (failingRelay) Name() string { return "failing" }

func (failingRelay) Deliver(context.Context, contact.Message) error {
	return errors.New("smtp down")
}

type countingRelay struct{ n int }

func (*countingRelay) Name() string { return "counting" }

func (r *countingRelay) Deliver(context.Context, contact.Message) error {
	r.n++
	return nil
}

type testEnv struct {
	srv   *Server
	store *store.Store
	sched *schedule.Fake
}

func newTestEnv(t *testing.T, relays ...contact.Relay) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	if len(relays) == 0 {
		relays = []contact.Relay{contact.Inbox{Store: st}}
	}
	fake := schedule.NewFake()
	srv, err := New(Deps{
		Config: config.Config{
			Port:           "0",
			AdminUsername:  "admin",
			AdminPassword:  "s3cret",
			ContactReset:   3 * time.Second,
			CarouselPeriod: 5 * time.Second,
		},
		Catalog:   content.MustLoad(),
		Store:     st,
		Contact:   contact.NewService(relays, contact.WithDelay(0)),
		Scheduler: fake,
		Now:       func() time.Time { return testNow },
	})
	require.NoError(t, err)
	t.Cleanup(srv.Close)
	return &testEnv{srv: srv, store: st, sched: fake}
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.srv.Handler().ServeHTTP(w, req)
	return w
}

func (e *testEnv) get(path string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (e *testEnv) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func TestIndex_RendersWholePage(t *testing.T) {
	e := newTestEnv(t)
	w := e.get("/")
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Contains(t, body, "Omor Al Tanim")
	assert.Contains(t, body, `hx-get="/hero/role?n=1"`)
	assert.Contains(t, body, "Wafilife AI Support Bot")
	assert.Contains(t, body, "Stock Price Prediction ML")
	assert.Contains(t, body, "1 / 5")
	assert.Contains(t, body, `hx-trigger="every 5000ms"`)
	assert.Contains(t, body, `hx-get="/counters/about/0?step=1"`)
	assert.Contains(t, body, "threshold:0.3 delay:100ms")
	assert.Contains(t, body, "threshold:0.2 delay:100ms")
	assert.Contains(t, body, "Show More Details")
	assert.Contains(t, body, "&copy; 2024")
}

func TestSections_Filter(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/sections/projects?filter=Research")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Stock Price Prediction ML")
	assert.NotContains(t, w.Body.String(), "Quicket Event Ticketing")
	assert.Contains(t, w.Body.String(), `class="filter active"`)

	w = e.get("/sections/publications?filter=Journal")
	assert.Contains(t, w.Body.String(), "No publications in this category.")

	w = e.get("/sections/news?filter=" + url.QueryEscape("Product Launch"))
	assert.Contains(t, w.Body.String(), "AI Support Bot Launched")
	assert.NotContains(t, w.Body.String(), "Co-founded Advance Virtual School")

	w = e.get("/sections/news?filter=research")
	assert.Contains(t, w.Body.String(), "No news in this category.", "matching is case sensitive")

	w = e.get("/sections/hobbies")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCards_Toggle(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/cards/experience/ai-engineer?expanded=true")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Key Achievements")
	assert.Contains(t, w.Body.String(), "Show Less")
	assert.Contains(t, w.Body.String(), "expanded=false")

	w = e.get("/cards/experience/ai-engineer")
	assert.NotContains(t, w.Body.String(), "Key Achievements")
	assert.Contains(t, w.Body.String(), "Show More Details")
	assert.Contains(t, w.Body.String(), "expanded=true")

	w = e.get("/cards/publication/ccwc-2023?expanded=true")
	assert.Contains(t, w.Body.String(), "multi-modal deep learning approach")

	assert.Equal(t, http.StatusNotFound, e.get("/cards/experience/astronaut").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/cards/publication/nope").Code)
}

func TestTestimonials_Wrap(t *testing.T) {
	e := newTestEnv(t)

	assert.Contains(t, e.get("/testimonials?index=4&step=1").Body.String(), "1 / 5")
	assert.Contains(t, e.get("/testimonials?index=0&step=-1").Body.String(), "5 / 5")
	assert.Contains(t, e.get("/testimonials?index=1&step=1").Body.String(), "Dr. Lisa Park")
	assert.Contains(t, e.get("/testimonials?index=-12").Body.String(), "4 / 5")
}

func TestCounter_Steps(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/counters/teaching/0?step=25")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), ">50+<")
	assert.Contains(t, w.Body.String(), "step=26")
	assert.Contains(t, w.Body.String(), "load delay:30ms")

	w = e.get("/counters/teaching/0?step=50")
	assert.Contains(t, w.Body.String(), ">100+<")
	assert.NotContains(t, w.Body.String(), "hx-get")

	w = e.get("/counters/about/0?step=1")
	assert.Contains(t, w.Body.String(), ">0<")
	assert.Contains(t, w.Body.String(), "step=2")

	assert.Contains(t, e.get("/counters/about/0").Body.String(), "intersect once threshold:0.3 delay:0ms")
	assert.Contains(t, e.get("/counters/teaching/0").Body.String(), "intersect once threshold:0.2 delay:0ms")

	assert.Equal(t, http.StatusNotFound, e.get("/counters/about/9").Code)
	assert.Equal(t, http.StatusNotFound, e.get("/counters/hobbies/0").Code)
}

func TestHeroRole_Types(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/hero/role?n=3")
	assert.Contains(t, w.Body.String(), "Ful<span")
	assert.Contains(t, w.Body.String(), "n=4")
	assert.Contains(t, w.Body.String(), "load delay:100ms")

	w = e.get("/hero/role?n=999")
	assert.Contains(t, w.Body.String(), "Fullstack AI Engineer")
	assert.NotContains(t, w.Body.String(), "hx-get")
}

func contactForm() url.Values {
	return url.Values{
		"name":    {"Ada"},
		"email":   {"ada@example.com"},
		"subject": {"Collab"},
		"message": {"Hello there"},
	}
}

func TestContact_SuccessStoresMessage(t *testing.T) {
	e := newTestEnv(t)

	w := e.postForm("/contact", contactForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Thank you for your message!")
	assert.Contains(t, w.Body.String(), `hx-trigger="load delay:3000ms"`)

	msgs, err := e.store.Messages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "Collab", msgs[0].Subject)
}

func TestContact_Rejections(t *testing.T) {
	e := newTestEnv(t)

	form := contactForm()
	form.Set("subject", "")
	w := e.postForm("/contact", form)
	assert.Contains(t, w.Body.String(), msgIncomplete)
	assert.Contains(t, w.Body.String(), `value="ada@example.com"`, "inputs are kept")

	form = contactForm()
	form.Set("email", "not-an-email")
	assert.Contains(t, e.postForm("/contact", form).Body.String(), "valid email")

	n, err := e.store.CountMessages(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestContact_RejectsHeaderLineBreaks(t *testing.T) {
	relay := &countingRelay{}
	e := newTestEnv(t, relay)

	form := contactForm()
	form.Set("subject", "Hi\r\nBcc: victim@example.net")
	w := e.postForm("/contact", form)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "must fit on one line")
	assert.Zero(t, relay.n)
}

func TestContact_RelayFailure(t *testing.T) {
	e := newTestEnv(t, failingRelay{})

	w := e.postForm("/contact", contactForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "error sending your message")
	assert.Contains(t, w.Body.String(), `value="Collab"`)
}

func TestContactForm_Fragment(t *testing.T) {
	e := newTestEnv(t)
	w := e.get("/contact-form")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `hx-post="/contact"`)
}

func TestAPI(t *testing.T) {
	e := newTestEnv(t)

	w := e.get("/api/content")
	require.Equal(t, http.StatusOK, w.Code)
	var cat content.Catalog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cat))
	assert.Equal(t, "Omor Al Tanim", cat.Profile.Name)

	w = e.get("/api/projects?filter=" + url.QueryEscape("AI/Automation"))
	var got struct {
		Filter   string            `json:"filter"`
		Projects []content.Project `json:"projects"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "AI/Automation", got.Filter)
	assert.Len(t, got.Projects, 2)

	w = e.get("/api/projects/quicket")
	require.Equal(t, http.StatusOK, w.Code)
	var p content.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, "Web Development", p.Category)

	w = e.get("/api/projects/nope")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Project not found"}`, w.Body.String())

	w = e.get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestVisitorTracking(t *testing.T) {
	e := newTestEnv(t)

	e.get("/")
	e.get("/static/site.css")
	e.get("/privacy")

	dnt := httptest.NewRequest(http.MethodGet, "/", nil)
	dnt.Header.Set("DNT", "1")
	e.do(dnt)

	frag := httptest.NewRequest(http.MethodGet, "/sections/projects", nil)
	frag.Header.Set("HX-Request", "true")
	e.do(frag)

	e.srv.Close()
	visits, err := e.store.RecentVisits(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "/", visits[0].Path)
	assert.Len(t, visits[0].HashedIP, 16)
	assert.NotContains(t, visits[0].HashedIP, ".")
}

func TestRetention_SweepsOnStartAndDaily(t *testing.T) {
	e := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, e.store.RecordVisit(ctx, store.Visit{HashedIP: "old", Path: "/", Timestamp: testNow.AddDate(-2, 0, 0)}))
	require.NoError(t, e.store.RecordVisit(ctx, store.Visit{HashedIP: "new", Path: "/", Timestamp: testNow}))

	e.srv.startRetention(ctx)
	visits, err := e.store.RecentVisits(ctx, 10)
	require.NoError(t, err)
	require.Len(t, visits, 1)
	assert.Equal(t, "new", visits[0].HashedIP)
	assert.Equal(t, 1, e.sched.Pending())

	require.NoError(t, e.store.RecordVisit(ctx, store.Visit{HashedIP: "older", Path: "/", Timestamp: testNow.AddDate(-3, 0, 0)}))
	e.sched.Advance(retentionSweep)
	visits, err = e.store.RecentVisits(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, visits, 1)

	e.srv.Close()
	assert.Equal(t, 0, e.sched.Pending())
}
