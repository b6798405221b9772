package ui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/schedule"
)

func fill(t *testing.T, f *ContactForm) {
	t.Helper()
	require.NoError(t, f.Set("name", "Ada"))
	require.NoError(t, f.Set("email", "ada@example.com"))
	require.NoError(t, f.Set("subject", "Project inquiry"))
	require.NoError(t, f.Set("message", "Let's build something."))
}

func TestContactForm_SubmitLifecycle(t *testing.T) {
	f := schedule.NewFake()
	var sent []contact.Submission
	form := NewContactForm(f, WithSender(func(s contact.Submission) error {
		sent = append(sent, s)
		return nil
	}))
	fill(t, form)

	require.NoError(t, form.Submit())
	st := form.State()
	assert.True(t, st.Submitting)
	assert.False(t, st.Submitted)
	assert.ErrorIs(t, form.Submit(), ErrBusy)

	f.Advance(1999 * time.Millisecond)
	assert.True(t, form.State().Submitting)
	assert.Empty(t, sent)

	f.Advance(time.Millisecond)
	st = form.State()
	assert.False(t, st.Submitting)
	assert.True(t, st.Submitted)
	require.Len(t, sent, 1)
	assert.Equal(t, "Project inquiry", sent[0].Subject)
	assert.Equal(t, "Ada", form.Get("name"), "fields stay until the reset")

	f.Advance(2999 * time.Millisecond)
	assert.True(t, form.State().Submitted)

	f.Advance(time.Millisecond)
	assert.Equal(t, FormState{}, form.State())
	for _, field := range ContactFields {
		assert.Empty(t, form.Get(field))
	}
	assert.Equal(t, 0, f.Pending())
}

func TestContactForm_IncompleteIsRefused(t *testing.T) {
	f := schedule.NewFake()
	form := NewContactForm(f)
	require.NoError(t, form.Set("name", "Ada"))

	assert.ErrorIs(t, form.Submit(), contact.ErrIncomplete)
	assert.False(t, form.State().Submitting)
	assert.Equal(t, 0, f.Pending())
}

func TestContactForm_UnknownField(t *testing.T) {
	form := NewContactForm(schedule.NewFake())
	assert.Error(t, form.Set("phone", "123"))
	assert.Empty(t, form.Get("phone"))
}

func TestContactForm_SenderFailureKeepsInput(t *testing.T) {
	f := schedule.NewFake()
	form := NewContactForm(f, WithSender(func(contact.Submission) error { return errors.New("smtp down") }))
	fill(t, form)
	require.NoError(t, form.Submit())

	f.Advance(contact.SubmitDelay)
	st := form.State()
	assert.False(t, st.Submitting)
	assert.False(t, st.Submitted)
	assert.EqualError(t, st.Err, "smtp down")
	assert.Equal(t, "Ada", st.Fields.Name)
	assert.Equal(t, 0, f.Pending())

	require.NoError(t, form.Submit(), "retry is allowed")
}

func TestContactForm_CloseCancelsPending(t *testing.T) {
	f := schedule.NewFake()
	form := NewContactForm(f, WithSubmitDelay(10*time.Millisecond), WithResetDelay(10*time.Millisecond))
	var states []FormState
	form.OnChange(func(s FormState) { states = append(states, s) })
	fill(t, form)
	require.NoError(t, form.Submit())

	form.Close()
	assert.Equal(t, 0, f.Pending())
	f.Advance(time.Second)
	assert.Len(t, states, 1, "only the submitting transition happened")
}
