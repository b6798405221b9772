package ui

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tanimomor/portfolio/internal/contact"
	"github.com/tanimomor/portfolio/internal/schedule"
)

var ErrBusy = errors.New("a submission is already in progress")

// ContactFields lists the form's inputs in tab order.
var ContactFields = []string{"name", "email", "subject", "message"}

// FormState is a snapshot of the contact form.
type FormState struct {
	Fields     contact.Submission
	Submitting bool
	Submitted  bool
	Err        error
}

// ContactForm holds the form's inputs and walks a submission through its
// sending and success phases on the scheduler.
type ContactForm struct {
	sched       schedule.Scheduler
	submitDelay time.Duration
	resetDelay  time.Duration
	send        func(contact.Submission) error

	mu       sync.Mutex
	state    FormState
	gen      uint64
	pending  schedule.Handle
	onChange func(FormState)
}

type FormOption func(*ContactForm)

func WithSubmitDelay(d time.Duration) FormOption {
	return func(f *ContactForm) { f.submitDelay = d }
}

func WithResetDelay(d time.Duration) FormOption {
	return func(f *ContactForm) { f.resetDelay = d }
}

// WithSender hands each submission to send once the submit delay has passed.
// An error keeps the inputs so the visitor can retry.
func WithSender(send func(contact.Submission) error) FormOption {
	return func(f *ContactForm) { f.send = send }
}

func NewContactForm(s schedule.Scheduler, opts ...FormOption) *ContactForm {
	f := &ContactForm{
		sched:       s,
		submitDelay: contact.SubmitDelay,
		resetDelay:  contact.ResetDelay,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// OnChange registers fn to run after every state transition.
func (f *ContactForm) OnChange(fn func(FormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onChange = fn
}

// Set writes one input by name.
func (f *ContactForm) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case "name":
		f.state.Fields.Name = value
	case "email":
		f.state.Fields.Email = value
	case "subject":
		f.state.Fields.Subject = value
	case "message":
		f.state.Fields.Message = value
	default:
		return fmt.Errorf("unknown contact field %q", field)
	}
	return nil
}

// Get reads one input by name.
func (f *ContactForm) Get(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case "name":
		return f.state.Fields.Name
	case "email":
		return f.state.Fields.Email
	case "subject":
		return f.state.Fields.Subject
	case "message":
		return f.state.Fields.Message
	}
	return ""
}

func (f *ContactForm) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Submit refuses incomplete input and overlapping submissions. Otherwise the
// form shows as sending for the submit delay, then as sent for the reset
// delay, then clears.
func (f *ContactForm) Submit() error {
	f.mu.Lock()
	if f.state.Submitting || f.state.Submitted {
		f.mu.Unlock()
		return ErrBusy
	}
	if err := f.state.Fields.Validate(); err != nil {
		f.mu.Unlock()
		return err
	}
	f.state.Submitting = true
	f.state.Err = nil
	gen := f.gen
	snapshot := f.state.Fields
	f.pending = f.sched.After(f.submitDelay, func() { f.sent(gen, snapshot) })
	fn, st := f.onChange, f.state
	f.mu.Unlock()

	notify(fn, st)
	return nil
}

func (f *ContactForm) sent(gen uint64, sub contact.Submission) {
	var err error
	if f.send != nil {
		err = f.send(sub)
	}

	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.state.Submitting = false
	f.pending = nil
	if err != nil {
		f.state.Err = err
	} else {
		f.state.Submitted = true
		f.pending = f.sched.After(f.resetDelay, func() { f.reset(gen) })
	}
	fn, st := f.onChange, f.state
	f.mu.Unlock()

	notify(fn, st)
}

func (f *ContactForm) reset(gen uint64) {
	f.mu.Lock()
	if gen != f.gen {
		f.mu.Unlock()
		return
	}
	f.state = FormState{}
	f.pending = nil
	fn, st := f.onChange, f.state
	f.mu.Unlock()

	notify(fn, st)
}

// Close cancels any pending transition. The current state is kept.
func (f *ContactForm) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gen++
	if f.pending != nil {
		f.pending.Cancel()
		f.pending = nil
	}
}

func notify(fn func(FormState), st FormState) {
	if fn != nil {
		fn(st)
	}
}
