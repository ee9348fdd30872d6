package frame

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// TimeoutMessage replaces a frame that never finished loading.
const TimeoutMessage = "This website took too long to respond"

// LoadedMsg reports the outcome of the load started for Generation.
type LoadedMsg struct {
	Generation uint64
	Content    *Content
	Err        error
}

// TimeoutMsg fires when the load for Generation exceeded the timeout.
type TimeoutMsg struct {
	Generation uint64
}

// Presenter shows one URL at a time through a Surface. Every Load starts a
// new generation; messages from older generations are discarded, so a page
// is always rebuilt from scratch, even when reloading the same URL.
type Presenter struct {
	surface Surface
	sandbox Sandbox
	timeout time.Duration
	logger  logrus.FieldLogger

	generation uint64
	url        string
	state      LoadState
	content    *Content
	cancel     context.CancelFunc
}

// Option configures a Presenter.
type Option func(*Presenter)

// WithSandbox sets the frame's capability set.
func WithSandbox(s Sandbox) Option {
	return func(p *Presenter) {
		p.sandbox = s
	}
}

// WithTimeout bounds how long a generation may stay Loading. Zero or a
// negative value waits indefinitely.
func WithTimeout(d time.Duration) Option {
	return func(p *Presenter) {
		p.timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Presenter) {
		p.logger = l
	}
}

// NewPresenter creates an idle presenter.
func NewPresenter(s Surface, opts ...Option) *Presenter {
	p := &Presenter{
		surface: s,
		sandbox: DefaultSandbox(),
		logger:  logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = p.logger.WithField("component", "frame")
	return p
}

// Load starts a new generation showing url and returns the command that
// performs it. The previous generation's load is canceled.
func (p *Presenter) Load(url string, width int) tea.Cmd {
	if p.cancel != nil {
		p.cancel()
	}
	p.generation++
	p.url = url
	p.content = nil
	p.state = LoadState{Phase: Loading}

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	gen := p.generation
	surface := p.surface
	sandbox := p.sandbox
	p.logger.WithFields(logrus.Fields{"url": url, "generation": gen}).Debug("frame load started")

	load := func() tea.Msg {
		content, err := surface.Load(ctx, url, sandbox, width)
		return LoadedMsg{Generation: gen, Content: content, Err: err}
	}
	if p.timeout <= 0 {
		return load
	}
	timeout := tea.Tick(p.timeout, func(time.Time) tea.Msg {
		return TimeoutMsg{Generation: gen}
	})
	return tea.Batch(load, timeout)
}

// Handle applies a LoadedMsg or TimeoutMsg belonging to the current
// generation. It reports whether the state changed.
func (p *Presenter) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case LoadedMsg:
		if !p.current(msg.Generation) {
			return false
		}
		p.release()
		if msg.Err != nil {
			p.logger.WithError(msg.Err).WithField("url", p.url).Warn("frame load failed")
			p.state = LoadState{Phase: Errored, Message: DeniedMessage, Cause: msg.Err}
			return true
		}
		p.content = msg.Content
		p.state = LoadState{Phase: Loaded}
		return true

	case TimeoutMsg:
		if !p.current(msg.Generation) {
			return false
		}
		p.release()
		p.logger.WithFields(logrus.Fields{"url": p.url, "timeout": p.timeout}).Warn("frame load timed out")
		p.state = LoadState{
			Phase:   Errored,
			Message: TimeoutMessage,
			Cause:   fmt.Errorf("no response within %s: %w", p.timeout, context.DeadlineExceeded),
		}
		return true
	}
	return false
}

// current reports whether gen is the live generation and still loading.
func (p *Presenter) current(gen uint64) bool {
	return gen == p.generation && p.state.Phase == Loading
}

func (p *Presenter) release() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Generation returns the current generation; it increases on every Load.
func (p *Presenter) Generation() uint64 {
	return p.generation
}

// State returns the load state of the current generation.
func (p *Presenter) State() LoadState {
	return p.state
}

// Content returns the loaded content, or nil unless the state is Loaded.
func (p *Presenter) Content() *Content {
	return p.content
}

// URL returns the URL of the current generation.
func (p *Presenter) URL() string {
	return p.url
}

// Close cancels any in-flight load.
func (p *Presenter) Close() {
	p.release()
}
