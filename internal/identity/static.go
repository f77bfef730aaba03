package identity

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// StaticProvider is an in-process Provider for tests and local development.
// SignIn stands in for the external provider completing authentication.
type StaticProvider struct {
	mu   sync.Mutex
	user *User
	subs map[string]func(User, bool)
}

// NewStaticProvider creates a signed-out static provider.
func NewStaticProvider() *StaticProvider {
	return &StaticProvider{
		subs: make(map[string]func(User, bool)),
	}
}

// SignIn sets the current user and notifies subscribers. A blank id gets a
// generated one, matching providers that mint opaque subject ids.
func (p *StaticProvider) SignIn(u User) User {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	p.mu.Lock()
	p.user = &u
	fns := p.snapshotSubs()
	p.mu.Unlock()
	for _, fn := range fns {
		fn(u, true)
	}
	return u
}

// CurrentUser returns the signed-in user, if any.
func (p *StaticProvider) CurrentUser(ctx context.Context) (User, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.user == nil {
		return User{}, false
	}
	return *p.user, true
}

// OnAuthChange registers fn for sign-in/out transitions.
func (p *StaticProvider) OnAuthChange(fn func(User, bool)) func() {
	id := uuid.NewString()
	p.mu.Lock()
	p.subs[id] = fn
	p.mu.Unlock()
	return func() {
		p.mu.Lock()
		delete(p.subs, id)
		p.mu.Unlock()
	}
}

// SignOut clears the session and notifies subscribers.
func (p *StaticProvider) SignOut(ctx context.Context) error {
	p.mu.Lock()
	var prev User
	had := p.user != nil
	if had {
		prev = *p.user
	}
	p.user = nil
	fns := p.snapshotSubs()
	p.mu.Unlock()
	if had {
		for _, fn := range fns {
			fn(prev, false)
		}
	}
	return nil
}

// snapshotSubs must be called with p.mu held.
func (p *StaticProvider) snapshotSubs() []func(User, bool) {
	out := make([]func(User, bool), 0, len(p.subs))
	for _, fn := range p.subs {
		out = append(out, fn)
	}
	return out
}
