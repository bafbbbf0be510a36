package service

import (
	"sync"

	"github.com/vitrina-solutions/storefront-service/internal/model"
)

// AuthStateNotifier delivers auth-state changes to at most one handler
// at a time. OnChange replaces any previous handler, so a consumer holds
// at most one active subscription.
type AuthStateNotifier struct {
	mu      sync.Mutex
	gen     uint64
	handler func(*model.UserIdentity)
}

func NewAuthStateNotifier() *AuthStateNotifier {
	return &AuthStateNotifier{}
}

// OnChange registers the handler and returns its unsubscribe function.
// Unsubscribe is idempotent and is a no-op once a later OnChange has
// replaced the handler.
func (n *AuthStateNotifier) OnChange(handler func(*model.UserIdentity)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.gen++
	gen := n.gen
	n.handler = handler

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if n.gen == gen {
			n.handler = nil
		}
	}
}

// publish invokes the current handler, if any. identity is nil on logout.
func (n *AuthStateNotifier) publish(identity *model.UserIdentity) {
	if n == nil {
		return
	}
	n.mu.Lock()
	h := n.handler
	n.mu.Unlock()
	if h != nil {
		h(identity)
	}
}
