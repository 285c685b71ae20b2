// Package router implements the Tausch homomorphic message router. Each
// subscriber holds a Damgård–Jurik keypair and publishes a subscription: one
// encrypted selector per participant, under the subscriber's own key. Every
// round, each participant queues one integer message; routing computes, per
// recipient, the homomorphic linear combination of all queued messages with
// the recipient's selectors, without the router learning who listens to whom.
package router

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"

	"github.com/zeebo/blake3"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/tausch-project/tausch/bigint"
	"github.com/tausch-project/tausch/dj"
)

var (
	// ErrDuplicateUser is returned when adding a user that is already present.
	ErrDuplicateUser = errors.New("router: user already present")

	// ErrUnknownUser is returned when referencing a user that is not present.
	ErrUnknownUser = errors.New("router: unknown user")

	// ErrDuplicateQueued is returned when a user queues twice in one round.
	ErrDuplicateQueued = errors.New("router: user has already submitted a message for this round")

	// ErrIncompleteQueue is returned by RouteMessages before every user has
	// queued a message.
	ErrIncompleteQueue = errors.New("router: not all users have submitted messages")

	// ErrTypeMismatch is returned when a subscription entry is missing its
	// ciphertext.
	ErrTypeMismatch = errors.New("router: subscription entries must map users to ciphertexts")

	// ErrSubscriptionMismatch is returned when a subscription does not select
	// exactly one ciphertext per participant.
	ErrSubscriptionMismatch = errors.New("router: mismatch between subscription users and routing table users")
)

// KeyID is a stable opaque subscriber identity, the BLAKE3 digest of the
// public modulus. Maps keyed by it never hash large integers.
type KeyID [32]byte

// IDForKey derives the identity of a public key.
func IDForKey(pk *dj.PublicKey) KeyID {
	return blake3.Sum256(pk.N.Bytes())
}

func (id KeyID) String() string {
	return hex.EncodeToString(id[:8])
}

// Event identifies a membership change delivered to callbacks.
type Event string

const (
	EventAdd Event = "add"
	EventDel Event = "del"
)

// Callback observes membership changes. Callbacks run after the state change
// has committed and after the router lock has been released, so a callback
// may re-enter the router, typically to publish a refreshed subscription.
type Callback func(event Event, user KeyID) error

// Subscription maps every participant to an encrypted selector under the
// subscribing user's key.
type Subscription map[KeyID]*dj.Ciphertext

// Router is a homomorphic message router. All methods are safe for
// concurrent use; operations are linearizable with respect to the internal
// lock.
type Router struct {
	mu        sync.Mutex
	table     map[KeyID]Subscription
	queue     map[KeyID]*bigint.Int
	callbacks map[KeyID]Callback
	keys      map[KeyID]*dj.PublicKey
}

// New returns an empty router.
func New() *Router {
	return &Router{
		table:     make(map[KeyID]Subscription),
		queue:     make(map[KeyID]*bigint.Int),
		callbacks: make(map[KeyID]Callback),
		keys:      make(map[KeyID]*dj.PublicKey),
	}
}

// AddUser registers a new participant and its membership callback, and
// notifies every registered callback (including the new one) of the
// addition. Callback errors do not affect router state; they are aggregated
// into the returned error.
func (r *Router) AddUser(pk *dj.PublicKey, cb Callback) (KeyID, error) {
	id := IDForKey(pk)

	r.mu.Lock()
	if _, ok := r.table[id]; ok {
		r.mu.Unlock()
		return id, ErrDuplicateUser
	}
	r.table[id] = Subscription{}
	r.callbacks[id] = cb
	r.keys[id] = pk
	listeners := r.snapshotCallbacksLocked()
	r.mu.Unlock()

	return id, dispatch(listeners, EventAdd, id)
}

// DelUser removes a participant from the table, the queue, the callback
// registry and from every remaining subscription, then notifies the
// remaining callbacks of the removal.
func (r *Router) DelUser(user KeyID) error {
	r.mu.Lock()
	if _, ok := r.table[user]; !ok {
		r.mu.Unlock()
		return ErrUnknownUser
	}
	delete(r.table, user)
	delete(r.queue, user)
	delete(r.callbacks, user)
	delete(r.keys, user)
	for _, sub := range r.table {
		delete(sub, user)
	}
	listeners := r.snapshotCallbacksLocked()
	r.mu.Unlock()

	return dispatch(listeners, EventDel, user)
}

// UpdateSubscription replaces the user's subscription. The subscription must
// select exactly one ciphertext per current participant (including the user
// itself), every selector encrypted under the user's own key. The router
// treats the ciphertexts as frozen and never mutates them.
func (r *Router) UpdateSubscription(user KeyID, sub Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.table[user]; !ok {
		return ErrUnknownUser
	}
	if err := r.checkSubscriptionLocked(user, sub); err != nil {
		return err
	}
	r.table[user] = maps.Clone(sub)
	return nil
}

// QueueMessage stores the user's message for the current round. It reports
// whether the queue is now full, i.e. every participant has queued.
func (r *Router) QueueMessage(user KeyID, message *bigint.Int) (bool, error) {
	if message == nil {
		return false, ErrTypeMismatch
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.table[user]; !ok {
		return false, ErrUnknownUser
	}
	if _, ok := r.queue[user]; ok {
		return false, ErrDuplicateQueued
	}
	r.queue[user] = bigint.Copy(message)
	return len(r.queue) == len(r.table), nil
}

// RouteMessages computes, for every recipient R, the ciphertext
//
//	out[R] = sum over senders S of table[R][S] * queue[S]
//
// under R's key, then clears the queue. It requires a full queue and a
// consistent routing table.
func (r *Router) RouteMessages() (map[KeyID]*dj.Ciphertext, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.checkConsistencyLocked(); err != nil {
		return nil, err
	}
	if len(r.queue) != len(r.table) {
		return nil, ErrIncompleteQueue
	}

	users := r.sortedUsersLocked()
	out := make(map[KeyID]*dj.Ciphertext, len(users))
	for _, recipient := range users {
		sub := r.table[recipient]
		var acc *dj.Ciphertext
		for _, sender := range users {
			// operate on a cache-less view so published ciphertexts stay frozen
			term := sub[sender].WithoutCache().MulScalar(r.queue[sender])
			if acc == nil {
				acc = term
				continue
			}
			var err error
			if acc, err = acc.Add(term); err != nil {
				return nil, err
			}
		}
		out[recipient] = acc
	}
	r.queue = make(map[KeyID]*bigint.Int)
	return out, nil
}

// Users returns the current participants in stable sorted order.
func (r *Router) Users() []KeyID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sortedUsersLocked()
}

// KeyOf returns the public key registered for a participant.
func (r *Router) KeyOf(user KeyID) (*dj.PublicKey, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pk, ok := r.keys[user]
	return pk, ok
}

func (r *Router) sortedUsersLocked() []KeyID {
	users := maps.Keys(r.table)
	slices.SortFunc(users, func(a, b KeyID) int {
		return bytes.Compare(a[:], b[:])
	})
	return users
}

// checkSubscriptionLocked validates shape, domain and key ownership of a
// subscription for the given user.
func (r *Router) checkSubscriptionLocked(user KeyID, sub Subscription) error {
	if len(sub) != len(r.table) {
		return ErrSubscriptionMismatch
	}
	pk := r.keys[user]
	for target, selector := range sub {
		if _, ok := r.table[target]; !ok {
			return ErrSubscriptionMismatch
		}
		if selector == nil {
			return ErrTypeMismatch
		}
		if !belongsTo(selector, pk) {
			return fmt.Errorf("%w: selector for %s is not under the subscriber's key", dj.ErrKeyMismatch, target)
		}
	}
	return nil
}

// checkConsistencyLocked verifies the full routing table invariant: every
// subscription selects one ciphertext per participant under its owner's key.
func (r *Router) checkConsistencyLocked() error {
	for user, sub := range r.table {
		if err := r.checkSubscriptionLocked(user, sub); err != nil {
			return err
		}
	}
	return nil
}

// belongsTo reports whether the ciphertext modulus is n^(s+1) for the
// key's modulus n.
func belongsTo(ct *dj.Ciphertext, pk *dj.PublicKey) bool {
	m := bigint.NewInt(1)
	for i := 0; i < ct.S()+1; i++ {
		m.Mul(m, pk.N)
	}
	return m.EqualTo(ct.Modulus())
}

// snapshotCallbacksLocked captures the callback set in stable order for
// dispatch after the lock is released.
func (r *Router) snapshotCallbacksLocked() []Callback {
	users := r.sortedUsersLocked()
	listeners := make([]Callback, 0, len(users))
	for _, u := range users {
		listeners = append(listeners, r.callbacks[u])
	}
	return listeners
}

// dispatch invokes every callback, continuing past failures, and returns
// the aggregated callback errors.
func dispatch(listeners []Callback, event Event, user KeyID) error {
	var errs []error
	for _, cb := range listeners {
		if cb == nil {
			continue
		}
		if err := cb(event, user); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
