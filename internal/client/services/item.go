package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dmitrijs2005/itemkeeper/internal/client/client"
	"github.com/dmitrijs2005/itemkeeper/internal/client/models"
	"github.com/dmitrijs2005/itemkeeper/internal/logging"
	"github.com/sethvargo/go-retry"
	"golang.org/x/sync/singleflight"
)

// Snapshot is what observers of the cache see.
type Snapshot struct {
	// Items is sorted by descending ID.
	Items []models.Item
	// Loaded is false until the first successful fetch.
	Loaded bool
	// Err is the last fetch failure; nil after a successful fetch.
	Err       error
	FetchedAt time.Time
	// Stale is true once the cache was invalidated or the window elapsed.
	Stale bool
}

// ItemService keeps the list of items consistent with the remote store.
//
// Contract:
//   - Refresh returns the cached list while it is fresh, otherwise fetches it
//     (with retries) and replaces the cache.
//   - ForceRefresh always fetches.
//   - SubmitCreate/SubmitUpdate/SubmitDelete run one remote mutation each and
//     update the cache according to the configured TrustPolicy.
//   - Subscribe registers an observer called after every cache change.
type ItemService interface {
	Refresh(ctx context.Context) ([]models.Item, error)
	ForceRefresh(ctx context.Context) ([]models.Item, error)
	Items() Snapshot
	Invalidate()
	SubmitCreate(ctx context.Context, draft models.ItemDraft) (models.Item, error)
	SubmitUpdate(ctx context.Context, item models.Item) error
	SubmitDelete(ctx context.Context, id int64) error
	Status(kind MutationKind) MutationState
	Subscribe(fn func(Snapshot)) (unsubscribe func())
}

// fetchResult is shared by every caller waiting on the same fetch.
type fetchResult struct {
	items []models.Item
	at    time.Time
}

type itemService struct {
	client client.Client
	opts   Options
	logger logging.Logger
	group  singleflight.Group

	mu          sync.Mutex
	items       []models.Item
	loaded      bool
	lastErr     error
	fetchedAt   time.Time
	invalid     bool
	generation  uint64
	lastApplied *fetchResult
	appliedGen  uint64
	lastLocalID int64
	states      map[MutationKind]MutationState
	subs        map[int]func(Snapshot)
	nextSub     int
}

// NewItemService constructs an ItemService over the given remote client.
func NewItemService(c client.Client, opts Options, l logging.Logger) ItemService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = time.Millisecond
	}
	if opts.Retries < 0 {
		opts.Retries = 0
	}
	if l == nil {
		l = logging.Nop()
	}
	return &itemService{
		client: c,
		opts:   opts,
		logger: l.With("module", "item_service"),
		states: make(map[MutationKind]MutationState),
		subs:   make(map[int]func(Snapshot)),
	}
}

func (s *itemService) Refresh(ctx context.Context) ([]models.Item, error) {
	return s.refresh(ctx, false)
}

func (s *itemService) ForceRefresh(ctx context.Context) ([]models.Item, error) {
	return s.refresh(ctx, true)
}

func (s *itemService) refresh(ctx context.Context, force bool) ([]models.Item, error) {
	s.mu.Lock()
	if !force && s.isFreshLocked() {
		items := models.Clone(s.items)
		s.mu.Unlock()
		s.logger.Debug(ctx, "refresh served from cache", "items", len(items))
		return items, nil
	}
	gen := s.generation
	s.mu.Unlock()

	// Fetches of one generation are shared. The fetch is detached from this
	// caller's cancellation so other waiters are not affected by it.
	detached := context.WithoutCancel(ctx)
	ch := s.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		return s.fetch(detached)
	})

	select {
	case <-ctx.Done():
		s.logger.Debug(ctx, "refresh discarded", "reason", ctx.Err())
		return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
	case res := <-ch:
		if ctx.Err() != nil {
			s.logger.Debug(ctx, "refresh discarded", "reason", ctx.Err())
			return nil, fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		}
		if res.Err != nil {
			s.applyError(res.Err)
			s.logger.Error(ctx, "refresh failed", "error", res.Err)
			return nil, res.Err
		}
		return s.apply(gen, res.Val.(*fetchResult)), nil
	}
}

// fetch lists the collection, retrying transport failures.
func (s *itemService) fetch(ctx context.Context) (*fetchResult, error) {
	backoff := retry.WithMaxRetries(uint64(s.opts.Retries),
		retry.WithCappedDuration(maxRetryDelay, retry.NewExponential(s.opts.RetryDelay)))

	var items []models.Item
	attempt := 0
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++
		list, err := s.client.List(ctx)
		if err != nil {
			if errors.Is(err, client.ErrTransport) {
				s.logger.Warn(ctx, "list failed", "attempt", attempt, "error", err)
				return retry.RetryableError(err)
			}
			return err
		}
		items = list
		return nil
	})
	if err != nil {
		return nil, err
	}

	models.SortByIDDesc(items)
	s.logger.Info(ctx, "list fetched", "items", len(items), "attempts", attempt)
	return &fetchResult{items: items, at: s.opts.Now()}, nil
}

// apply installs a fetch result and returns the list the caller should see.
// A result started before the last applied one is dropped and the caller gets
// the current cache. The cache is only marked fresh when no invalidation
// happened since the fetch was started.
func (s *itemService) apply(gen uint64, fr *fetchResult) []models.Item {
	s.mu.Lock()
	if s.lastApplied == fr || gen < s.appliedGen {
		items := models.Clone(s.items)
		s.mu.Unlock()
		return items
	}
	s.lastApplied = fr
	s.appliedGen = gen
	s.items = models.Clone(fr.items)
	s.loaded = true
	s.lastErr = nil
	if gen == s.generation {
		s.fetchedAt = fr.at
		s.invalid = false
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
	return models.Clone(fr.items)
}

func (s *itemService) applyError(err error) {
	s.mu.Lock()
	s.lastErr = err
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *itemService) Items() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *itemService) Invalidate() {
	s.mu.Lock()
	s.invalid = true
	s.generation++
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snap)
}

func (s *itemService) SubmitCreate(ctx context.Context, draft models.ItemDraft) (models.Item, error) {
	s.setState(MutationCreate, StateInFlight)

	created, err := s.client.Create(ctx, draft)
	if err != nil {
		s.setState(MutationCreate, StateFailed)
		s.logger.Error(ctx, "create failed", "error", err)
		return models.Item{}, err
	}

	policy := s.opts.Policy.Create
	if !policy.TrustResponse {
		err := s.refetchAfter(ctx, MutationCreate)
		return *created, err
	}

	item := *created
	s.mu.Lock()
	if policy.OverrideID {
		item.ID = s.nextLocalIDLocked()
	}
	s.items = append([]models.Item{item}, without(s.items, item.ID)...)
	models.SortByIDDesc(s.items)
	if !s.loaded {
		// Seeds an empty cache so the item is listed until the next fetch.
		s.loaded = true
		s.fetchedAt = s.opts.Now()
		s.invalid = false
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.setState(MutationCreate, StateSucceeded)
	s.logger.Info(ctx, "item created", "id", item.ID, "server_id", created.ID)
	s.notify(snap)
	return item, nil
}

func (s *itemService) SubmitUpdate(ctx context.Context, item models.Item) error {
	s.setState(MutationUpdate, StateInFlight)

	updated, err := s.client.Update(ctx, item)
	if err != nil {
		s.setState(MutationUpdate, StateFailed)
		s.logger.Error(ctx, "update failed", "id", item.ID, "error", err)
		return err
	}

	if !s.opts.Policy.Update.TrustResponse {
		return s.refetchAfter(ctx, MutationUpdate)
	}

	patched := *updated
	if patched.ID == 0 {
		patched.ID = item.ID
	}
	s.mu.Lock()
	for i := range s.items {
		if s.items[i].ID == patched.ID {
			s.items[i] = patched
		}
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.setState(MutationUpdate, StateSucceeded)
	s.logger.Info(ctx, "item updated", "id", patched.ID)
	s.notify(snap)
	return nil
}

func (s *itemService) SubmitDelete(ctx context.Context, id int64) error {
	s.setState(MutationDelete, StateInFlight)

	if _, err := s.client.Delete(ctx, id); err != nil {
		s.setState(MutationDelete, StateFailed)
		s.logger.Error(ctx, "delete failed", "id", id, "error", err)
		return err
	}

	if !s.opts.Policy.Delete.TrustResponse {
		return s.refetchAfter(ctx, MutationDelete)
	}

	s.mu.Lock()
	s.items = without(s.items, id)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.setState(MutationDelete, StateSucceeded)
	s.logger.Info(ctx, "item deleted", "id", id)
	s.notify(snap)
	return nil
}

// refetchAfter invalidates the cache and waits for an authoritative fetch
// before reporting the mutation as complete.
func (s *itemService) refetchAfter(ctx context.Context, kind MutationKind) error {
	s.Invalidate()
	_, err := s.ForceRefresh(ctx)
	s.setState(kind, StateSucceeded)
	if err != nil {
		s.logger.Warn(ctx, "refresh after mutation failed", "kind", kind, "error", err)
		return fmt.Errorf("%w: %w", ErrRefreshAfterMutation, err)
	}
	s.logger.Info(ctx, "mutation applied", "kind", kind)
	return nil
}

func (s *itemService) Status(kind MutationKind) MutationState {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.states[kind]; ok {
		return st
	}
	return StateIdle
}

func (s *itemService) setState(kind MutationKind, st MutationState) {
	s.mu.Lock()
	s.states[kind] = st
	s.mu.Unlock()
}

func (s *itemService) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *itemService) notify(snap Snapshot) {
	s.mu.Lock()
	fns := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *itemService) isFreshLocked() bool {
	if !s.loaded || s.invalid {
		return false
	}
	return s.opts.Now().Sub(s.fetchedAt) < s.opts.StaleTime
}

func (s *itemService) snapshotLocked() Snapshot {
	return Snapshot{
		Items:     models.Clone(s.items),
		Loaded:    s.loaded,
		Err:       s.lastErr,
		FetchedAt: s.fetchedAt,
		Stale:     !s.isFreshLocked(),
	}
}

// nextLocalIDLocked returns a millisecond timestamp bumped past every id
// handed out before and every cached id, so it is unique and sorts first.
//
// The placeholder backend answers every create with the same id, so created
// items need a client-side id to be told apart in the list.
func (s *itemService) nextLocalIDLocked() int64 {
	id := s.opts.Now().UnixMilli()
	if id <= s.lastLocalID {
		id = s.lastLocalID + 1
	}
	for _, it := range s.items {
		if it.ID >= id {
			id = it.ID + 1
		}
	}
	s.lastLocalID = id
	return id
}

func without(items []models.Item, id int64) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	return out
}
