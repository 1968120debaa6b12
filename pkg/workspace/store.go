package workspace

import (
	"math"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/protoboard/protoboard/pkg/catalog"
	"github.com/protoboard/protoboard/pkg/observability"
)

// Split ratio bounds and default.
const (
	MinSplitRatio     = 0.2
	MaxSplitRatio     = 0.8
	DefaultSplitRatio = 0.5
)

// Listener receives the store state after a mutation.
type Listener func(Snapshot)

// Store is the placement store. All methods are safe for concurrent use.
type Store struct {
	cat   *catalog.Catalog
	rand  func() float64
	newID func(moduleID string) string

	mu      sync.RWMutex
	boardID string
	modules []PlacedModule
	view    View
	split   float64
	rev     uint64

	subMu     sync.Mutex
	listeners []listenerEntry
	nextSub   int

	// emitMu is acquired before mu is released so listeners observe
	// mutations in commit order.
	emitMu sync.Mutex
}

type listenerEntry struct {
	id int
	fn Listener
}

// Option configures a Store.
type Option func(*Store)

// WithRand sets the source of uniform [0, 1) values used to place new
// modules.
func WithRand(fn func() float64) Option {
	return func(s *Store) {
		if fn != nil {
			s.rand = fn
		}
	}
}

// WithIDGenerator overrides instance id generation.
func WithIDGenerator(fn func(moduleID string) string) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// New creates a store on the catalog's default board in split view.
func New(cat *catalog.Catalog, opts ...Option) *Store {
	if cat == nil {
		cat = catalog.Default()
	}
	s := &Store{
		cat:   cat,
		rand:  rand.Float64,
		newID: newInstanceID,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.resetLocked()
	return s
}

func newInstanceID(moduleID string) string {
	return moduleID + "-" + uuid.NewString()
}

func (s *Store) resetLocked() {
	s.boardID = s.cat.DefaultBoard().ID
	s.modules = nil
	s.view = ViewSplit
	s.split = DefaultSplitRatio
}

// Catalog returns the catalog the store resolves boards against.
func (s *Store) Catalog() *catalog.Catalog { return s.cat }

// BoardID returns the selected board id.
func (s *Store) BoardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boardID
}

// Board returns the selected board, or the catalog default when the
// selected id is unknown.
func (s *Store) Board() catalog.Board {
	return s.cat.BoardOrDefault(s.BoardID())
}

// SetBoard selects a board and drops every placed module whose
// compatibility list does not include it. Unknown ids are accepted.
func (s *Store) SetBoard(boardID string) {
	s.mu.Lock()
	s.boardID = boardID
	before := len(s.modules)
	s.modules = slices.DeleteFunc(s.modules, func(m PlacedModule) bool {
		return !m.CompatibleWith(boardID)
	})
	pruned := before - len(s.modules)
	if pruned > 0 {
		observability.Workspace().OnPruned(boardID, pruned)
	}
	s.commitLocked("set_board")
}

// AddModule places a new instance of module at a random position on the
// current board. Compatibility is not checked.
func (s *Store) AddModule(module catalog.ModuleMetadata) PlacedModule {
	s.mu.Lock()
	b := s.cat.BoardOrDefault(s.boardID)
	pm := PlacedModule{
		ModuleMetadata: module.Clone(),
		InstanceID:     s.newID(module.ID),
		Position: Vec3{
			X: s.rand()*b.Dimensions.Width - b.Dimensions.Width/2,
			Y: s.rand()*b.Dimensions.Height - b.Dimensions.Height/2,
		},
	}
	s.modules = append(s.modules, pm)
	s.commitLocked("add")
	return pm.Clone()
}

// RemoveModule removes a placed module. It reports false if no module has
// that instance id.
func (s *Store) RemoveModule(instanceID string) bool {
	s.mu.Lock()
	i := s.indexLocked(instanceID)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	s.modules = slices.Delete(s.modules, i, i+1)
	s.commitLocked("remove")
	return true
}

// UpdateModuleTransform applies a partial position/rotation update. Axes
// missing from the patch keep their values. It reports false if no module
// has that instance id.
func (s *Store) UpdateModuleTransform(instanceID string, patch TransformPatch) bool {
	_, ok := s.TransformModule(instanceID, patch)
	return ok
}

// TransformModule is UpdateModuleTransform returning a copy of the module
// as it was right after the update.
func (s *Store) TransformModule(instanceID string, patch TransformPatch) (PlacedModule, bool) {
	s.mu.Lock()
	i := s.indexLocked(instanceID)
	if i < 0 {
		s.mu.Unlock()
		return PlacedModule{}, false
	}
	patch.Position.apply(&s.modules[i].Position)
	patch.Rotation.apply(&s.modules[i].Rotation)
	updated := s.modules[i].Clone()
	s.commitLocked("transform")
	return updated, true
}

// SetWorkspaceView selects the visible view. Invalid values are ignored;
// use ParseView on untrusted input.
func (s *Store) SetWorkspaceView(v View) {
	if !v.valid() {
		return
	}
	s.mu.Lock()
	s.view = v
	s.commitLocked("set_view")
}

// SetSplitRatio sets the schematic share of a split view, clamped to
// [MinSplitRatio, MaxSplitRatio].
func (s *Store) SetSplitRatio(r float64) {
	if math.IsNaN(r) {
		r = DefaultSplitRatio
	}
	s.mu.Lock()
	s.split = min(MaxSplitRatio, max(MinSplitRatio, r))
	s.commitLocked("set_split")
}

// Reset restores the default board, split view and ratio, and removes
// every placed module.
func (s *Store) Reset() {
	s.mu.Lock()
	s.resetLocked()
	s.commitLocked("reset")
}

// Snapshot returns a deep copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Module returns a copy of the placed module with the given instance id.
func (s *Store) Module(instanceID string) (PlacedModule, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(instanceID)
	if i < 0 {
		return PlacedModule{}, false
	}
	return s.modules[i].Clone(), true
}

// Subscribe registers fn to be called with a fresh snapshot after every
// mutation. Listeners run synchronously in registration order, outside the
// store lock, and see mutations in the order they were applied. A listener
// may read the store but must not mutate it. The returned function
// unregisters fn.
func (s *Store) Subscribe(fn Listener) (cancel func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.listeners = append(s.listeners, listenerEntry{id: id, fn: fn})

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			defer s.subMu.Unlock()
			s.listeners = slices.DeleteFunc(s.listeners, func(e listenerEntry) bool {
				return e.id == id
			})
		})
	}
}

// commitLocked releases mu, which the caller holds, and delivers the new
// state to listeners.
func (s *Store) commitLocked(op string) {
	s.rev++
	snap := s.snapshotLocked()
	s.emitMu.Lock()
	s.mu.Unlock()
	defer s.emitMu.Unlock()

	observability.Workspace().OnMutation(op, len(snap.Modules))

	s.subMu.Lock()
	listeners := slices.Clone(s.listeners)
	s.subMu.Unlock()
	for _, l := range listeners {
		l.fn(snap)
	}
}

func (s *Store) indexLocked(instanceID string) int {
	return slices.IndexFunc(s.modules, func(m PlacedModule) bool {
		return m.InstanceID == instanceID
	})
}

func (s *Store) snapshotLocked() Snapshot {
	mods := make([]PlacedModule, len(s.modules))
	for i, m := range s.modules {
		mods[i] = m.Clone()
	}
	return Snapshot{
		BoardID:    s.boardID,
		Modules:    mods,
		View:       s.view,
		SplitRatio: s.split,
		Revision:   s.rev,
	}
}
