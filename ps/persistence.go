package ps

import (
	"errors"
	"log/slog"
	"os"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/go-git/go-billy/v6/osfs"
	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/cache"
	"github.com/go-git/go-git/v6/storage/filesystem"
	"github.com/go-git/go-git/v6/storage/memory"

	"github.com/nickyhof/PrimitiveDB/core"
)

var (
	ErrNotInitialized = errors.New("persistence layer not initialized")
)

// Store is the raw document primitive: keyed byte documents, read from the
// latest state and replaced as a whole. Apply writes every change of a batch
// together.
type Store interface {
	ReadFile(path string) (data []byte, exists bool, err error)
	Apply(changes []Change, identity core.Identity, message string) (Transaction, error)
	Close() error
}

// Change is a single document write, or a delete when Delete is set.
type Change struct {
	Path   string
	Data   []byte
	Delete bool
}

// Persistence is a Store backed by a Git repository. Every Apply is one
// commit; reads go straight to the HEAD tree.
type Persistence struct {
	repo         *git.Repository
	isMemoryMode bool
	logger       *slog.Logger
}

var _ Store = (*Persistence)(nil)

// IsInitialized returns true if the persistence layer has a valid repository
func (p *Persistence) IsInitialized() bool {
	return p != nil && p.repo != nil
}

// ensureInitialized checks if the persistence layer is initialized and returns an error if not
func (p *Persistence) ensureInitialized() error {
	if !p.IsInitialized() {
		return ErrNotInitialized
	}
	return nil
}

// WithLogger sets the logger used for commit tracing.
func (p *Persistence) WithLogger(logger *slog.Logger) *Persistence {
	p.logger = logger
	return p
}

func (p *Persistence) log() *slog.Logger {
	if p.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return p.logger
}

func NewMemoryPersistence() (*Persistence, error) {
	wt := memfs.New()
	storer := memory.NewStorage()

	repo, err := git.Init(storer, git.WithWorkTree(wt))
	if err != nil {
		return nil, err
	}

	return &Persistence{
		repo:         repo,
		isMemoryMode: true,
	}, nil
}

// NewFilePersistence opens (or initializes) a repository in baseDir. The
// worktree is kept checked out so the documents are readable on disk.
func NewFilePersistence(baseDir string) (*Persistence, error) {
	// Ensure base directory exists
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	wt := osfs.New(baseDir)
	fs, err := wt.Chroot(".git")
	if err != nil {
		return nil, err
	}

	storer := filesystem.NewStorageWithOptions(
		fs,
		cache.NewObjectLRUDefault(),
		filesystem.Options{ExclusiveAccess: true})

	var repo *git.Repository

	_, statErr := os.Stat(fs.Root())
	if statErr != nil {
		// Directory doesn't exist, initialize new repo
		repo, err = git.Init(storer, git.WithWorkTree(wt))
		if err != nil {
			return nil, err
		}
	} else {
		// Directory exists, open existing repo
		repo, err = git.Open(storer, wt)
		if err != nil {
			return nil, err
		}
	}

	return &Persistence{
		repo: repo,
	}, nil
}

// Close is a no-op; go-git keeps no open handles between operations.
func (p *Persistence) Close() error {
	return nil
}
