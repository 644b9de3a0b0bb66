package ps

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
	"github.com/go-git/go-git/v6/plumbing/filemode"
	"github.com/go-git/go-git/v6/plumbing/object"

	"github.com/nickyhof/PrimitiveDB/core"
)

// createBlob stores data as a blob object without touching the worktree
func (p *Persistence) createBlob(data []byte) (plumbing.Hash, error) {
	obj := p.repo.Storer.NewEncodedObject()
	obj.SetType(plumbing.BlobObject)
	obj.SetSize(int64(len(data)))

	writer, err := obj.Writer()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to create blob writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return plumbing.ZeroHash, fmt.Errorf("failed to write blob data: %w", err)
	}
	writer.Close()

	hash, err := p.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store blob: %w", err)
	}

	return hash, nil
}

// getCurrentTree returns the HEAD tree hash, or ZeroHash before the first commit.
func (p *Persistence) getCurrentTree() (plumbing.Hash, error) {
	headRef, err := p.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, nil
	}

	commit, err := p.repo.CommitObject(headRef.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to get head commit: %w", err)
	}

	return commit.TreeHash, nil
}

func (p *Persistence) getTreeEntries(treeHash plumbing.Hash) (map[string]object.TreeEntry, error) {
	entries := make(map[string]object.TreeEntry)

	if treeHash == plumbing.ZeroHash {
		return entries, nil
	}

	tree, err := object.GetTree(p.repo.Storer, treeHash)
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}

	for _, entry := range tree.Entries {
		entries[entry.Name] = entry
	}

	return entries, nil
}

func (p *Persistence) buildTreeFromEntries(entries map[string]object.TreeEntry) (plumbing.Hash, error) {
	if len(entries) == 0 {
		return plumbing.ZeroHash, nil
	}

	entrySlice := make([]object.TreeEntry, 0, len(entries))
	for _, entry := range entries {
		entrySlice = append(entrySlice, entry)
	}

	// Git orders directories as if their name had a trailing slash
	sort.Slice(entrySlice, func(i, j int) bool {
		nameI := entrySlice[i].Name
		nameJ := entrySlice[j].Name
		if entrySlice[i].Mode == filemode.Dir {
			nameI += "/"
		}
		if entrySlice[j].Mode == filemode.Dir {
			nameJ += "/"
		}
		return nameI < nameJ
	})

	tree := &object.Tree{Entries: entrySlice}

	obj := p.repo.Storer.NewEncodedObject()
	if err := tree.Encode(obj); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to encode tree: %w", err)
	}

	hash, err := p.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to store tree: %w", err)
	}

	return hash, nil
}

// treeChange is a Change whose data has already been stored as a blob.
type treeChange struct {
	path     string
	blobHash plumbing.Hash
	isDelete bool
}

// batchUpdateTree applies all changes below rootTreeHash, rebuilding each
// touched directory once. Directories left empty are pruned.
func (p *Persistence) batchUpdateTree(rootTreeHash plumbing.Hash, changes []treeChange) (plumbing.Hash, error) {
	if len(changes) == 0 {
		return rootTreeHash, nil
	}

	grouped := make(map[string][]treeChange)
	leafChanges := make([]treeChange, 0)

	for _, change := range changes {
		dir, rest, nested := strings.Cut(change.path, "/")
		if !nested {
			leafChanges = append(leafChanges, change)
			continue
		}
		grouped[dir] = append(grouped[dir], treeChange{
			path:     rest,
			blobHash: change.blobHash,
			isDelete: change.isDelete,
		})
	}

	entries, err := p.getTreeEntries(rootTreeHash)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	for _, change := range leafChanges {
		if change.isDelete {
			delete(entries, change.path)
			continue
		}
		entries[change.path] = object.TreeEntry{
			Name: change.path,
			Mode: filemode.Regular,
			Hash: change.blobHash,
		}
	}

	for dir, subChanges := range grouped {
		subTreeHash := plumbing.ZeroHash
		if existing, ok := entries[dir]; ok && existing.Mode == filemode.Dir {
			subTreeHash = existing.Hash
		}

		newSubTreeHash, err := p.batchUpdateTree(subTreeHash, subChanges)
		if err != nil {
			return plumbing.ZeroHash, err
		}

		if newSubTreeHash == plumbing.ZeroHash {
			delete(entries, dir)
		} else {
			entries[dir] = object.TreeEntry{
				Name: dir,
				Mode: filemode.Dir,
				Hash: newSubTreeHash,
			}
		}
	}

	return p.buildTreeFromEntries(entries)
}

// createCommitDirect commits treeHash on top of HEAD and moves the branch.
func (p *Persistence) createCommitDirect(treeHash plumbing.Hash, identity core.Identity, message string) (Transaction, error) {
	actualTreeHash := treeHash
	if treeHash == plumbing.ZeroHash {
		emptyTree := &object.Tree{Entries: []object.TreeEntry{}}
		obj := p.repo.Storer.NewEncodedObject()
		if err := emptyTree.Encode(obj); err != nil {
			return Transaction{}, fmt.Errorf("failed to encode empty tree: %w", err)
		}
		var err error
		actualTreeHash, err = p.repo.Storer.SetEncodedObject(obj)
		if err != nil {
			return Transaction{}, fmt.Errorf("failed to store empty tree: %w", err)
		}
	}

	var parentHashes []plumbing.Hash
	headRef, err := p.repo.Head()
	if err == nil {
		parentHashes = []plumbing.Hash{headRef.Hash()}
	}

	sig := object.Signature{
		Name:  identity.Name,
		Email: identity.Email,
		When:  time.Now(),
	}

	commit := &object.Commit{
		Author:       sig,
		Committer:    sig,
		Message:      message,
		TreeHash:     actualTreeHash,
		ParentHashes: parentHashes,
	}

	obj := p.repo.Storer.NewEncodedObject()
	if err := commit.Encode(obj); err != nil {
		return Transaction{}, fmt.Errorf("failed to encode commit: %w", err)
	}

	commitHash, err := p.repo.Storer.SetEncodedObject(obj)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to store commit: %w", err)
	}

	branchName := plumbing.Master
	if headRef != nil && headRef.Name().IsBranch() {
		branchName = headRef.Name()
	}

	ref := plumbing.NewHashReference(branchName, commitHash)
	if err := p.repo.Storer.SetReference(ref); err != nil {
		return Transaction{}, fmt.Errorf("failed to update HEAD: %w", err)
	}

	return Transaction{
		Id:     commitHash.String(),
		When:   sig.When,
		Author: fmt.Sprintf("%s <%s>", identity.Name, identity.Email),
	}, nil
}

// syncWorktree checks HEAD out to disk. Memory mode reads the tree directly.
func (p *Persistence) syncWorktree() error {
	if p.isMemoryMode {
		return nil
	}

	wt, err := p.repo.Worktree()
	if err != nil {
		return err
	}

	headRef, err := p.repo.Head()
	if err != nil {
		return err
	}

	commit, err := p.repo.CommitObject(headRef.Hash())
	if err != nil {
		return err
	}

	tree, err := commit.Tree()
	if err != nil {
		return err
	}

	// git reset fails with "base dir cannot be removed" on an empty tree
	if len(tree.Entries) == 0 {
		fs := wt.Filesystem
		entries, err := fs.ReadDir("/")
		if err != nil {
			return nil
		}
		for _, entry := range entries {
			if entry.Name() != ".git" {
				fs.Remove(entry.Name())
			}
		}
		return nil
	}

	return wt.Reset(&git.ResetOptions{
		Mode:   git.HardReset,
		Commit: headRef.Hash(),
	})
}

// Apply writes all changes as a single commit.
func (p *Persistence) Apply(changes []Change, identity core.Identity, message string) (Transaction, error) {
	if err := p.ensureInitialized(); err != nil {
		return Transaction{}, err
	}

	currentTree, err := p.getCurrentTree()
	if err != nil {
		return Transaction{}, err
	}

	treeChanges := make([]treeChange, 0, len(changes))
	for _, change := range changes {
		if change.Delete {
			treeChanges = append(treeChanges, treeChange{path: change.Path, isDelete: true})
			continue
		}

		blobHash, err := p.createBlob(change.Data)
		if err != nil {
			return Transaction{}, fmt.Errorf("failed to create blob for %s: %w", change.Path, err)
		}
		treeChanges = append(treeChanges, treeChange{path: change.Path, blobHash: blobHash})
	}

	newTree, err := p.batchUpdateTree(currentTree, treeChanges)
	if err != nil {
		return Transaction{}, fmt.Errorf("failed to update tree: %w", err)
	}

	txn, err := p.createCommitDirect(newTree, identity, message)
	if err != nil {
		return Transaction{}, err
	}

	if err := p.syncWorktree(); err != nil {
		return Transaction{}, fmt.Errorf("failed to sync worktree: %w", err)
	}

	p.log().Debug("committed", "txn", txn.Id, "message", message, "changes", len(changes))

	return txn, nil
}

// ReadFile reads a document from the HEAD tree. A repository without
// commits, or a missing path, reports exists=false.
func (p *Persistence) ReadFile(filePath string) ([]byte, bool, error) {
	if err := p.ensureInitialized(); err != nil {
		return nil, false, err
	}

	headRef, err := p.repo.Head()
	if err != nil {
		return nil, false, nil
	}

	commit, err := p.repo.CommitObject(headRef.Hash())
	if err != nil {
		return nil, false, fmt.Errorf("failed to get commit: %w", err)
	}

	tree, err := commit.Tree()
	if err != nil {
		return nil, false, fmt.Errorf("failed to get tree: %w", err)
	}

	file, err := tree.File(filePath)
	if err != nil {
		if errors.Is(err, object.ErrFileNotFound) || errors.Is(err, object.ErrDirectoryNotFound) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to find %s: %w", filePath, err)
	}

	content, err := file.Contents()
	if err != nil {
		return nil, false, fmt.Errorf("failed to read contents: %w", err)
	}

	return []byte(content), true, nil
}
