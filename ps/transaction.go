package ps

import (
	"fmt"
	"time"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

type Transaction struct {
	Id     string
	When   time.Time
	Author string // "Name <email>" format
}

func (transaction Transaction) String() string {
	return fmt.Sprintf("Transaction{Id: %s, When: %s, Author: %s}", transaction.Id, transaction.When, transaction.Author)
}

// LatestTransaction returns the HEAD commit, or a zero Transaction before
// the first write.
func (p *Persistence) LatestTransaction() Transaction {
	headRef, err := p.repo.Head()
	if err != nil || headRef == nil {
		return Transaction{}
	}

	commit, err := p.repo.CommitObject(headRef.Hash())
	if err != nil {
		return Transaction{}
	}

	author := ""
	if commit.Author.Name != "" || commit.Author.Email != "" {
		author = fmt.Sprintf("%s <%s>", commit.Author.Name, commit.Author.Email)
	}

	return Transaction{
		Id:     headRef.Hash().String(),
		When:   commit.Committer.When,
		Author: author,
	}
}

// History lists commits newest first.
func (p *Persistence) History() ([]Transaction, error) {
	if err := p.ensureInitialized(); err != nil {
		return nil, err
	}

	if _, err := p.repo.Head(); err != nil {
		return nil, nil
	}

	cIter, err := p.repo.Log(&git.LogOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to read log: %w", err)
	}

	var transactions []Transaction
	err = cIter.ForEach(func(c *object.Commit) error {
		transactions = append(transactions, Transaction{
			Id:     c.Hash.String(),
			When:   c.Committer.When,
			Author: fmt.Sprintf("%s <%s>", c.Author.Name, c.Author.Email),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk log: %w", err)
	}

	return transactions, nil
}
