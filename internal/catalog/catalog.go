// Package catalog holds the fixed, versioned definition of question
// batches and provides read-only lookup over it.
package catalog

import (
	"fmt"

	"partyline/internal/model"
)

// Catalog is an ordered list of batches. Batch order is the unlock order;
// question ids share one namespace across all batches.
type Catalog struct {
	batches   []model.Batch
	questions map[string]*model.Question
	batchByID map[string]int
}

// New builds a catalog and verifies that question ids are unique across
// all batches.
func New(batches []model.Batch) (*Catalog, error) {
	c := &Catalog{
		batches:   batches,
		questions: make(map[string]*model.Question),
		batchByID: make(map[string]int),
	}
	for i := range batches {
		b := &c.batches[i]
		if _, dup := c.batchByID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate batch id %q", b.ID)
		}
		c.batchByID[b.ID] = i
		for j := range b.Questions {
			q := &b.Questions[j]
			if _, dup := c.questions[q.ID]; dup {
				return nil, fmt.Errorf("duplicate question id %q", q.ID)
			}
			c.questions[q.ID] = q
		}
	}
	return c, nil
}

// Batch returns the batch with the given id.
func (c *Catalog) Batch(id string) (*model.Batch, bool) {
	i, ok := c.batchByID[id]
	if !ok {
		return nil, false
	}
	return &c.batches[i], true
}

// Batches returns all batches in unlock order.
func (c *Catalog) Batches() []model.Batch {
	return c.batches
}

// BatchIndex returns the order index of a batch, or -1 if unknown.
func (c *Catalog) BatchIndex(id string) int {
	if i, ok := c.batchByID[id]; ok {
		return i
	}
	return -1
}

// Question returns the question with the given id from any batch.
func (c *Catalog) Question(id string) (*model.Question, bool) {
	q, ok := c.questions[id]
	return q, ok
}

// Questions returns every question in catalog order (batch order, then
// question order within the batch).
func (c *Catalog) Questions() []model.Question {
	var out []model.Question
	for _, b := range c.batches {
		out = append(out, b.Questions...)
	}
	return out
}

// BatchCount returns the number of batches.
func (c *Catalog) BatchCount() int {
	return len(c.batches)
}
