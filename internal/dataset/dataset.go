// Package dataset loads knowledge graphs stored as tab separated files.
//
// A dataset directory contains:
//
//	entities.dict   id<TAB>name, ids dense from 0
//	relations.dict  id<TAB>name, ids dense from 0
//	train.txt       head<TAB>relation<TAB>tail, by name
//	valid.txt       optional
//	test.txt        optional
package dataset

import (
	"errors"
	"fmt"
	"slices"
)

// File names inside a dataset directory.
const (
	EntitiesFile  = "entities.dict"
	RelationsFile = "relations.dict"
	TrainFile     = "train.txt"
	ValidFile     = "valid.txt"
	TestFile      = "test.txt"
)

// ErrNoTrainSplit is returned when a dataset has no training triples.
var ErrNoTrainSplit = errors.New("dataset has no train split")

// Triple is a (head, relation, tail) fact by id.
type Triple struct {
	H, R, T int64
}

type pair struct{ a, b int64 }

// TriGraph holds the vocabularies and splits of a knowledge graph.
// It is read-only after construction and safe for concurrent readers.
type TriGraph struct {
	Entities  []string
	Relations []string
	Train     []Triple
	Valid     []Triple
	Test      []Triple

	entityIDs   map[string]int64
	relationIDs map[string]int64

	known map[Triple]struct{}
	tails map[pair][]int64 // (h, r) → true tails
	heads map[pair][]int64 // (r, t) → true heads
}

// New builds a TriGraph from vocabularies and id triples.
func New(entities, relations []string, train, valid, test []Triple) (*TriGraph, error) {
	if len(train) == 0 {
		return nil, ErrNoTrainSplit
	}
	g := &TriGraph{
		Entities:  entities,
		Relations: relations,
		Train:     train,
		Valid:     valid,
		Test:      test,
	}

	var err error
	if g.entityIDs, err = index("entity", entities); err != nil {
		return nil, err
	}
	if g.relationIDs, err = index("relation", relations); err != nil {
		return nil, err
	}

	for name, split := range map[string][]Triple{"train": train, "valid": valid, "test": test} {
		for i, tr := range split {
			if err := g.check(tr); err != nil {
				return nil, fmt.Errorf("%s triple %d: %w", name, i, err)
			}
		}
	}

	g.buildFilter()
	return g, nil
}

func index(kind string, names []string) (map[string]int64, error) {
	ids := make(map[string]int64, len(names))
	for i, name := range names {
		if _, dup := ids[name]; dup {
			return nil, fmt.Errorf("duplicate %s name %q", kind, name)
		}
		ids[name] = int64(i)
	}
	return ids, nil
}

func (g *TriGraph) check(tr Triple) error {
	ne, nr := int64(len(g.Entities)), int64(len(g.Relations))
	if tr.H < 0 || tr.H >= ne || tr.T < 0 || tr.T >= ne {
		return fmt.Errorf("entity id out of range [0, %d): %+v", ne, tr)
	}
	if tr.R < 0 || tr.R >= nr {
		return fmt.Errorf("relation id out of range [0, %d): %+v", nr, tr)
	}
	return nil
}

func (g *TriGraph) buildFilter() {
	total := len(g.Train) + len(g.Valid) + len(g.Test)
	g.known = make(map[Triple]struct{}, total)
	g.tails = make(map[pair][]int64)
	g.heads = make(map[pair][]int64)

	for _, split := range [][]Triple{g.Train, g.Valid, g.Test} {
		for _, tr := range split {
			if _, seen := g.known[tr]; seen {
				continue
			}
			g.known[tr] = struct{}{}
			hr, rt := pair{tr.H, tr.R}, pair{tr.R, tr.T}
			g.tails[hr] = append(g.tails[hr], tr.T)
			g.heads[rt] = append(g.heads[rt], tr.H)
		}
	}
	for _, v := range g.tails {
		slices.Sort(v)
	}
	for _, v := range g.heads {
		slices.Sort(v)
	}
}

// NumEntities returns the entity vocabulary size.
func (g *TriGraph) NumEntities() int { return len(g.Entities) }

// NumRelations returns the relation vocabulary size.
func (g *TriGraph) NumRelations() int { return len(g.Relations) }

// EntityID returns the id of an entity name.
func (g *TriGraph) EntityID(name string) (int64, bool) {
	id, ok := g.entityIDs[name]
	return id, ok
}

// RelationID returns the id of a relation name.
func (g *TriGraph) RelationID(name string) (int64, bool) {
	id, ok := g.relationIDs[name]
	return id, ok
}

// Known reports whether tr appears in any split.
func (g *TriGraph) Known(tr Triple) bool {
	_, ok := g.known[tr]
	return ok
}

// TrueTails returns the sorted tails t with (h, r, t) in any split.
func (g *TriGraph) TrueTails(h, r int64) []int64 {
	return g.tails[pair{h, r}]
}

// TrueHeads returns the sorted heads h with (h, r, t) in any split.
func (g *TriGraph) TrueHeads(r, t int64) []int64 {
	return g.heads[pair{r, t}]
}
