// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package kge provides knowledge graph embedding models.
//
// # Overview
//
// A model keeps one embedding row per entity and per relation and scores
// triples (head, relation, tail) with one of:
//   - TransE: gamma - ||h + r - t||
//   - RotatE: gamma - ||h ∘ r - t||, relations as complex phases
//   - DistMult: <h, r, t>
//   - ComplEx: Re(<h, r, conj(t)>)
//
// # Basic Usage
//
//	backend := cpu.New()
//	graph, err := kge.LoadDataset(ctx, "data/FB15k-237", logger)
//	if err != nil {
//	    return err
//	}
//	m, err := kge.NewModel[float32](kge.ModelConfig{
//	    ScoreFunc: "rotate",
//	    Hidden:    200,
//	    Gamma:     12,
//	}, graph.NumEntities(), graph.NumRelations(), random.New(0), backend)
//	if err != nil {
//	    return err
//	}
//	res, err := kge.Evaluate(ctx, m, graph, graph.Test, kge.EvalOptions{BatchSize: 16, Filtered: true})
package kge
