// Copyright 2025 Vendisearch Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package search

import (
	"fmt"
	"sort"

	"github.com/vendisearch/vendisearch/core"
	"github.com/vendisearch/vendisearch/document"
)

const (
	// TopicBoost is added to a candidate's score for each specialization
	// topic shared between the query and the record.
	TopicBoost float32 = 0.15

	// MaxBoost caps the total topic boost a single candidate can receive.
	MaxBoost float32 = 0.3

	// candidateMultiplier widens the cosine-similarity pool before
	// boosting, so a boosted record just outside the raw top-k can
	// still surface.
	candidateMultiplier = 3
)

// Ranker scores snapshot entries against an embedded query and applies
// specialization-topic boosts on top of raw cosine similarity.
type Ranker struct {
	composer *document.Composer
}

// NewRanker creates a Ranker sharing the composer used at index time,
// so query and record topic detection agree.
func NewRanker(composer *document.Composer) (*Ranker, error) {
	if composer == nil {
		return nil, ErrComposerRequired
	}
	return &Ranker{composer: composer}, nil
}

type candidate struct {
	pos   int
	raw   float32
	score float32
}

// Rank scores every entry in snap against queryVector, boosts candidates
// sharing specialization topics with queryText, drops anything below
// threshold and returns at most topK results ordered by boosted score.
// Similarity carries the raw cosine value, Score the boosted one.
func (r *Ranker) Rank(queryVector []float32, queryText string, snap *core.Snapshot, topK int, threshold float32) ([]*core.SearchResult, error) {
	if err := core.ValidateQueryParams(topK, threshold); err != nil {
		return nil, err
	}
	if snap == nil || len(snap.Entries) == 0 {
		return []*core.SearchResult{}, nil
	}
	if len(queryVector) == 0 {
		return nil, fmt.Errorf("empty query vector")
	}

	candidates := make([]candidate, len(snap.Entries))
	for i := range snap.Entries {
		raw := core.DotProduct(queryVector, snap.Entries[i].Vector)
		if raw < 0 {
			raw = 0
		}
		candidates[i] = candidate{pos: i, raw: raw}
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].raw != candidates[j].raw {
			return candidates[i].raw > candidates[j].raw
		}
		return candidates[i].pos < candidates[j].pos
	})

	pool := topK * candidateMultiplier
	if pool > len(candidates) {
		pool = len(candidates)
	}
	candidates = candidates[:pool]

	queryTopics := r.composer.MatchedTopics(queryText)

	kept := candidates[:0]
	for _, c := range candidates {
		c.score = c.raw + r.boost(&snap.Entries[c.pos].Record, queryTopics)
		if c.score > 1 {
			c.score = 1
		}
		// Threshold applies to the boosted score, so topic overlap can
		// rescue a borderline candidate.
		if c.score < threshold {
			continue
		}
		kept = append(kept, c)
	}

	sort.Slice(kept, func(i, j int) bool {
		if kept[i].score != kept[j].score {
			return kept[i].score > kept[j].score
		}
		if kept[i].raw != kept[j].raw {
			return kept[i].raw > kept[j].raw
		}
		return kept[i].pos < kept[j].pos
	})

	if len(kept) > topK {
		kept = kept[:topK]
	}

	results := make([]*core.SearchResult, len(kept))
	for i, c := range kept {
		results[i] = &core.SearchResult{
			Record:     &snap.Entries[c.pos].Record,
			Similarity: c.raw,
			Score:      c.score,
		}
	}
	return results, nil
}

func (r *Ranker) boost(record *core.Record, queryTopics []string) float32 {
	if len(queryTopics) == 0 {
		return 0
	}

	recordTopics := r.composer.MatchedTopics(r.composer.SearchText(record))
	if len(recordTopics) == 0 {
		return 0
	}

	shared := make(map[string]struct{}, len(recordTopics))
	for _, topic := range recordTopics {
		shared[topic] = struct{}{}
	}

	var boost float32
	for _, topic := range queryTopics {
		if _, ok := shared[topic]; ok {
			boost += TopicBoost
		}
	}
	if boost > MaxBoost {
		boost = MaxBoost
	}
	return boost
}
