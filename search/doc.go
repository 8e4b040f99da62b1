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


// Package search provides semantic retrieval over an indexed corpus.
//
// The Searcher type implements a staged query pipeline:
//   - Embed the query (filter values folded into the text)
//   - Rank snapshot entries by cosine similarity
//   - Boost candidates sharing specialization topics with the query
//   - Drop results below the score threshold
//   - Enforce exact-match filters on filterable fields
//
// Thresholding happens after boosting, so a specialization match can
// lift a borderline candidate into the result set.
package search
