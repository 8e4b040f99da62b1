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


// Package ai defines the embedding provider boundary.
//
// The domain and search logic depend only on the Embedder interface;
// concrete implementations live in sub-packages:
//
//   - ai/openai: production implementation using OpenAI-compatible APIs
//   - ai/mock: test doubles for unit testing without external services
//
// Provider failures are wrapped in ProviderError, which classifies them
// as transient (timeouts, rate limits, 5xx) or permanent (bad auth,
// malformed input). Callers use IsTransient to decide whether a retry
// is worthwhile; a transient failure during search must surface as an
// error, never as an empty result set.
//
// Public constructors (openai.NewEmbedder) return the ai.Embedder
// INTERFACE to enforce abstraction. Test utility constructors
// (mock.NewMockEmbedder) return CONCRETE types to enable behavior
// injection and call-count assertions.
package ai
