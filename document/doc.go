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


// Package document composes flat records into weighted embedding text.
//
// Field weights are expressed as literal repetition: a field with weight
// 12 contributes its "{label}: {value}" fragment twelve times, which
// biases the embedding toward that field without touching the model.
// Keyword triggers found in a record additionally append domain phrase
// variants, so a vendor whose notes mention "electronics" embeds close
// to queries about electronics transport.
package document
