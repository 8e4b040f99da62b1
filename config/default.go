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


package config

// Field weight tiers. Notes and descriptions dominate the embedding,
// location and vehicle details matter, contact metadata barely counts.
const (
	semanticWeight  = 20
	locationWeight  = 12
	secondaryWeight = 6
	metadataWeight  = 2
)

// Default returns the transport-vendor configuration: a 16-field record
// layout, the specialization keyword set and search defaults.
func Default() *Config {
	return &Config{
		Schema: SchemaConfig{
			Version: "1",
			Fields: []Field{
				{Index: 0, Name: "transport_name", Label: "Transport Company", Type: "text", Searchable: true, Weight: secondaryWeight, InCard: true},
				{Index: 1, Name: "contact_name", Label: "Contact Person", Type: "text", Searchable: true, Weight: metadataWeight, InCard: true},
				{Index: 2, Name: "vendor_city", Label: "City", Type: "text", Searchable: true, Weight: locationWeight, InCard: true, Filterable: true},
				{Index: 3, Name: "vendor_state", Label: "State", Type: "text", Searchable: true, Weight: locationWeight, InCard: true, Filterable: true},
				{Index: 4, Name: "visiting_card", Label: "Brief Description", Type: "text", Searchable: true, Weight: secondaryWeight, InCard: true},
				{Index: 5, Name: "vehicle_type", Label: "Vehicle Type", Type: "text", Searchable: true, Weight: locationWeight, InCard: true},
				{Index: 6, Name: "service_city", Label: "Service Areas", Type: "text", Searchable: true, Weight: secondaryWeight, InCard: true},
				{Index: 7, Name: "owner_broker", Label: "Type", Type: "text", Searchable: true, Weight: secondaryWeight, InCard: true, Filterable: true},
				{Index: 8, Name: "whatsapp_number", Label: "WhatsApp", Type: "text", Weight: metadataWeight, InCard: true},
				{Index: 9, Name: "alternate_number", Label: "Alternate Phone", Type: "text", Weight: metadataWeight},
				{Index: 10, Name: "service_state", Label: "Service State", Type: "text", Searchable: true, Weight: secondaryWeight},
				{Index: 11, Name: "return_service", Label: "Return Service", Type: "boolean", Searchable: true, Weight: secondaryWeight, InCard: true},
				{Index: 12, Name: "has_association", Label: "Has Association", Type: "boolean", Searchable: true, Weight: metadataWeight},
				{Index: 13, Name: "association_name", Label: "Association", Type: "text", Searchable: true, Weight: metadataWeight, InCard: true},
				{Index: 14, Name: "verification", Label: "Verification", Type: "text", Searchable: true, Weight: secondaryWeight, InCard: true, Filterable: true},
				{Index: 15, Name: "notes", Label: "Notes & Comments", Type: "text", Searchable: true, Weight: semanticWeight, InCard: true},
			},
		},
		Keywords: map[string][]string{
			"electronic":   {"electronics transport", "IT equipment", "electronic goods", "electronics specialist"},
			"it equipment": {"IT transport", "technology equipment", "computer hardware"},
			"computer":     {"computers", "IT hardware", "technology devices"},
			"pharma":       {"pharmaceutical transport", "medical supplies", "medicine delivery", "healthcare products"},
			"medical":      {"medical equipment", "healthcare supplies", "hospital equipment"},
			"textile":      {"textiles", "fabric transport", "garment delivery", "clothing transport"},
			"fabric":       {"fabrics", "textile goods", "garment materials"},
			"garment":      {"garments", "clothing", "apparel transport"},
			"fragile":      {"fragile items", "delicate goods", "breakable items", "careful handling"},
			"delicate":     {"delicate items", "sensitive goods", "fragile materials"},
			"perishable":   {"perishables", "perishable goods", "food transport", "fresh produce"},
			"food":         {"food products", "edible goods", "food delivery"},
			"fresh":        {"fresh produce", "fresh goods", "refrigerated transport"},
			"machinery":    {"heavy machinery", "industrial equipment", "large machines", "factory equipment"},
			"heavy":        {"heavy goods", "heavy equipment", "oversized cargo"},
			"industrial":   {"industrial goods", "factory equipment", "manufacturing materials"},
			"agricultural": {"farm products", "agriculture goods", "farming equipment", "crop transport"},
			"farm":         {"farm produce", "agricultural products", "farming goods"},
			"port":         {"port deliveries", "port to city", "harbor transport", "shipping port"},
			"coastal":      {"coastal transport", "seaside delivery", "port services"},
			"fast":         {"fast delivery", "quick turnaround", "express service", "speedy transport"},
			"quick":        {"quick delivery", "rapid service", "fast turnaround"},
			"express":      {"express delivery", "urgent transport", "fast service"},
			"reliable":     {"reliable service", "dependable transport", "trustworthy vendor"},
			"trusted":      {"trusted vendor", "reliable partner", "dependable service"},
		},
		Search: SearchConfig{
			TopK:             5,
			Threshold:        0.35,
			Repetition:       10,
			BatchSize:        32,
			MaxConcurrent:    4,
			EmbedTimeoutSecs: 15,
		},
		Embedder: EmbedderConfig{
			Host:  "http://localhost:11434/v1",
			Model: "embeddinggemma",
		},
	}
}
