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


// Seeds a demo transport-vendor corpus into a badger directory and
// builds the index, so the search command has something to chew on.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"github.com/vendisearch/vendisearch"
	"github.com/vendisearch/vendisearch/config"
	"github.com/vendisearch/vendisearch/core"
)

// Demo rows follow the default 16-field transport-vendor layout.
var vendors = [][]string{
	{"Sharma Transport Co", "Rajesh Sharma", "Mumbai", "Maharashtra", "Electronics and IT equipment specialist", "Container Truck", "Pune, Nashik", "Owner", "9820011001", "", "Maharashtra", "Yes", "Yes", "Bombay Goods Transport Association", "Verified", "Handles electronics, IT equipment and fragile goods with careful packing"},
	{"Gujarat Freight Lines", "Amit Patel", "Surat", "Gujarat", "Textile and garment logistics", "Closed Body Truck", "Ahmedabad, Vadodara", "Owner", "9820011002", "9820011003", "Gujarat", "Yes", "No", "", "Verified", "Textile loads, fabric rolls and garment distribution across Gujarat"},
	{"Chennai Cargo Movers", "S. Venkatesh", "Chennai", "Tamil Nadu", "Port clearing and coastal transport", "Trailer", "Ennore, Tuticorin", "Broker", "9820011004", "", "Tamil Nadu", "No", "Yes", "South India Motor Transport Association", "Pending", "Port deliveries, harbor transport and heavy machinery moves"},
	{"Himalaya Perishables", "Deepak Negi", "Delhi", "Delhi", "Cold chain and fresh produce", "Refrigerated Van", "Gurgaon, Noida", "Owner", "9820011005", "", "Delhi", "Yes", "No", "", "Verified", "Perishable goods, fresh produce and food transport with refrigeration"},
	{"Deccan Pharma Logistics", "Kiran Rao", "Hyderabad", "Telangana", "Pharmaceutical distribution", "Closed Body Truck", "Vijayawada, Warangal", "Owner", "9820011006", "", "Telangana", "Yes", "Yes", "Telangana Lorry Owners Association", "Verified", "Pharma and medical supplies, temperature controlled medicine delivery"},
	{"Punjab Agri Carriers", "Harpreet Singh", "Ludhiana", "Punjab", "Farm produce and machinery", "Open Truck", "Amritsar, Jalandhar", "Broker", "9820011007", "", "Punjab", "No", "No", "", "Unverified", "Agricultural products, farm equipment and crop transport"},
	{"Express Roadways", "Manoj Verma", "Indore", "Madhya Pradesh", "Time-sensitive deliveries", "Tempo", "Bhopal, Ujjain", "Owner", "9820011008", "", "Madhya Pradesh", "Yes", "No", "", "Verified", "Express delivery, urgent transport, fast turnaround on short routes"},
	{"Kolkata General Transport", "Sourav Das", "Kolkata", "West Bengal", "General cargo", "Open Truck", "Howrah, Durgapur", "Broker", "9820011009", "", "West Bengal", "No", "Yes", "Federation of West Bengal Truck Operators", "Pending", "General cargo and bulk loads, no special handling"},
}

func main() {
	dbPath := flag.String("db", "", "Path to BadgerDB database directory")
	configPath := flag.String("config", "vendisearch.yaml", "Path to YAML config file")
	buildIndex := flag.Bool("build-index", true, "Build the embedding index after seeding")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	if *dbPath == "" {
		logger.Error("-db is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("loading config", "err", err)
		os.Exit(1)
	}

	engine, err := vendisearch.Open(*dbPath, cfg)
	if err != nil {
		logger.Error("opening database", "err", err)
		os.Exit(1)
	}
	defer engine.Close()

	ctx := context.Background()

	records := make([]core.Record, len(vendors))
	for i, fields := range vendors {
		records[i] = core.Record{Fields: fields}
	}
	stored, err := engine.Records().PutRecords(ctx, records...)
	if err != nil {
		logger.Error("seeding records", "err", err)
		os.Exit(1)
	}
	logger.Info("seeded demo corpus", "records", len(stored))

	if *buildIndex {
		if err := engine.RefreshIndex(ctx, false); err != nil {
			logger.Error("building index", "err", err)
			os.Exit(1)
		}
		logger.Info("index built", "records", len(engine.Index().Snapshot().Entries))
	}
}
