// Package config loads the YAML file configuration: the record schema,
// specialization keywords, search tuning and the embedding endpoint.
// A missing file or omitted section falls back to the transport-vendor
// defaults.
package config
