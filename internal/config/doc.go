// Package config defines the format-agnostic configuration model for the
// application, along with the Loader interface implemented by the concrete
// file formats.
//
// The `config.Model` is the single source of truth for the `app` package,
// which resolves its experiments against its embeddings and hands them to
// `memory.Build`. Concrete loaders, such as for HCL and TOML, are provided in
// separate packages.
package config
