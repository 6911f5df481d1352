// Package refdoc generates a markdown API reference for a set of libraries.
//
// Every library listed in the targets file is described by type metadata and
// documentation records. Metadata comes either from a descriptor file produced by the
// library's build (<name>.yaml, <name>.yml or <name>.json), in which case the
// records are read from <name>.xml, or from the Go module found in the <name>
// directory, whose doc comments become the records.
//
// For each documented class and enum a page named obj<TypeName>.md is written,
// listing the type's description, its events, fields, properties and methods
// (own members first, inherited ones in a separate section), and an optional
// example. Types of the documented libraries are linked across pages.
// Finally a sidebar index of every page is written.
//
// Example usage:
//
//	cfg, err := config.Load("appcfg.yaml")
//	if err != nil {
//	    return err
//	}
//	report, err := refdoc.New(cfg, refdoc.WithLogger(logger)).Run(ctx)
//
// The generator is configured with [config.Config], see [Generator] for the
// remaining options.
package refdoc
