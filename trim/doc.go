// SPDX-License-Identifier: EPL-2.0

// Package trim wires the loader, the decoders, the range extractor and
// the WAV encoder into the trim pipeline.
//
// A one-shot trim only needs a Trimmer:
//
//	src, err := loader.Load(name, mimeType, file)
//	res, err := trim.New().Run(ctx, src, audio.Range{Start: 0.5, End: 1.5})
//	os.WriteFile(res.Name, res.WAV, 0o644)
//
// Decoding goes through a Capability, the registry of bundled decoders by
// default. Tools that keep a file open and trim it repeatedly use a
// Session, which decodes once, lets the newest request win and releases
// what it replaces.
package trim
