/*
NAME
  config.go

DESCRIPTION
  config.go declares the collaborator contracts §6 places outside this
  subsystem's scope: process configuration, the data-file locator, the
  embedded resource provider, the polyphase resampler and the band
  splitter. Default implementations for the locator, resource provider,
  resampler and band splitter live in their own packages; callers may
  substitute their own (e.g. the real config reader, or a hardware
  resampler) as long as they satisfy these interfaces.

AUTHOR
  Trek Hopton <trek@ausocean.org>

LICENSE
  Copyright (C) 2024 the Australian Ocean Lab (AusOcean). All Rights Reserved.

  The Software and all intellectual property rights associated
  therewith, including but not limited to copyrights, trademarks,
  patents, and trade secrets, are and will remain the exclusive
  property of the Australian Ocean Lab (AusOcean).
*/

package hrtf

// Config carries the collaborator options the process-wide
// configuration reader provides (§6): HRTFPaths and DefaultHRTF are
// comma-or-whitespace-separated and a bare name respectively; HRTFSize,
// when non-zero and smaller than the conditioner's computed IR size,
// replaces it (raised to MinIRSize, then rounded down to a multiple of
// ModIRSize); larger values are ignored.
type Config struct {
	HRTFPaths   string
	DefaultHRTF string
	HRTFSize    uint
}

// FileLocator searches for data files of a given extension under a
// logical search path, the contract of the data-file locator collaborator
// in §6.
type FileLocator interface {
	Search(ext, path string) ([]string, error)
}

// ResourceProvider returns the bytes of an embedded resource by index, or
// nil if absent, the contract of the resource provider collaborator in
// §6.
type ResourceProvider interface {
	Get(id int) []byte
}

// Resampler is the polyphase resampler collaborator (§6): Init prepares
// the filter bank for a src->dst rate change, and Process resamples one
// buffer at a time. Implementations are expected to be stateless across
// calls other than the filter bank Init configures.
type Resampler interface {
	Init(srcRate, dstRate int)
	Process(in, out []float64)
}

// BandSplitter is the two-band crossover collaborator (§6): ApplyAllpass
// runs the splitter's all-pass section alone (used on the time-reversed
// IR by the phase-compensation trick of §4.7), Process performs the full
// low/high split, and Clear resets internal filter state between
// independent runs (e.g. between ears).
type BandSplitter interface {
	ApplyAllpass(buf []float64)
	Process(lo, hi, in []float64)
	Clear()
}

// BandSplitterFactory constructs a BandSplitter normalised to freq, a
// crossover frequency already divided by the sample rate it will run at.
type BandSplitterFactory func(freq float64) BandSplitter
