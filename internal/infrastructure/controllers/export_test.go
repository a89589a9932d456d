package controllers

// ApplyCrawlFlags exports applyCrawlFlags for testing.
var ApplyCrawlFlags = applyCrawlFlags //nolint:gochecknoglobals // test export

// RenderReport exports renderReport for testing.
var RenderReport = renderReport //nolint:gochecknoglobals // test export
