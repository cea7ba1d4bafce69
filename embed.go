package captioner

import "embed"

// WebFiles holds the browser front end served at "/".
//
//go:embed web/*
var WebFiles embed.FS
