package model

type Format string

const (
	FormatText Format = "text"
	FormatHTML Format = "html"
	FormatEpub Format = "epub"
	FormatMobi Format = "mobi"
)

// Artifact is a file produced by one of the binding stages.
type Artifact struct {
	Path   string
	Format Format
}

func Artifacts(format Format, paths []string) []Artifact {
	artifacts := make([]Artifact, 0, len(paths))
	for _, p := range paths {
		artifacts = append(artifacts, Artifact{Path: p, Format: format})
	}
	return artifacts
}
