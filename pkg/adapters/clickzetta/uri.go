package clickzetta

import (
	"regexp"
	"strings"

	"github.com/leapstack-labs/clickzetta/pkg/adapter"
)

const volumePrefix = "volume:"

var (
	// volume:<scope>://<name>
	volumeURIPattern = regexp.MustCompile(`^volume:[^:/]+://[^/]`)
	// @<stage>
	stageURIPattern = regexp.MustCompile(`^@[^/]`)
)

// NormalizeVolumeURI joins a volume or stage base URI with a relative path.
//
// The base must look like volume:<scope>://<name> or @<stage>. Exactly one
// trailing slash is trimmed from base and one leading slash from
// relativePath; the two are then joined with a single slash. An empty
// relativePath returns the trimmed base.
func NormalizeVolumeURI(base, relativePath string) (string, error) {
	if strings.TrimSpace(base) == "" {
		return "", adapter.NewError(adapter.CodeValidation, "volume name must not be empty")
	}
	if !volumeURIPattern.MatchString(base) && !stageURIPattern.MatchString(base) {
		return "", adapter.NewError(adapter.CodeValidation,
			"unsupported volume/stage format %q (expected volume:<scope>://<name> or @<stage>)", base)
	}

	base = strings.TrimSuffix(base, "/")
	relativePath = strings.TrimPrefix(relativePath, "/")
	if relativePath == "" {
		return base, nil
	}
	return base + "/" + relativePath, nil
}

// volumeLocation is a parsed, normalized volume or stage URI.
type volumeLocation struct {
	stage string // full @stage[/path] form; empty for volumes
	scope string
	name  string
	path  string
}

// parseVolumeLocation splits a normalized URI into its parts.
func parseVolumeLocation(uri string) (volumeLocation, error) {
	if strings.HasPrefix(uri, "@") {
		return volumeLocation{stage: uri}, nil
	}

	rest, ok := strings.CutPrefix(uri, volumePrefix)
	if !ok {
		return volumeLocation{}, adapter.NewError(adapter.CodeValidation, "unsupported volume/stage format %q", uri)
	}
	scope, rest, ok := strings.Cut(rest, "://")
	if !ok {
		return volumeLocation{}, adapter.NewError(adapter.CodeValidation, "unsupported volume/stage format %q", uri)
	}
	name, path, _ := strings.Cut(rest, "/")
	return volumeLocation{scope: strings.ToLower(scope), name: name, path: path}, nil
}

// listStatement renders the file-listing statement for the location.
func (l volumeLocation) listStatement() string {
	if l.stage != "" {
		return "LIST " + quoteLiteral(l.stage)
	}

	var b strings.Builder
	switch l.scope {
	case "user":
		b.WriteString("LIST USER VOLUME")
	case "table":
		b.WriteString("LIST TABLE VOLUME ")
		b.WriteString(qualify(strings.Split(l.name, ".")...))
	default:
		b.WriteString("LIST VOLUME ")
		b.WriteString(qualify(strings.Split(l.name, ".")...))
	}
	if l.path != "" {
		b.WriteString(" SUBDIRECTORY ")
		b.WriteString(quoteLiteral(l.path))
	}
	return b.String()
}
