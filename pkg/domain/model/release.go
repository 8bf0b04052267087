package model

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
)

// DateLayout is the format of the release date attribute
const DateLayout = "2006-01-02"

var (
	// ErrInvalidArgumentCount is returned when positional arguments are neither <version> nor <version> <date> <url>
	ErrInvalidArgumentCount = goerr.New("expected 1 or 3 arguments: <version> [date url]")

	// ErrEmptyVersion is returned when the version argument is an empty string
	ErrEmptyVersion = goerr.New("release version must not be empty")

	// ErrReleasesNotFound is returned when the metainfo root has no releases element
	ErrReleasesNotFound = goerr.New("releases element not found in metainfo")
)

// Release represents a single release entry of the metainfo document
type Release struct {
	Version string // Release tag name
	Date    string // Release date, YYYY-MM-DD by convention
	URL     string // Release page URL
}

// TagURL returns the release tag page of version under repositoryURL
func TagURL(repositoryURL, version string) string {
	return strings.TrimSuffix(repositoryURL, "/") + "/releases/tag/" + version
}

// ParseReleaseArgs resolves positional arguments into a Release.
//
// With one argument the date defaults to today and the URL to the tag page of the
// repository. With three arguments date and URL are taken verbatim.
func ParseReleaseArgs(args []string, today time.Time, repositoryURL string) (*Release, error) {
	var rel Release

	switch len(args) {
	case 1:
		rel = Release{
			Version: args[0],
			Date:    today.Format(DateLayout),
			URL:     TagURL(repositoryURL, args[0]),
		}
	case 3:
		rel = Release{
			Version: args[0],
			Date:    args[1],
			URL:     args[2],
		}
	default:
		return nil, goerr.Wrap(ErrInvalidArgumentCount, "invalid arguments", goerr.V("count", len(args)))
	}

	if rel.Version == "" {
		return nil, goerr.Wrap(ErrEmptyVersion, "invalid arguments")
	}

	return &rel, nil
}
