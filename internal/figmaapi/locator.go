package figmaapi

import (
	"errors"
	"net/url"
	"strings"
)

// ErrInvalidLocator is returned for URLs that do not name a file and node.
var ErrInvalidLocator = errors.New("invalid design locator")

// Locator identifies a node inside a design file.
type Locator struct {
	FileKey string
	NodeID  string
}

func (l Locator) String() string {
	return l.FileKey + "/" + l.NodeID
}

// ParseLocator extracts the file key and node id from a share URL such as
// https://www.figma.com/design/<key>/<title>?node-id=1-545. The file key is
// the second path segment; the node id is the node-id parameter with its
// first dash turned into a colon.
func ParseLocator(raw string) (Locator, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return Locator{}, ErrInvalidLocator
	}

	segments := strings.Split(u.Path, "/")
	if len(segments) < 3 || segments[2] == "" {
		return Locator{}, ErrInvalidLocator
	}

	nodeID := strings.Replace(u.Query().Get("node-id"), "-", ":", 1)
	if nodeID == "" {
		return Locator{}, ErrInvalidLocator
	}

	return Locator{FileKey: segments[2], NodeID: nodeID}, nil
}
