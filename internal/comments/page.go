package comments

import (
	"net/url"
	"strings"
)

// PageName identifies a page for the API: the last segment of the path,
// ignoring one trailing slash.
//
//	/knowledge/Homelab/XYZ/Debian-Systems -> Debian-Systems
//	/knowledge/                           -> knowledge
func PageName(path string) string {
	segments := strings.Split(path, "/")
	if len(segments) > 1 && segments[len(segments)-1] == "" {
		segments = segments[:len(segments)-1]
	}
	return segments[len(segments)-1]
}

// PageNameFromURL applies PageName to the path of an absolute or relative URL.
func PageNameFromURL(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return PageName(href)
	}
	return PageName(u.Path)
}
