package panel

import "net/url"

// Location is the page address. Replace rewrites it without a reload;
// Assign navigates.
type Location interface {
	URL() *url.URL
	Replace(u *url.URL)
	Assign(u *url.URL)
}

// StaticLocation is a Location for server-side rendering and tests. It
// records navigation instead of performing it.
type StaticLocation struct {
	Current   *url.URL
	Navigated *url.URL
	Replaced  int
}

// NewStaticLocation parses raw into a StaticLocation.
func NewStaticLocation(raw string) (*StaticLocation, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &StaticLocation{Current: u}, nil
}

func (l *StaticLocation) URL() *url.URL { return cloneURL(l.Current) }

func (l *StaticLocation) Replace(u *url.URL) {
	l.Current = cloneURL(u)
	l.Replaced++
}

func (l *StaticLocation) Assign(u *url.URL) {
	l.Navigated = cloneURL(u)
}
