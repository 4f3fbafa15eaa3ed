package panel

import (
	"net/url"
	"strings"
)

// Tab is one of the panel sections.
type Tab string

const (
	TabRecords Tab = "records"
	TabInput   Tab = "input"
	TabMerged  Tab = "merged"
)

type tabInfo struct {
	selector string
	label    string
	query    string
}

var tabs = map[Tab]tabInfo{
	TabRecords: {"#tab-registros", "Registros", ""},
	TabInput:   {"#tab-input", "Input*Dados", "input"},
	TabMerged:  {"#tab-merge", "Registros x Input*Dados", "merge"},
}

// Valid reports whether t is a known tab.
func (t Tab) Valid() bool {
	_, ok := tabs[t]
	return ok
}

// Selector is the "#id" of the tab's section.
func (t Tab) Selector() string { return tabs[t].selector }

// Label is the text shown in the dataset label.
func (t Tab) Label() string { return tabs[t].label }

// QueryValue is the value of the tab query parameter; "" for records.
func (t Tab) QueryValue() string { return tabs[t].query }

// TabForSelector maps a section selector to its tab. Unknown selectors map
// to records with ok false.
func TabForSelector(selector string) (Tab, bool) {
	for t, info := range tabs {
		if info.selector == selector {
			return t, true
		}
	}
	return TabRecords, false
}

// InitialTab reads the tab from the tab query parameter, then from the
// fragment, defaulting to records.
func InitialTab(u *url.URL) Tab {
	if u == nil {
		return TabRecords
	}
	switch u.Query().Get("tab") {
	case "input":
		return TabInput
	case "merge":
		return TabMerged
	}
	if t, ok := TabForSelector("#" + strings.TrimPrefix(u.Fragment, "#")); ok {
		return t
	}
	return TabRecords
}

// TabURL returns a copy of u pointing at tab: records drops the tab
// parameter and the fragment, the others set both.
func TabURL(u *url.URL, tab Tab) *url.URL {
	if !tab.Valid() {
		tab = TabRecords
	}
	out := cloneURL(u)
	q := out.Query()
	if v := tab.QueryValue(); v == "" {
		q.Del("tab")
		out.Fragment = ""
	} else {
		q.Set("tab", v)
		out.Fragment = strings.TrimPrefix(tab.Selector(), "#")
	}
	out.RawQuery = q.Encode()
	out.RawFragment = ""
	return out
}

func cloneURL(u *url.URL) *url.URL {
	if u == nil {
		return &url.URL{Path: "/"}
	}
	c := *u
	if u.User != nil {
		user := *u.User
		c.User = &user
	}
	return &c
}
