package groups

import (
	"context"
	"strings"

	"github.com/studymate/studymate/core"
	"github.com/studymate/studymate/storage/mirror"
)

// catalog is the directory of study groups open for joining.
var catalog = []string{
	"Cognitive Neuroscience Group",
	"Web Programming Group",
	"Cognition Design Squad",
	"HCI Group",
	"Statistics Group",
	"Psychology Therapist",
	"Algorithms 101",
	"Machine Learning Advanced",
	"Human Biology Study",
	"World History Hub",
}

// defaultMembers are the students present in every group chat.
var defaultMembers = []string{
	"Sheila Putri",
	"Amir Hakim",
	"Mira Santoso",
	"Haris Pratama",
	"Nia Ramadhani",
	"Budi Sudarsono",
}

type Service interface {
	// Joined returns the groups the student is currently a member of.
	Joined() []string
	// IsJoined reports whether the student has joined the named group.
	IsJoined(name string) bool
	// Toggle joins the group if the student is not a member, leaves it
	// otherwise. It reports whether the student is a member afterwards.
	Toggle(ctx context.Context, name string) (joined bool, err error)
}

type service struct {
	joined *mirror.Collection[string]
}

func NewService(joined *mirror.Collection[string]) Service {
	return &service{joined: joined}
}

func Load(ctx context.Context, store core.KVStore, log core.Logger) Service {
	return NewService(mirror.LoadCollection[string](ctx, store, core.KeyJoinedGroups, log))
}

func (svc *service) Joined() []string { return svc.joined.Items() }

func (svc *service) IsJoined(name string) bool {
	for _, g := range svc.joined.Items() {
		if g == name {
			return true
		}
	}
	return false
}

func (svc *service) Toggle(ctx context.Context, name string) (bool, error) {
	joined := false
	err := svc.joined.Replace(ctx, func(groups []string) []string {
		kept := groups[:0:0]
		for _, g := range groups {
			if g == name {
				continue
			}
			kept = append(kept, g)
		}
		if len(kept) == len(groups) {
			joined = true
			return append(kept, name)
		}
		return kept
	})
	if err != nil {
		return svc.IsJoined(name), err
	}
	return joined, nil
}

// Catalog returns the full group directory.
func Catalog() []string {
	out := make([]string, len(catalog))
	copy(out, catalog)
	return out
}

// Search filters the group directory case-insensitively. An empty query
// returns the full directory.
func Search(query string) []string {
	query = strings.ToLower(strings.TrimSpace(query))
	matched := make([]string, 0, len(catalog))
	for _, g := range catalog {
		if query == "" || strings.Contains(strings.ToLower(g), query) {
			matched = append(matched, g)
		}
	}
	return matched
}

// Members returns the students in the named group's chat.
func Members(name string) []string {
	out := make([]string, len(defaultMembers))
	copy(out, defaultMembers)
	return out
}
