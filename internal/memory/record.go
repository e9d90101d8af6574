package memory

import (
	"slices"
	"strings"
	"time"
)

// AddFavorite adds name to the favorites unless it is already there.
// It reports whether the record changed.
func (r *Record) AddFavorite(name string) (bool, error) {
	return addUnique(&r.Favorites, name)
}

// AddDislike adds name to the dislikes unless it is already there.
func (r *Record) AddDislike(name string) (bool, error) {
	return addUnique(&r.Dislikes, name)
}

// RemoveFavorite deletes name from the favorites.
func (r *Record) RemoveFavorite(name string) bool {
	return remove(&r.Favorites, name)
}

// RemoveDislike deletes name from the dislikes.
func (r *Record) RemoveDislike(name string) bool {
	return remove(&r.Dislikes, name)
}

// AppendChoice adds a dated choice to the end of the history without pruning.
func (r *Record) AppendChoice(name string, date time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	r.History = append(r.History, Choice{Name: name, Date: date.Format(DateLayout)})
	return nil
}

// Prune drops history entries dated before the Cutoff day, along with entries
// whose date cannot be parsed. It returns the number of entries removed.
func (r *Record) Prune(now time.Time, days int) int {
	cutoff := Cutoff(now, days)
	kept := r.History[:0]
	for _, c := range r.History {
		day, err := c.Day(now.Location())
		if err != nil || day.Before(cutoff) {
			continue
		}
		kept = append(kept, c)
	}
	removed := len(r.History) - len(kept)
	r.History = kept
	return removed
}

// RecentNames returns the distinct meal names in the history, most recent first.
func (r *Record) RecentNames() []string {
	seen := make(map[string]bool, len(r.History))
	var names []string
	for i := len(r.History) - 1; i >= 0; i-- {
		n := r.History[i].Name
		if seen[n] {
			continue
		}
		seen[n] = true
		names = append(names, n)
	}
	return names
}

// Cutoff returns midnight, in now's location, of the first day of the trailing
// window. History dates have day granularity, so the whole boundary day is kept.
func Cutoff(now time.Time, days int) time.Time {
	y, m, d := now.AddDate(0, 0, -days).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}

func addUnique(list *[]string, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, ErrEmptyName
	}
	if slices.Contains(*list, name) {
		return false, nil
	}
	*list = append(*list, name)
	return true, nil
}

func remove(list *[]string, name string) bool {
	name = strings.TrimSpace(name)
	i := slices.Index(*list, name)
	if i < 0 {
		return false
	}
	*list = slices.Delete(*list, i, i+1)
	return true
}

// normalize replaces nil slices so encoders write empty lists.
func (r *Record) normalize() {
	if r.Favorites == nil {
		r.Favorites = []string{}
	}
	if r.Dislikes == nil {
		r.Dislikes = []string{}
	}
	if r.History == nil {
		r.History = []Choice{}
	}
}
