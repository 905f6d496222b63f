package movies

// GenreGroups maps genre ids to the movies carrying them.
// Keys keep first-occurrence order.
type GenreGroups struct {
	m orderedMap[int, []ProjectedMovie]
}

// GroupByGenre places every movie into one group per genre id it carries.
// Movies without genre ids end up in no group. Within a group movies keep
// their input order.
func GroupByGenre(movies []ProjectedMovie) *GenreGroups {
	groups := &GenreGroups{m: newOrderedMap[int, []ProjectedMovie](0)}

	for _, movie := range movies {
		for _, id := range movie.GenreIDs {
			existing, _ := groups.m.get(id)
			groups.m.set(id, append(existing, ProjectedMovie{
				GenreIDs:      cloneIDs(movie.GenreIDs),
				OriginalTitle: movie.OriginalTitle,
				PosterPath:    movie.PosterPath,
			}))
		}
	}

	return groups
}

// GenreIDs returns the group keys in first-occurrence order.
func (g *GenreGroups) GenreIDs() []int {
	return append([]int(nil), g.m.keys...)
}

// Movies returns the group for id.
func (g *GenreGroups) Movies(id int) ([]ProjectedMovie, bool) {
	return g.m.get(id)
}

// Len returns the number of groups.
func (g *GenreGroups) Len() int {
	return len(g.m.keys)
}

// MarshalJSON encodes the groups as an object keyed by genre id.
func (g *GenreGroups) MarshalJSON() ([]byte, error) {
	return g.m.marshalJSON()
}
