package models

import "slices"

// Friends is the local identity's follow graph as last fetched. It is
// replaced wholesale on each refresh.
type Friends struct {
	Following []string `json:"following"`
	Blocking  []string `json:"blocking"`
}

// FriendsFromGraph converts the network's relation map (true = following,
// false = blocking, nil = neither) into sorted Following/Blocking lists.
func FriendsFromGraph(graph map[string]*bool) Friends {
	f := Friends{Following: []string{}, Blocking: []string{}}
	for id, rel := range graph {
		if rel == nil {
			continue
		}
		if *rel {
			f.Following = append(f.Following, id)
		} else {
			f.Blocking = append(f.Blocking, id)
		}
	}
	slices.Sort(f.Following)
	slices.Sort(f.Blocking)
	return f
}

// All returns followed and blocked identities together.
func (f Friends) All() []string {
	out := make([]string, 0, len(f.Following)+len(f.Blocking))
	out = append(out, f.Following...)
	return append(out, f.Blocking...)
}

func (f Friends) Clone() Friends {
	return Friends{Following: slices.Clone(f.Following), Blocking: slices.Clone(f.Blocking)}
}
