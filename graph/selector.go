package graph

import "sort"

// SelectNodes ranks entities by frequency and returns at most MaxNodes keys.
// Equal frequencies keep first-appearance order. A non-empty mainTopic that
// did not make the cut is put first, pushing out the lowest ranked entity when
// the budget is full.
func SelectNodes(entities *Entities, mainTopic string) []string {
	keys := entities.Keys()
	sort.SliceStable(keys, func(i, j int) bool {
		return entities.records[keys[i]].Frequency > entities.records[keys[j]].Frequency
	})
	if len(keys) > MaxNodes {
		keys = keys[:MaxNodes]
	}

	if mainTopic == "" || contains(keys, mainTopic) {
		return keys
	}

	selected := make([]string, 0, len(keys)+1)
	selected = append(selected, mainTopic)
	selected = append(selected, keys...)
	if len(selected) > MaxNodes {
		selected = selected[:MaxNodes]
	}
	return selected
}

func contains(keys []string, key string) bool {
	for _, k := range keys {
		if k == key {
			return true
		}
	}
	return false
}
