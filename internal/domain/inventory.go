package domain

// AddCount increments a counter map entry
func AddCount(m map[string]int, key string, n int) {
	if n == 0 {
		return
	}
	m[key] += n
}

// SubtractCount decrements a counter map entry and removes the key when it reaches zero.
// Returns false without modifying the map if fewer than n are present.
func SubtractCount(m map[string]int, key string, n int) bool {
	have := m[key]
	if have < n {
		return false
	}
	if have == n {
		delete(m, key)
		return true
	}
	m[key] = have - n
	return true
}
