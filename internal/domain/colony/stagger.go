package colony

// StaggerSeed mixes a numeric worker id into a well spread 64-bit value
// (splitmix64 finalizer). It depends on nothing but the id.
func StaggerSeed(workerID uint64) uint64 {
	z := workerID + 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

// StaggerOffset maps a worker id into [0, interval).
func StaggerOffset(workerID uint64, interval int) int {
	if interval <= 1 {
		return 0
	}
	return int(StaggerSeed(workerID) % uint64(interval))
}

// DueForEvaluation reports whether (tick + offset) mod interval == 0.
func DueForEvaluation(tick int64, offset, interval int) bool {
	if interval <= 1 {
		return true
	}
	m := (tick + int64(offset)) % int64(interval)
	if m < 0 {
		m += int64(interval)
	}
	return m == 0
}
