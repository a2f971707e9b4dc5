package utils

import "math"

// MaxOffset bounds the row offset a page number can reach. Pages past it
// read as empty.
const MaxOffset = math.MaxInt32

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 || perPage < 1 {
		return 0
	}
	if page-1 > MaxOffset/perPage {
		return MaxOffset
	}
	return (page - 1) * perPage
}
