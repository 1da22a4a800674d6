package scene_test

import "strconv"

func itoa(k int) string { return strconv.Itoa(k) }

func ptr(v float64) *float64 { return &v }
