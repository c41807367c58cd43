package libutil

import (
	"math"
)

const (
	Rad2Deg = float32(180 / math.Pi)
	Deg2Rad = float32(math.Pi / 180)
)

const InvalidAddress uintptr = 0xffff_ffff_ffff_ffff

// Deleter is a GPU object that can free its storage.
type Deleter interface {
	Delete()
}
