package constant

import "time"

// Slab geometry, in world length units
const (
	// BaseUnit is the length every other dimension is expressed in
	BaseUnit = 1.0

	// SlabHeight is the vertical thickness of one layer
	SlabHeight = 5 * BaseUnit

	// InitialWidth and InitialDepth size the base slab footprint (X and Z)
	InitialWidth = 25 * BaseUnit
	InitialDepth = 25 * BaseUnit
)

// Active slab motion
const (
	// OscillationRange is the half-range of travel relative to the footprint center
	OscillationRange = 50.0

	// OscillationPeriod is one full sweep -range → +range → -range
	OscillationPeriod = 2 * time.Second

	// SnapTolerance is the center distance under which a commit counts as perfect
	SnapTolerance = 0.5
)

// Fragment dynamics
const (
	// FragmentMass is the mass of every falling piece; settled slabs are static (0)
	FragmentMass = 1.0

	// FragmentPush is the outward speed along the cut axis given to a new fragment
	FragmentPush = 4.0

	// FragmentSpin is the tumble rate (rad/s) about the horizontal axis perpendicular to the cut
	FragmentSpin = 1.5
)

// World physics
const (
	// Gravity is the downward acceleration in units/s²
	Gravity = 60.0

	// KillPlaneDepth is how far below the base a falling body sleeps
	KillPlaneDepth = 400.0
)
