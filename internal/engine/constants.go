package engine

// Cubic (Hermite) interpolation constants
const (
	// Hermite interpolation coefficients for smooth C1 continuity
	// Formula: y = ((a*x + b)*x + c)*x + d
	// These constants appear in the interpolation formula:
	// coefA := -0.5*y0 + 1.5*y1 - 1.5*y2 + 0.5*y3
	hermiteCoeff0_5 = 0.5
	hermiteCoeff1_5 = 1.5
	hermiteCoeff2_5 = 2.5
)

// Interpolation constants
const (
	// Below two nodes there is nothing to interpolate between, and gonum's
	// natural cubic spline rejects the fit
	minInterpolationNodes = 2
)
