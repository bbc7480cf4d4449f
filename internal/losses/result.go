package losses

import "github.com/born-ml/born/tensor"

// Result holds the two loss components of a compound loss, uncombined.
type Result[B tensor.Backend] struct {
	Region *tensor.Tensor[float32, B] // Dice or Generalized Wasserstein Dice
	Class  *tensor.Tensor[float32, B] // Cross-entropy
}

// Weighted returns lambdaRegion·Region + lambdaClass·Class and leaves both
// components intact. Region and Class must have the same shape, which holds
// whenever they were reduced (mean or sum).
func (r Result[B]) Weighted(lambdaRegion, lambdaClass float32) *tensor.Tensor[float32, B] {
	region := fill(lambdaRegion, r.Region).Mul(r.Region)
	return fill(lambdaClass, r.Class).Mul(r.Class).Add(region)
}
